package journal

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/memhost"
	"github.com/vango-dev/vdom/pkg/protocol"
	"github.com/vango-dev/vdom/pkg/reconcile"
	"github.com/vango-dev/vdom/pkg/vdom"
)

func colored(items ...[3]string) *vdom.VNode {
	return vdom.Ul(vdom.Range(items, func(it [3]string, _ int) *vdom.VNode {
		return vdom.Li(vdom.Key(it[0]), vdom.StyleProp("background", it[2]), it[1])
	}))
}

// wire round-trips a batch through the codec.
func wire(t *testing.T, b *protocol.MutationBatch) *protocol.MutationBatch {
	t.Helper()
	decoded, err := protocol.DecodeBatch(protocol.EncodeBatch(b))
	require.NoError(t, err)
	return decoded
}

func TestReplicaMirrorsPatches(t *testing.T) {
	source := memhost.New()
	sourceRoot := source.NewContainer("body")
	j := New(source)
	rootID := j.Bind(sourceRoot)

	target := memhost.New()
	targetRoot := target.NewContainer("body")
	replica := NewReplica(target)
	replica.Bind(rootID, targetRoot)

	r := reconcile.New(j)

	inst := r.Render(sourceRoot, colored(
		[3]string{"A", "A", "red"}, [3]string{"B", "B", "yellow"},
		[3]string{"C", "C", "blue"}, [3]string{"D", "D", "green"},
	))
	first := j.Flush()
	require.NotNil(t, first)
	require.EqualValues(t, 1, first.Seq)
	require.NoError(t, replica.Apply(wire(t, first)))
	require.Equal(t, memhost.InnerMarkup(sourceRoot), memhost.InnerMarkup(targetRoot))

	inst = r.Patch(inst, colored(
		[3]string{"B", "B1", "yellow"}, [3]string{"C", "C1", "blue"},
		[3]string{"Q", "Q1", "pink"}, [3]string{"A", "A1", "red"},
		[3]string{"E", "E1", "gold"},
	))
	second := j.Flush()
	require.NotNil(t, second)
	require.EqualValues(t, 2, second.Seq)
	require.NoError(t, replica.Apply(wire(t, second)))
	require.Equal(t, memhost.InnerMarkup(sourceRoot), memhost.InnerMarkup(targetRoot))
	require.EqualValues(t, 2, replica.Seq())

	r.Patch(inst, vdom.Ul())
	require.NoError(t, replica.Apply(wire(t, j.Flush())))
	require.Equal(t, "<ul></ul>", memhost.InnerMarkup(targetRoot))
}

func TestJournalRecordsMoves(t *testing.T) {
	doc := memhost.New()
	root := doc.NewContainer("body")
	j := New(doc)
	rootID := j.Bind(root)

	r := reconcile.New(j)
	li := func(k string) *vdom.VNode { return vdom.Li(vdom.Key(k)) }

	inst := r.Render(root, vdom.Ul(li("A"), li("B")))
	j.Flush()
	ulID := j.ID(inst.Host())
	aID, bID := j.ID(inst.Child(0).Host()), j.ID(inst.Child(1).Host())
	require.NotZero(t, ulID)
	require.NotEqual(t, rootID, ulID)

	r.Patch(inst, vdom.Ul(li("B"), li("A")))
	b := j.Flush()
	require.NotNil(t, b)

	var moves []protocol.Mutation
	for _, m := range b.Mutations {
		if m.Op == protocol.OpInsertBefore {
			moves = append(moves, m)
		}
	}
	require.Len(t, moves, 1)
	// A moves after B: appended, or B moves before A.
	require.Equal(t, ulID, moves[0].Parent)
	require.Contains(t, []protocol.NodeID{aID, bID}, moves[0].ID)
}

func TestFlushEmpty(t *testing.T) {
	j := New(memhost.New())
	require.Nil(t, j.Flush())
	require.Zero(t, j.Pending())

	j.CreateText("x")
	require.Equal(t, 1, j.Pending())
	require.NotNil(t, j.Flush())
	require.Nil(t, j.Flush())
}

func TestReplicaUnknownNode(t *testing.T) {
	replica := NewReplica(memhost.New())
	err := replica.Apply(&protocol.MutationBatch{
		Seq:       1,
		Mutations: []protocol.Mutation{{Op: protocol.OpSetText, ID: 42, Text: "x"}},
	})
	require.Error(t, err)
	require.True(t, vdomerrors.HasCode(err, "E203"))
	require.Zero(t, replica.Seq())
}

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkWrite(t *testing.T) {
	client := &fakeS3{}
	sink := NewS3Sink(client, "archive", "sessions/demo/")

	batch := &protocol.MutationBatch{
		Seq:       12,
		Mutations: []protocol.Mutation{{Op: protocol.OpClearChildren, ID: 3}},
	}
	require.NoError(t, sink.Write(context.Background(), batch))

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	require.Equal(t, "archive", *in.Bucket)
	require.Equal(t, "sessions/demo/00000000000000000012.vdm", *in.Key)
	require.Equal(t, ContentType, *in.ContentType)
	require.Equal(t, "12", in.Metadata["seq"])

	frame, err := protocol.DecodeFrame(client.bodies[0])
	require.NoError(t, err)
	require.Equal(t, protocol.FrameMutations, frame.Type)

	decoded, err := protocol.DecodeBatch(frame.Payload)
	require.NoError(t, err)
	require.Equal(t, batch.Seq, decoded.Seq)
	require.Equal(t, batch.Mutations[0].ID, decoded.Mutations[0].ID)
}

func TestS3SinkError(t *testing.T) {
	cause := errors.New("access denied")
	sink := NewS3Sink(&fakeS3{err: cause}, "archive", "")

	err := sink.Write(context.Background(), &protocol.MutationBatch{Seq: 1})
	require.Error(t, err)
	require.True(t, vdomerrors.HasCode(err, "E501"))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "s3://archive/00000000000000000001.vdm")
}

func TestSinkFunc(t *testing.T) {
	var got uint64
	var sink Sink = SinkFunc(func(_ context.Context, b *protocol.MutationBatch) error {
		got = b.Seq
		return nil
	})
	require.NoError(t, sink.Write(context.Background(), &protocol.MutationBatch{Seq: 5}))
	require.EqualValues(t, 5, got)
}

func TestSnapshotRebuildsTree(t *testing.T) {
	source := memhost.New()
	sourceRoot := source.NewContainer("body")
	j := New(source)
	rootID := j.Bind(sourceRoot)
	r := reconcile.New(j)

	inst := r.Render(sourceRoot, colored([3]string{"A", "A", "red"}, [3]string{"B", "B", "blue"}))
	j.Flush()
	inst = r.Patch(inst, vdom.Ul(vdom.Class("list"),
		vdom.Li(vdom.Key("B"), vdom.StyleProp("background", "blue"), "B"),
		vdom.Li(vdom.Key("C"), vdom.Disabled(true), "C"),
	))
	j.Flush()

	snap := j.Snapshot(sourceRoot, inst)
	require.EqualValues(t, 2, snap.Seq)

	target := memhost.New()
	targetRoot := target.NewContainer("body")
	replica := NewReplica(target)
	replica.Bind(rootID, targetRoot)
	require.NoError(t, replica.Apply(wire(t, snap)))
	require.Equal(t, memhost.InnerMarkup(sourceRoot), memhost.InnerMarkup(targetRoot))

	// Later batches apply on top of the snapshot.
	r.Patch(inst, vdom.Ul(vdom.Li(vdom.Key("C"), "C2")))
	require.NoError(t, replica.Apply(wire(t, j.Flush())))
	require.Equal(t, memhost.InnerMarkup(sourceRoot), memhost.InnerMarkup(targetRoot))
	require.Equal(t, "<ul><li>C2</li></ul>", memhost.InnerMarkup(targetRoot))
}

func TestSnapshotEmpty(t *testing.T) {
	j := New(memhost.New())
	snap := j.Snapshot(nil, nil)
	require.Zero(t, snap.Seq)
	require.Empty(t, snap.Mutations)
}
