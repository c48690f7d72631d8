package reconcile

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/memhost"
	"github.com/vango-dev/vdom/pkg/vdom"
)

type item struct {
	key, text, color string
}

// list builds <ul> with one keyed <li> per item.
func list(items ...item) *vdom.VNode {
	return vdom.Ul(vdom.Range(items, func(it item, _ int) *vdom.VNode {
		return vdom.Li(vdom.Key(it.key), vdom.StyleProp("background", it.color), it.text)
	}))
}

func setup(t *testing.T) (*memhost.Document, *memhost.Node, *Renderer) {
	t.Helper()
	doc := memhost.New()
	container := doc.NewContainer("body")
	return doc, container, New(doc)
}

// texts returns the text content of each child of n.
func texts(n *memhost.Node) []string {
	out := make([]string, 0, n.Len())
	for _, c := range n.Children() {
		if c.Len() > 0 {
			out = append(out, c.ChildAt(0).Text)
		} else {
			out = append(out, c.Text)
		}
	}
	return out
}

// hostsByKey maps each keyed child instance's key to its host node.
func hostsByKey(inst *Instance) map[string]host.Node {
	m := make(map[string]host.Node)
	for _, c := range inst.Children() {
		m[c.Node().Key] = c.Host()
	}
	return m
}

func hostNode(inst *Instance) *memhost.Node {
	return inst.Host().(*memhost.Node)
}

func TestRenderMountFidelity(t *testing.T) {
	_, container, r := setup(t)

	tree := vdom.Div(vdom.ID("app"), vdom.Class("x"),
		vdom.Ul(
			vdom.Li(vdom.Key("A"), vdom.StyleProp("background", "red"), "A"),
			vdom.Li(vdom.Prop("data-n", 2), vdom.Disabled(true), "B"),
		),
		"tail",
	)
	inst := r.Render(container, tree)

	want := `<div class="x" id="app"><ul><li style="background: red">A</li>` +
		`<li data-n="2" disabled="true">B</li></ul>tail</div>`
	if got := memhost.InnerMarkup(container); got != want {
		t.Errorf("markup mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
	if inst.Node() != tree {
		t.Error("instance should bind the rendered VNode")
	}
	if hostNode(inst).Parent() != container {
		t.Error("root should be attached under the container")
	}
	if inst.Len() != 2 || inst.Child(0).Len() != 2 {
		t.Errorf("instance shape = %d/%d children", inst.Len(), inst.Child(0).Len())
	}
}

func TestMountDetached(t *testing.T) {
	_, _, r := setup(t)

	inst := r.Mount(vdom.P("hello"))
	n := hostNode(inst)
	if n.Parent() != nil {
		t.Error("Mount should not attach the root")
	}
	if got := memhost.Markup(n); got != "<p>hello</p>" {
		t.Errorf("Markup = %q", got)
	}
	if got := r.LastPass().Mounted; got != 2 {
		t.Errorf("Mounted = %d, want 2", got)
	}
}

func TestPatchIdempotent(t *testing.T) {
	doc, container, r := setup(t)

	tree := vdom.Div(vdom.Class("card"),
		vdom.H1("Title"),
		list(item{"A", "A", "red"}, item{"B", "B", "blue"}),
		vdom.P(vdom.StyleProp("color", "gray"), "footer"),
	)
	inst := r.Render(container, tree)
	before := memhost.InnerMarkup(container)

	var oldHosts []host.Node
	inst.Walk(func(i *Instance) bool {
		oldHosts = append(oldHosts, i.Host())
		return true
	})

	doc.ResetStats()
	next := r.Patch(inst, vdom.Clone(tree))

	if got := memhost.InnerMarkup(container); got != before {
		t.Errorf("markup changed (-before +after):\n%s", cmp.Diff(before, got))
	}

	var newHosts []host.Node
	next.Walk(func(i *Instance) bool {
		newHosts = append(newHosts, i.Host())
		return true
	})
	if len(newHosts) != len(oldHosts) {
		t.Fatalf("instance count = %d, want %d", len(newHosts), len(oldHosts))
	}
	for i := range oldHosts {
		if oldHosts[i] != newHosts[i] {
			t.Errorf("host node %d was not reused", i)
		}
	}

	stats := doc.Stats()
	if stats.Structural() != 0 || stats.Created != 0 || stats.TextSet != 0 {
		t.Errorf("idempotent patch mutated structure: %+v", stats)
	}
}

func TestPatchKeyedReverse(t *testing.T) {
	doc, container, r := setup(t)

	inst := r.Render(container, list(
		item{"A", "A", "red"}, item{"B", "B", "yellow"},
		item{"C", "C", "blue"}, item{"D", "D", "green"},
	))
	before := hostsByKey(inst)

	doc.ResetStats()
	next := r.Patch(inst, list(
		item{"D", "D1", "green"}, item{"C", "C1", "blue"},
		item{"B", "B1", "yellow"}, item{"A", "A1", "red"},
	))

	ul := hostNode(next)
	if diff := cmp.Diff([]string{"D1", "C1", "B1", "A1"}, texts(ul)); diff != "" {
		t.Errorf("host order mismatch (-want +got):\n%s", diff)
	}
	after := hostsByKey(next)
	for _, k := range []string{"A", "B", "C", "D"} {
		if before[k] != after[k] {
			t.Errorf("key %s: host node recreated", k)
		}
	}
	if got := doc.Stats().Created; got != 0 {
		t.Errorf("Created = %d, want 0", got)
	}
	if got := r.LastPass().Moved; got != 3 {
		t.Errorf("Moved = %d, want 3", got)
	}
}

func TestPatchMixedAddRemoveReorder(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, list(
		item{"A", "A", "red"}, item{"B", "B", "yellow"},
		item{"C", "C", "blue"}, item{"D", "D", "green"},
	))
	before := hostsByKey(inst)

	next := r.Patch(inst, list(
		item{"B", "B1", "yellow"}, item{"C", "C1", "blue"},
		item{"Q", "Q1", "pink"}, item{"A", "A1", "red"},
		item{"E", "E1", "gold"},
	))

	ul := hostNode(next)
	if diff := cmp.Diff([]string{"B1", "C1", "Q1", "A1", "E1"}, texts(ul)); diff != "" {
		t.Errorf("host order mismatch (-want +got):\n%s", diff)
	}

	after := hostsByKey(next)
	for _, k := range []string{"A", "B", "C"} {
		if before[k] != after[k] {
			t.Errorf("key %s: host node not reused", k)
		}
	}
	for _, k := range []string{"Q", "E"} {
		for _, old := range before {
			if after[k] == old {
				t.Errorf("key %s: reused an old host node", k)
			}
		}
	}
	if d := before["D"].(*memhost.Node); d.Parent() != nil {
		t.Error("D should be detached")
	}
	if next.Keyed("D") != nil {
		t.Error("D should have no instance")
	}
	if a := next.Keyed("A"); a == nil || a.Host() != before["A"] {
		t.Error("Keyed(A) should return the reused instance")
	}

	want := `<ul><li style="background: yellow">B1</li><li style="background: blue">C1</li>` +
		`<li style="background: pink">Q1</li><li style="background: red">A1</li>` +
		`<li style="background: gold">E1</li></ul>`
	if got := memhost.InnerMarkup(container); got != want {
		t.Errorf("markup mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}

	stats := r.LastPass()
	want2 := Stats{Mounted: 4, Inserted: 4, Moved: 2, Removed: 1, TextSet: 3}
	got2 := Stats{Mounted: stats.Mounted, Inserted: stats.Inserted, Moved: stats.Moved, Removed: stats.Removed, TextSet: stats.TextSet}
	if diff := cmp.Diff(want2, got2); diff != "" {
		t.Errorf("pass stats mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchTypeMismatchReplaces(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, vdom.Ul(vdom.Li(vdom.Key("A"), vdom.Class("x"), "A")))
	oldLi := hostNode(inst.Child(0))

	next := r.Patch(inst, vdom.Ul(vdom.Div(vdom.Key("A"), vdom.Class("x"), "A")))

	newDiv := hostNode(next.Child(0))
	if newDiv == oldLi {
		t.Fatal("type change must allocate a new host node")
	}
	if newDiv.Tag != "div" {
		t.Errorf("Tag = %q, want div", newDiv.Tag)
	}
	if oldLi.Parent() != nil {
		t.Error("old host node should be detached")
	}
	if got := r.LastPass().Replaced; got != 1 {
		t.Errorf("Replaced = %d, want 1", got)
	}
	if got := memhost.InnerMarkup(container); got != `<ul><div class="x">A</div></ul>` {
		t.Errorf("markup = %q", got)
	}
}

func TestPatchRootReplace(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, vdom.P("text"))
	next := r.Patch(inst, vdom.Span("text"))

	if container.Len() != 1 || container.ChildAt(0) != hostNode(next) {
		t.Fatal("root replacement should take the old root's place")
	}
	if got := memhost.InnerMarkup(container); got != "<span>text</span>" {
		t.Errorf("markup = %q", got)
	}
}

func TestPatchTextElementSwap(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, vdom.Div("plain"))
	next := r.Patch(inst, vdom.Div(vdom.Strong("bold")))

	if got := memhost.InnerMarkup(container); got != "<div><strong>bold</strong></div>" {
		t.Errorf("markup = %q", got)
	}
	if next.Child(0).Node().Tag != "strong" {
		t.Error("child instance should describe the new element")
	}
}

func TestPatchTextInPlace(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, vdom.P("a"))
	textHost := inst.Child(0).Host()

	next := r.Patch(inst, vdom.P("b"))
	if next.Child(0).Host() != textHost {
		t.Error("text host node should be reused")
	}
	if got := memhost.InnerMarkup(container); got != "<p>b</p>" {
		t.Errorf("markup = %q", got)
	}
	if stats := r.LastPass(); stats.TextSet != 1 || stats.Mounted != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestPatchChildrenCollapse(t *testing.T) {
	doc, container, r := setup(t)

	inst := r.Render(container, vdom.Div(vdom.P("1"), vdom.P("2")))
	doc.ResetStats()

	emptied := r.Patch(inst, vdom.Div())
	div := hostNode(emptied)
	if div.Len() != 0 {
		t.Errorf("Len() = %d, want 0", div.Len())
	}
	if doc.Stats().Cleared != 1 || doc.Stats().Removed != 0 {
		t.Errorf("children should be removed in one operation: %+v", doc.Stats())
	}

	filled := r.Patch(emptied, vdom.Div(vdom.P("x"), vdom.P("y"), vdom.P("z")))
	if diff := cmp.Diff([]string{"x", "y", "z"}, texts(hostNode(filled))); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if filled.Host() != emptied.Host() {
		t.Error("parent host node should be reused")
	}
}

func TestPatchUnkeyedList(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, vdom.Ul(vdom.Li("a"), vdom.Li("b"), vdom.Li("c")))
	first, second := inst.Child(0).Host(), inst.Child(1).Host()

	next := r.Patch(inst, vdom.Ul(vdom.Li("x"), vdom.Li("y")))

	if next.Child(0).Host() != first || next.Child(1).Host() != second {
		t.Error("unkeyed children should be patched positionally")
	}
	if diff := cmp.Diff([]string{"x", "y"}, texts(hostNode(next))); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchKeyedTypeMismatchInFallback(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, vdom.Ul(vdom.Li(vdom.Key("A"), "A"), vdom.Li(vdom.Key("B"), "B")))
	next := r.Patch(inst, vdom.Ul(vdom.Div(vdom.Key("B"), "B"), vdom.Li(vdom.Key("A"), "A")))

	want := "<ul><div>B</div><li>A</li></ul>"
	if got := memhost.InnerMarkup(container); got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
	if next.Child(1).Host() != inst.Child(0).Host() {
		t.Error("li A should be reused")
	}
}

func TestPatchDuplicateKeys(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, vdom.Ul(vdom.Li(vdom.Key("A"), "A"), vdom.Li(vdom.Key("B"), "B")))
	next := r.Patch(inst, vdom.Ul(vdom.Li(vdom.Key("B"), "B"), vdom.Li(vdom.Key("A"), "A"), vdom.Li(vdom.Key("A"), "A2")))

	if diff := cmp.Diff([]string{"B", "A", "A2"}, texts(hostNode(next))); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchPropsAndStyle(t *testing.T) {
	_, container, r := setup(t)

	inst := r.Render(container, vdom.Div(vdom.ID("x"), vdom.Class("a"), vdom.Styles(vdom.Style{"color": "red", "margin": "0"})))
	r.Patch(inst, vdom.Div(vdom.Class("b"), vdom.Styles(vdom.Style{"color": "blue"})))

	if got := memhost.InnerMarkup(container); got != `<div class="b" style="color: blue"></div>` {
		t.Errorf("markup = %q", got)
	}
	stats := r.LastPass()
	if stats.PropsRemoved != 1 {
		t.Errorf("PropsRemoved = %d, want 1", stats.PropsRemoved)
	}
	// margin reset + color written
	if stats.StyleSet != 2 {
		t.Errorf("StyleSet = %d, want 2", stats.StyleSet)
	}
}

func TestApplyProps(t *testing.T) {
	tests := []struct {
		name      string
		prev      vdom.Props
		next      vdom.Props
		wantProps vdom.Props
		wantStyle vdom.Style
		wantStats memhost.Stats
	}{
		{
			name:      "absent prop removed",
			prev:      vdom.Props{"id": vdom.String("x"), "class": vdom.String("a")},
			next:      vdom.Props{"class": vdom.String("a")},
			wantProps: vdom.Props{"class": vdom.String("a")},
			wantStats: memhost.Stats{PropsSet: 1, PropsRemoved: 1},
		},
		{
			name:      "unchanged props still written",
			prev:      vdom.Props{"class": vdom.String("a"), "tabindex": vdom.Int(2)},
			next:      vdom.Props{"class": vdom.String("a"), "tabindex": vdom.Int(2)},
			wantProps: vdom.Props{"class": vdom.String("a"), "tabindex": vdom.Int(2)},
			wantStats: memhost.Stats{PropsSet: 2},
		},
		{
			name:      "absent style sub-property reset",
			prev:      vdom.Props{"style": vdom.StyleValue(vdom.Style{"color": "red", "margin": "0"})},
			next:      vdom.Props{"style": vdom.StyleValue(vdom.Style{"color": "red"})},
			wantProps: vdom.Props{},
			wantStyle: vdom.Style{"color": "red"},
			wantStats: memhost.Stats{StyleSet: 2},
		},
		{
			name:      "style dropped entirely",
			prev:      vdom.Props{"class": vdom.String("a"), "style": vdom.StyleValue(vdom.Style{"color": "red"})},
			next:      vdom.Props{"class": vdom.String("a")},
			wantProps: vdom.Props{"class": vdom.String("a")},
			wantStats: memhost.Stats{PropsSet: 1, StyleSet: 1},
		},
		{
			name:      "added to empty",
			next:      vdom.Props{"id": vdom.String("x"), "style": vdom.StyleValue(vdom.Style{"color": "blue"})},
			wantProps: vdom.Props{"id": vdom.String("x")},
			wantStyle: vdom.Style{"color": "blue"},
			wantStats: memhost.Stats{PropsSet: 1, StyleSet: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _, r := setup(t)
			n := doc.CreateElement("div")
			r.ApplyProps(n, tt.prev, nil)
			doc.ResetStats()

			r.ApplyProps(n, tt.next, tt.prev)

			got := n.(*memhost.Node)
			if !got.Props.Equal(tt.wantProps) {
				t.Errorf("props = %v, want %v", got.Props, tt.wantProps)
			}
			if !got.Style.Equal(tt.wantStyle) {
				t.Errorf("style = %v, want %v", got.Style, tt.wantStyle)
			}
			if diff := cmp.Diff(tt.wantStats, doc.Stats()); diff != "" {
				t.Errorf("host calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatchNilArguments(t *testing.T) {
	_, container, r := setup(t)

	if r.Patch(nil, nil) != nil {
		t.Error("Patch(nil, nil) should be nil")
	}

	inst := r.Patch(nil, vdom.P("x"))
	if inst == nil || hostNode(inst).Parent() != nil {
		t.Fatal("Patch(nil, v) should mount detached")
	}

	attached := r.Render(container, vdom.P("y"))
	if r.Patch(attached, nil) != nil {
		t.Error("Patch(v, nil) should return nil")
	}
	if container.Len() != 0 {
		t.Error("Patch(v, nil) should remove the host node")
	}
}

func TestLookupDistinguishesIndexZero(t *testing.T) {
	old := []*Instance{
		{node: vdom.Li(vdom.Key("A"))},
		{node: vdom.Li(vdom.Key("B"))},
	}
	idx := map[string]int{"A": 0, "B": 1}

	tests := []struct {
		name      string
		next      *vdom.VNode
		oldStart  int
		consumed  int
		wantIndex int
		wantOK    bool
	}{
		{"index zero hit", vdom.Li(vdom.Key("A")), 0, -1, 0, true},
		{"index one hit", vdom.Li(vdom.Key("B")), 0, -1, 1, true},
		{"missing key", vdom.Li(vdom.Key("Z")), 0, -1, 0, false},
		{"unkeyed", vdom.Li(), 0, -1, 0, false},
		{"behind cursor", vdom.Li(vdom.Key("A")), 1, -1, 0, false},
		{"consumed", vdom.Li(vdom.Key("B")), 0, 1, 0, false},
		{"type differs", vdom.Div(vdom.Key("A")), 0, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := append([]*Instance(nil), old...)
			if tt.consumed >= 0 {
				slots[tt.consumed] = nil
			}
			i, ok := lookup(idx, slots, tt.next, tt.oldStart, len(slots)-1)
			if ok != tt.wantOK || i != tt.wantIndex {
				t.Errorf("lookup() = (%d, %v), want (%d, %v)", i, ok, tt.wantIndex, tt.wantOK)
			}
		})
	}
}

// TestPatchRandomReorders checks host order and node reuse over random
// keyed edits.
func TestPatchRandomReorders(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 200; round++ {
		_, container, r := setup(t)

		oldKeys := randomKeys(rng, 0)
		inst := r.Render(container, keyedList(oldKeys, "old"))
		before := hostsByKey(inst)

		newKeys := randomKeys(rng, round)
		next := r.Patch(inst, keyedList(newKeys, "new"))

		wantTexts := make([]string, len(newKeys))
		for i, k := range newKeys {
			wantTexts[i] = k + "-new"
		}
		if diff := cmp.Diff(wantTexts, texts(hostNode(next))); diff != "" {
			t.Fatalf("round %d: %v -> %v: order mismatch (-want +got):\n%s", round, oldKeys, newKeys, diff)
		}

		after := hostsByKey(next)
		for k, h := range after {
			if old, ok := before[k]; ok && old != h {
				t.Fatalf("round %d: key %s survived but host was recreated", round, k)
			}
		}
		for k, h := range before {
			if _, ok := after[k]; !ok && h.(*memhost.Node).Parent() != nil {
				t.Fatalf("round %d: key %s dropped but still attached", round, k)
			}
		}
	}
}

// randomKeys returns a random subset of k0..k11 in random order.
func randomKeys(rng *rand.Rand, salt int) []string {
	var keys []string
	for _, i := range rng.Perm(12) {
		if rng.Intn(4) != 0 {
			keys = append(keys, fmt.Sprintf("k%d", i+salt%3))
		}
	}
	if len(keys) == 0 {
		keys = append(keys, "k0")
	}
	return keys
}

func keyedList(keys []string, suffix string) *vdom.VNode {
	return vdom.Ul(vdom.Range(keys, func(k string, _ int) *vdom.VNode {
		return vdom.Li(vdom.Key(k), k+"-"+suffix)
	}))
}
