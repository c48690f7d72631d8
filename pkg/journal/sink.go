package journal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/protocol"
)

// ContentType is the media type of archived mutation frames.
const ContentType = "application/vnd.vdom.mutations"

// Sink stores flushed batches.
type Sink interface {
	Write(ctx context.Context, b *protocol.MutationBatch) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, b *protocol.MutationBatch) error

// Write calls f.
func (f SinkFunc) Write(ctx context.Context, b *protocol.MutationBatch) error {
	return f(ctx, b)
}

// PutObjectAPI is the part of the S3 client S3Sink needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink archives each batch as one object holding a FrameMutations frame.
//
// Example usage:
//
//	client := journal.NewS3Client("us-east-1", "")
//	sink := journal.NewS3Sink(client, "my-bucket", "sessions/demo/")
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Sink creates a sink writing to bucket under prefix.
func NewS3Sink(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Key returns the object key for a batch sequence number. Keys sort in
// sequence order.
func (s *S3Sink) Key(seq uint64) string {
	return fmt.Sprintf("%s%020d.vdm", s.prefix, seq)
}

// Write uploads b. Failures carry code E501.
func (s *S3Sink) Write(ctx context.Context, b *protocol.MutationBatch) error {
	key := s.Key(b.Seq)
	frame := protocol.NewMutationsFrame(b)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(frame.Encode()),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"seq":       strconv.FormatUint(b.Seq, 10),
			"mutations": strconv.Itoa(len(b.Mutations)),
		},
	})
	if err != nil {
		return vdomerrors.New("E501").WithDetailf("s3://%s/%s", s.bucket, key).Wrap(err)
	}
	return nil
}

// NewS3Client builds an S3 client for region using credentials from the
// standard AWS_* environment variables. A non-empty endpoint selects an
// S3-compatible service with path-style addressing.
func NewS3Client(region, endpoint string) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(envCredentials()),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, errors.New("journal: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return creds, nil
	})
}
