package file_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/pkg/file"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := newFakeS3()

	storage, err := file.NewS3Storage(ctx, file.S3Config{Bucket: "mail", Region: "eu-central-1"}, file.WithS3Client(fake))
	require.NoError(t, err)

	f, err := storage.Put(ctx, "/images/a.png", pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "images/a.png", f.Key)
	assert.Equal(t, "https://mail.s3.eu-central-1.amazonaws.com/images/a.png", f.URL)
	assert.Equal(t, pngHeader, fake.objects["images/a.png"])
	assert.Equal(t, "image/png", fake.types["images/a.png"])

	assert.True(t, storage.Exists(ctx, "images/a.png"))
	require.NoError(t, storage.Delete(ctx, "images/a.png"))
	assert.False(t, storage.Exists(ctx, "images/a.png"))
}

func TestS3Storage_BaseURL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	custom, err := file.NewS3Storage(ctx, file.S3Config{
		Bucket: "mail", Region: "us-east-1", Endpoint: "http://minio:9000/",
	}, file.WithS3Client(newFakeS3()))
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/mail/a.png", custom.URL("a.png"))

	public, err := file.NewS3Storage(ctx, file.S3Config{
		Bucket: "mail", Region: "us-east-1", BaseURL: "https://cdn.example.com",
	}, file.WithS3Client(newFakeS3()))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", public.URL("a.png"))
}

func TestS3Storage_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := file.NewS3Storage(ctx, file.S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)

	tests := []struct {
		name   string
		putErr error
		want   error
	}{
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, file.ErrAccessDenied},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
		{"no bucket", &types.NoSuchBucket{}, file.ErrBucketNotFound},
		{"timeout", context.DeadlineExceeded, file.ErrOperationTimeout},
		{"canceled", context.Canceled, file.ErrOperationCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := newFakeS3()
			fake.putErr = tt.putErr
			storage, err := file.NewS3Storage(ctx, file.S3Config{Bucket: "b", Region: "r"}, file.WithS3Client(fake))
			require.NoError(t, err)

			_, err = storage.Put(ctx, "a.png", pngHeader, "image/png")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	fake := newFakeS3()
	fake.putErr = errors.New("boom")
	storage, err := file.NewS3Storage(ctx, file.S3Config{Bucket: "b", Region: "r"}, file.WithS3Client(fake))
	require.NoError(t, err)
	_, err = storage.Put(ctx, "../a.png", pngHeader, "image/png")
	assert.ErrorIs(t, err, file.ErrInvalidPath)
	_, err = storage.Put(ctx, "a.png", pngHeader, "image/png")
	assert.ErrorContains(t, err, "boom")
}
