package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datavibes/eventapi/storage"
)

type fakePresigner struct {
	err    error
	inputs []*s3.PutObjectInput
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	url := "https://presigned.example.com/" + aws.ToString(params.Key)
	return &v4.PresignedHTTPRequest{URL: url, Method: "PUT"}, nil
}

type fakeObjects struct {
	err     error
	deleted []*s3.DeleteObjectInput
}

func (f *fakeObjects) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, params)
	return &s3.DeleteObjectOutput{}, nil
}

func newClient(presigner *fakePresigner, objects *fakeObjects, opts ...storage.Option) *storage.Client {
	opts = append([]storage.Option{storage.WithAPIs(presigner, objects)}, opts...)
	return storage.New(aws.Config{Region: "eu-west-1"}, "media-bucket", "eu-west-1", opts...)
}

func TestPresignUpload(t *testing.T) {
	presigner := &fakePresigner{}
	client := newClient(presigner, &fakeObjects{})

	url, err := client.PresignUpload(context.Background(), "events/e1/media/m1/pic.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://presigned.example.com/events/e1/media/m1/pic.jpg", url)

	require.Len(t, presigner.inputs, 1)
	in := presigner.inputs[0]
	assert.Equal(t, "media-bucket", aws.ToString(in.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(in.ContentType))
}

func TestPresignUploadFailure(t *testing.T) {
	client := newClient(&fakePresigner{err: errors.New("denied")}, &fakeObjects{})

	_, err := client.PresignUpload(context.Background(), "key", "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presign upload")
}

func TestPublicURL(t *testing.T) {
	client := newClient(&fakePresigner{}, &fakeObjects{})

	got := client.PublicURL("events/e1/media/m1/pic.jpg")
	assert.Equal(t, "https://media-bucket.s3.eu-west-1.amazonaws.com/events/e1/media/m1/pic.jpg", got)
}

func TestDelete(t *testing.T) {
	objects := &fakeObjects{}
	client := newClient(&fakePresigner{}, objects)

	// The bucket comes from the media record, not from the client.
	err := client.Delete(context.Background(), "old-bucket", "events/e1/media/m1/pic.jpg")
	require.NoError(t, err)

	require.Len(t, objects.deleted, 1)
	assert.Equal(t, "old-bucket", aws.ToString(objects.deleted[0].Bucket))
}

func TestDeleteFailure(t *testing.T) {
	client := newClient(&fakePresigner{}, &fakeObjects{err: errors.New("gone")})

	err := client.Delete(context.Background(), "b", "k")
	require.Error(t, err)
}

func TestUploadExpiry(t *testing.T) {
	client := newClient(&fakePresigner{}, &fakeObjects{})
	assert.Equal(t, time.Hour, client.UploadExpiry())

	client = newClient(&fakePresigner{}, &fakeObjects{}, storage.WithUploadExpiry(15*time.Minute))
	assert.Equal(t, 15*time.Minute, client.UploadExpiry())
	assert.Equal(t, "media-bucket", client.Bucket())
}
