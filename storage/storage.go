// Package storage handles media objects in S3: presigned upload URLs and
// best-effort deletes.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultUploadExpiry is how long a presigned upload URL stays valid.
const DefaultUploadExpiry = time.Hour

// PresignAPI is the subset of the S3 presign client used by the Client.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ObjectAPI is the subset of the S3 client used by the Client.
type ObjectAPI interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Client wraps one media bucket in one region.
type Client struct {
	presigner PresignAPI
	objects   ObjectAPI
	bucket    string
	region    string
	expiry    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithUploadExpiry overrides the presigned URL validity window.
func WithUploadExpiry(d time.Duration) Option {
	return func(c *Client) { c.expiry = d }
}

// WithAPIs injects the presign and object clients (used in tests).
func WithAPIs(presigner PresignAPI, objects ObjectAPI) Option {
	return func(c *Client) {
		c.presigner = presigner
		c.objects = objects
	}
}

// New creates a Client for the given bucket and region.
func New(cfg aws.Config, bucket, region string, opts ...Option) *Client {
	client := s3.NewFromConfig(cfg)
	c := &Client{
		presigner: s3.NewPresignClient(client),
		objects:   client,
		bucket:    bucket,
		region:    region,
		expiry:    DefaultUploadExpiry,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Bucket returns the configured media bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// UploadExpiry returns the presigned URL validity window.
func (c *Client) UploadExpiry() time.Duration {
	return c.expiry
}

// PresignUpload returns a time-limited URL the caller can PUT the object to
// directly.
func (c *Client) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(c.expiry))
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", key, err)
	}
	return req.URL, nil
}

// PublicURL returns the object's public address after upload completes.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

// Delete removes an object. The media record stores its own bucket, so the
// bucket is explicit rather than taken from the client.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete s3 object %s/%s: %w", bucket, key, err)
	}
	return nil
}
