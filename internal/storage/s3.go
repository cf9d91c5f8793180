package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores user-supplied files (avatar images, knowledge documents) in
// an S3 bucket and hands back a public URL.
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewUploader builds an Uploader from the ambient AWS configuration.
// publicURL is the base under which objects are served (a CDN or the bucket
// website endpoint); object keys are appended to it.
func NewUploader(ctx context.Context, bucket, region, publicURL string) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Uploader{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// Upload stores data under a fresh key derived from the original filename and
// returns the public URL and the generated key.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, data []byte) (string, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("uploads/%s%s", uuid.New(), ext)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, u.bucket, err)
	}

	return fmt.Sprintf("%s/%s", u.publicURL, key), key, nil
}
