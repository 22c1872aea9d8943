// Package avatar stores profile images in S3-compatible object storage.
package avatar

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Config holds the bucket settings for avatar storage.
type Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// KeyPrefix namespaces objects, e.g. "production".
	KeyPrefix string
}

// S3Storage uploads avatars under random hex keys and serves them from the
// bucket's public URL.
type S3Storage struct {
	client *s3.Client
	cfg    Config
}

func NewS3Storage(ctx context.Context, cfg Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &S3Storage{
		client: s3.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	raw := make([]byte, 30)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}
	key := fmt.Sprintf("%s/avatars/%s", s.cfg.KeyPrefix, hex.EncodeToString(raw))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.cfg.Bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key), nil
}

// Delete removes a previously uploaded avatar. Locations outside this bucket
// are ignored.
func (s *S3Storage) Delete(ctx context.Context, location string) error {
	marker := fmt.Sprintf("%s.s3.%s.amazonaws.com/", s.cfg.Bucket, s.cfg.Region)
	idx := strings.Index(location, marker)
	if idx < 0 {
		return nil
	}
	key := location[idx+len(marker):]

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
