package artifact

import (
	"bytes"
	"context"
	"fmt"
	"path"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const DefaultRegion = "us-east-1"

// PutObjectAPI is the part of the S3 client a sink needs
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Settings struct {
	Bucket  string
	Prefix  string
	Profile string
	Region  string
}

func LoadConfig(ctx context.Context, profile, region string) (*awssdk.Config, error) {
	if region == "" {
		region = DefaultRegion
	}
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &awsCfg, nil
}

type s3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func NewS3Sink(client PutObjectAPI, bucket, prefix string) (Sink, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	return &s3Sink{client: client, bucket: bucket, prefix: prefix}, nil
}

// NewS3SinkFromSettings builds the client from the shared AWS configuration
func NewS3SinkFromSettings(ctx context.Context, settings S3Settings) (Sink, error) {
	awsCfg, err := LoadConfig(ctx, settings.Profile, settings.Region)
	if err != nil {
		return nil, err
	}
	return NewS3Sink(s3.NewFromConfig(*awsCfg), settings.Bucket, settings.Prefix)
}

func (s *s3Sink) Publish(ctx context.Context, name string, contentType string, body []byte) (string, error) {
	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(s.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(body),
		ContentType: awssdk.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
