package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Disk works with AWS S3 and S3-compatible stores (MinIO, R2).
type s3Disk struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Disk(ctx context.Context, cfg Config) (Disk, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("storage/s3: S3_BUCKET is not configured")
	}
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}
	if cfg.S3Key != "" && cfg.S3Secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, ""),
		))
	}

	awsConfig, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.S3Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		})
	}

	baseURL := strings.TrimRight(cfg.S3URL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, region)
	}

	return &s3Disk{
		client:  s3.NewFromConfig(awsConfig, clientOpts...),
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}, nil
}

func (d *s3Disk) Put(ctx context.Context, name string, r io.Reader) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(strings.TrimLeft(name, "/")),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", name, err)
	}
	return nil
}

func (d *s3Disk) Delete(ctx context.Context, name string) error {
	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(strings.TrimLeft(name, "/")),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", name, err)
	}
	return nil
}

func (d *s3Disk) URL(name string) string {
	return d.baseURL + "/" + strings.TrimLeft(name, "/")
}
