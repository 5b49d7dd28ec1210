package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/artcontest/contest-backend/domain"
)

// MinioOptions configures an S3 compatible object store.
type MinioOptions struct {
	Endpoint    string // full URL, e.g. http://minio:9000
	AccessKey   string
	SecretKey   string
	Bucket      string
	Region      string
	PublicURL   string // base for public links; defaults to Endpoint
	Timeout     time.Duration
	MaxAttempts int
}

// MinioStore is the primary blob store. It talks S3 with path-style addressing.
type MinioStore struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
	timeout   time.Duration
}

var _ domain.FileStore = (*MinioStore)(nil)

func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, errors.New("minio endpoint and bucket are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
		if opts.MaxAttempts > 0 {
			o.RetryMaxAttempts = opts.MaxAttempts
		}
	})

	publicURL := opts.PublicURL
	if publicURL == "" {
		publicURL = opts.Endpoint
	}

	return &MinioStore{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		timeout:   opts.Timeout,
	}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) (domain.StoredFile, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return domain.StoredFile{
		Key:     key,
		URL:     fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
		Storage: domain.StorageMinio,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}
