// Package storage keeps copies of generated reports in S3-compatible object
// storage or on local disk.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ecommerce/backoffice/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectClient is the subset of the S3 API the archive uses
type ObjectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3ReportArchive uploads exported reports under <prefix>/<yyyy>/<mm>/<uuid>-<filename>
type S3ReportArchive struct {
	client ObjectClient
	bucket string
	prefix string
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// ArchiveOption configures an S3ReportArchive
type ArchiveOption func(*S3ReportArchive)

// WithLogger sets the archive logger
func WithLogger(logger *zap.Logger) ArchiveOption {
	return func(a *S3ReportArchive) {
		a.logger = logger
	}
}

// WithClock overrides the time used to build object keys
func WithClock(now func() time.Time) ArchiveOption {
	return func(a *S3ReportArchive) {
		a.now = now
	}
}

// NewS3ReportArchive builds an archive from storage configuration. Static
// credentials are used when set, otherwise the default AWS chain.
func NewS3ReportArchive(ctx context.Context, cfg *config.StorageConfig, opts ...ArchiveOption) (*S3ReportArchive, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3ReportArchiveWithClient(client, cfg.Bucket, cfg.Prefix, opts...), nil
}

// NewS3ReportArchiveWithClient creates an archive on an existing client
func NewS3ReportArchiveWithClient(client ObjectClient, bucket, prefix string, opts ...ArchiveOption) *S3ReportArchive {
	a := &S3ReportArchive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EnsureBucket creates the bucket if it does not exist yet
func (a *S3ReportArchive) EnsureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	a.logger.Info("Creating report bucket", zap.String("bucket", a.bucket))
	_, err = a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(a.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Archive uploads content and returns its object key
func (a *S3ReportArchive) Archive(ctx context.Context, filename, contentType string, content []byte) (string, error) {
	key := a.objectKey(filename)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(a.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(content),
		ContentLength:      aws.Int64(int64(len(content))),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	a.logger.Debug("Report archived",
		zap.String("bucket", a.bucket),
		zap.String("key", key),
		zap.Int("size", len(content)),
	)
	return key, nil
}

func (a *S3ReportArchive) objectKey(filename string) string {
	now := a.now().UTC()
	return path.Join(a.prefix, now.Format("2006"), now.Format("01"), a.newID()+"-"+path.Base(filename))
}
