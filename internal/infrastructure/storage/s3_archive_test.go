package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ecommerce/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectClient struct {
	mock.Mock
}

func (m *MockObjectClient) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObjectClient) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.HeadBucketOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObjectClient) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.CreateBucketOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestArchive(client ObjectClient) *S3ReportArchive {
	a := NewS3ReportArchiveWithClient(client, "reports", "exports",
		WithClock(func() time.Time { return time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC) }),
	)
	a.newID = func() string { return "0b6f1c4e-5d36-4d62-9a9a-1f0e3c2b7a10" }
	return a
}

func TestS3ReportArchive_Archive(t *testing.T) {
	client := new(MockObjectClient)
	archive := newTestArchive(client)
	content := []byte("ID,Fecha\n")

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "reports" &&
			aws.ToString(in.ContentType) == "text/csv" &&
			aws.ToInt64(in.ContentLength) == int64(len(content)) &&
			string(body) == string(content)
	})).Return(&s3.PutObjectOutput{}, nil)

	key, err := archive.Archive(context.Background(), "reporte_ventas_filtrado.csv", "text/csv", content)
	require.NoError(t, err)
	assert.Equal(t, "exports/2024/03/0b6f1c4e-5d36-4d62-9a9a-1f0e3c2b7a10-reporte_ventas_filtrado.csv", key)
	client.AssertExpectations(t)
}

func TestS3ReportArchive_Archive_UploadFails(t *testing.T) {
	client := new(MockObjectClient)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := newTestArchive(client).Archive(context.Background(), "reporte_ventas.pdf", "application/pdf", []byte("%PDF-"))
	assert.ErrorContains(t, err, "access denied")
}

func TestS3ReportArchive_ObjectKeyWithoutPrefix(t *testing.T) {
	archive := newTestArchive(new(MockObjectClient))
	archive.prefix = ""
	assert.Equal(t, "2024/03/0b6f1c4e-5d36-4d62-9a9a-1f0e3c2b7a10-a.pdf", archive.objectKey("../a.pdf"))
}

func TestS3ReportArchive_EnsureBucket(t *testing.T) {
	t.Run("existing bucket", func(t *testing.T) {
		client := new(MockObjectClient)
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil)

		require.NoError(t, newTestArchive(client).EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything)
	})

	t.Run("missing bucket is created", func(t *testing.T) {
		client := new(MockObjectClient)
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, &types.NotFound{})
		client.On("CreateBucket", mock.Anything, mock.Anything).Return(&s3.CreateBucketOutput{}, nil)

		require.NoError(t, newTestArchive(client).EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})

	t.Run("other head failures are returned", func(t *testing.T) {
		client := new(MockObjectClient)
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		assert.Error(t, newTestArchive(client).EnsureBucket(context.Background()))
	})
}

func TestNewS3ReportArchive_RequiresBucket(t *testing.T) {
	_, err := NewS3ReportArchive(context.Background(), &config.StorageConfig{})
	assert.Error(t, err)

	archive, err := NewS3ReportArchive(context.Background(), &config.StorageConfig{
		Bucket:       "reports",
		Endpoint:     "http://localhost:9000",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "reports", archive.bucket)
}
