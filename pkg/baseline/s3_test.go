package baseline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/baseline"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func newS3Store(t *testing.T, client *MockS3Client) *baseline.S3Store {
	t.Helper()
	store, err := baseline.NewS3Store(context.Background(), baseline.S3Config{
		Bucket: "folio-ci",
		Prefix: "/baselines/",
		Region: "us-east-1",
	}, baseline.WithS3Client(client))
	require.NoError(t, err)
	return store
}

func objectKey(key string) any {
	return mock.MatchedBy(func(in any) bool {
		switch v := in.(type) {
		case *s3.GetObjectInput:
			return aws.ToString(v.Bucket) == "folio-ci" && aws.ToString(v.Key) == key
		case *s3.PutObjectInput:
			return aws.ToString(v.Bucket) == "folio-ci" && aws.ToString(v.Key) == key
		case *s3.HeadObjectInput:
			return aws.ToString(v.Bucket) == "folio-ci" && aws.ToString(v.Key) == key
		}
		return false
	})
}

func TestNewS3Store_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := baseline.NewS3Store(context.Background(), baseline.S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, baseline.ErrInvalidConfig)
}

func TestS3Store_GetPut(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	store := newS3Store(t, client)
	ctx := context.Background()

	client.On("PutObject", ctx, objectKey("baselines/works/desktop.png")).
		Return(&s3.PutObjectOutput{}, nil).Once()
	client.On("GetObject", ctx, objectKey("baselines/works/desktop.png")).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("png")))}, nil).Once()
	client.On("GetObject", ctx, objectKey("baselines/index/mobile.png")).
		Return(nil, &types.NoSuchKey{}).Once()

	require.NoError(t, store.Put(ctx, "works/desktop.png", []byte("png")))

	data, err := store.Get(ctx, "works/desktop.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	_, err = store.Get(ctx, "index/mobile.png")
	assert.ErrorIs(t, err, baseline.ErrNotFound)

	client.AssertExpectations(t)
}

func TestS3Store_Exists(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	store := newS3Store(t, client)
	ctx := context.Background()

	client.On("HeadObject", ctx, objectKey("baselines/a.png")).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", ctx, objectKey("baselines/b.png")).Return(nil, &types.NotFound{})
	client.On("HeadObject", ctx, objectKey("baselines/c.png")).
		Return(nil, &smithy.GenericAPIError{Code: "AccessDenied"})

	ok, err := store.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "b.png")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Exists(ctx, "c.png")
	assert.ErrorIs(t, err, baseline.ErrAccessDenied)

	_, err = store.Exists(ctx, "../d.png")
	assert.ErrorIs(t, err, baseline.ErrInvalidKey)
}

func TestS3Store_List(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	store := newS3Store(t, client)
	ctx := context.Background()

	client.On("ListObjectsV2", ctx, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.Prefix) == "baselines/works/" && in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		Contents:              []types.Object{{Key: aws.String("baselines/works/mobile.png")}},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("next"),
	}, nil).Once()
	client.On("ListObjectsV2", ctx, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "next"
	})).Return(&s3.ListObjectsV2Output{
		Contents:    []types.Object{{Key: aws.String("baselines/works/desktop.png")}},
		IsTruncated: aws.Bool(false),
	}, nil).Once()

	keys, err := store.List(ctx, "works/")
	require.NoError(t, err)
	assert.Equal(t, []string{"works/desktop.png", "works/mobile.png"}, keys)
	client.AssertExpectations(t)
}

func TestS3Store_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"bucket", &types.NoSuchBucket{}, baseline.ErrBucketNotFound},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, baseline.ErrStoreUnavailable},
		{"timeout", context.DeadlineExceeded, baseline.ErrOperationTimeout},
		{"canceled", context.Canceled, baseline.ErrOperationCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &MockS3Client{}
			store := newS3Store(t, client)
			client.On("PutObject", mock.Anything, mock.Anything).Return(nil, tt.err)
			err := store.Put(context.Background(), "x.png", nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	client := &MockS3Client{}
	store := newS3Store(t, client)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp"))
	err := store.Put(context.Background(), "x.png", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial tcp")
}
