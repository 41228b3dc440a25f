package storage_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"material-manager/core/errs"
	"material-manager/core/storage"
	"material-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "materiales").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), m, "materiales", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "materiales").Return(false, nil)
		m.On("MakeBucket", mock.Anything, "materiales", mock.Anything).Return(nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), m, "materiales", ""))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "materiales").Return(false, errors.New("down"))

		assert.Error(t, storage.EnsureBucket(context.Background(), m, "materiales", ""))
	})
}

func TestPutJSON(t *testing.T) {
	m := new(mocks.Client)
	var uploaded string
	m.On("PutObject", mock.Anything, "materiales", "reports/a.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(3).(io.Reader))
			uploaded = string(data)
		}).
		Return(minio.UploadInfo{}, nil)

	err := storage.PutJSON(context.Background(), m, "materiales", "reports/a.json", map[string]int{"total": 3})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"total": 3}`, uploaded)
}

func TestListKeys(t *testing.T) {
	m := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "reports/availability/1/a.json"}
	ch <- minio.ObjectInfo{Key: "reports/availability/1/b.json"}
	close(ch)
	m.On("ListObjects", mock.Anything, "materiales", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	keys, err := storage.ListKeys(context.Background(), m, "materiales", "reports/availability/1/")
	assert.NoError(t, err)
	assert.Equal(t, []string{"reports/availability/1/a.json", "reports/availability/1/b.json"}, keys)
}

func TestGetJSON(t *testing.T) {
	t.Run("Decodes", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "materiales", "reports/a.json", minio.GetObjectOptions{}).
			Return(mocks.Body(`{"total":3}`), nil)

		var out map[string]int
		require.NoError(t, storage.GetJSON(context.Background(), m, "materiales", "reports/a.json", &out))
		assert.Equal(t, 3, out["total"])
	})

	t.Run("MissingObject", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "materiales", "reports/b.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		var out map[string]int
		err := storage.GetJSON(context.Background(), m, "materiales", "reports/b.json", &out)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("BadBody", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "materiales", "reports/c.json", mock.Anything).
			Return(mocks.Body(`nope`), nil)

		var out map[string]int
		err := storage.GetJSON(context.Background(), m, "materiales", "reports/c.json", &out)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, errs.ErrNotFound)
	})
}
