package miniostorage_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	miniostorage "chatgenius/internal/infra/storage/minio"
)

func newStore(t *testing.T, publicURL string) *miniostorage.BlobStore {
	t.Helper()
	store, err := miniostorage.New(miniostorage.Config{
		Endpoint:  "127.0.0.1:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "chatgenius",
		PublicURL: publicURL,
	})
	require.NoError(t, err)
	return store
}

func TestBlobStore_URL_EscapesKeySegments(t *testing.T) {
	store := newStore(t, "https://cdn.example.com/")
	key := "channels/ch-1/0b4c-report #2 a?b%.pdf"

	got := store.URL(key)

	assert.Equal(t, "https://cdn.example.com/chatgenius/channels/ch-1/0b4c-report%20%232%20a%3Fb%25.pdf", got)

	// 解析后路径还原为原始键，没有被 query/fragment 截断
	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Empty(t, u.RawQuery)
	assert.Empty(t, u.Fragment)
	assert.Equal(t, "/chatgenius/"+key, u.Path)
}

func TestBlobStore_URL_DefaultsToEndpoint(t *testing.T) {
	store := newStore(t, "")

	assert.Equal(t, "http://127.0.0.1:9000/chatgenius/users/u-1/abc-notes.txt", store.URL("users/u-1/abc-notes.txt"))
}

func TestNew_RequiresEndpointAndBucket(t *testing.T) {
	_, err := miniostorage.New(miniostorage.Config{Bucket: "chatgenius"})
	assert.Error(t, err)

	_, err = miniostorage.New(miniostorage.Config{Endpoint: "127.0.0.1:9000"})
	assert.Error(t, err)
}
