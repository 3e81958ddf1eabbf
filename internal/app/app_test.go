package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/hoaxify/internal/config"
	"github.com/patric-chuzhbe/hoaxify/internal/models"
)

func TestGetAvailableStorageType(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want int
	}{
		{name: "postgres wins", cfg: config.Config{DatabaseDSN: "dsn", RedisAddr: "localhost:6379", DBFileName: "db.json"}, want: models.StorageTypePostgresql},
		{name: "redis", cfg: config.Config{RedisAddr: "localhost:6379", DBFileName: "db.json"}, want: models.StorageTypeRedis},
		{name: "file", cfg: config.Config{DBFileName: "db.json"}, want: models.StorageTypeFile},
		{name: "memory", cfg: config.Config{}, want: models.StorageTypeMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getAvailableStorageType(&tt.cfg))
		})
	}
}

func TestGetCSRFSigningKey(t *testing.T) {
	key, err := getCSRFSigningKey(&config.Config{CSRFSigningKey: "configured"})
	require.NoError(t, err)
	assert.Equal(t, []byte("configured"), key)

	first, err := getCSRFSigningKey(&config.Config{})
	require.NoError(t, err)
	second, err := getCSRFSigningKey(&config.Config{})
	require.NoError(t, err)
	assert.Len(t, first, csrfKeyLength)
	assert.NotEqual(t, first, second)
}

func TestNewServesPages(t *testing.T) {
	t.Setenv("FILE_STORAGE_PATH", filepath.Join(t.TempDir(), "storage.json"))
	t.Setenv("STORAGE_SECRET", "app-test-secret")

	theApp, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	defer theApp.Close()

	server := httptest.NewServer(theApp.httpHandler)
	defer server.Close()

	client := resty.New().SetBaseURL(server.URL)

	resp, err := client.R().Get("/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().Get("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), `data-testid="login-page"`)

	assert.False(t, theApp.session.State().IsLoggedIn)
	require.NoError(t, theApp.db.Close())
}
