package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJSON = `{
	"server_address": "localhost:3000",
	"api_base_url": "http://json-config.com",
	"file_storage_path": "json_storage.json",
	"database_dsn": "json-dsn",
	"db_connection_timeout": "3s",
	"locale": "tr"
}`

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	file, err := os.CreateTemp("", "config*.json")
	require.NoError(t, err)
	_, err = file.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	t.Cleanup(func() {
		err := os.Remove(file.Name())
		require.NoError(t, err)
	})
	return file.Name()
}

func TestApplyDefaults(t *testing.T) {
	values := Config{RunAddr: "localhost:9999"}

	applyDefaults(&values, defaultConfig)

	assert.Equal(t, "localhost:9999", values.RunAddr)
	assert.Equal(t, "http://localhost:8081", values.APIBaseURL)
	assert.Equal(t, "en", values.Locale)
	assert.Equal(t, 10*time.Second, values.DBConnectionTimeout)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.RunAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "127.0.0.0/8", cfg.TrustedSubnet)
	assert.Empty(t, cfg.DatabaseDSN)
}

func TestConfigPriorityJSONOnly(t *testing.T) {
	jsonPath := writeTempJSON(t, testJSON)
	t.Setenv("CONFIG", jsonPath)

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, "localhost:3000", cfg.RunAddr)
	assert.Equal(t, "http://json-config.com", cfg.APIBaseURL)
	assert.Equal(t, "json_storage.json", cfg.DBFileName)
	assert.Equal(t, "json-dsn", cfg.DatabaseDSN)
	assert.Equal(t, 3*time.Second, cfg.DBConnectionTimeout)
	assert.Equal(t, "tr", cfg.Locale)
}

func TestConfigPriorityJSONPlusEnv(t *testing.T) {
	jsonPath := writeTempJSON(t, testJSON)
	t.Setenv("CONFIG", jsonPath)
	t.Setenv("SERVER_ADDRESS", "localhost:4000")
	t.Setenv("API_BASE_URL", "http://env.com")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, "localhost:4000", cfg.RunAddr) // env overrides json
	assert.Equal(t, "http://env.com", cfg.APIBaseURL)
	assert.Equal(t, "json-dsn", cfg.DatabaseDSN) // from JSON
}

func TestConfigPriorityAllSources(t *testing.T) {
	jsonPath := writeTempJSON(t, testJSON)
	t.Setenv("CONFIG", jsonPath)
	t.Setenv("SERVER_ADDRESS", "localhost:4000")
	t.Setenv("API_BASE_URL", "http://env.com")

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{
		"testbin",
		"-a", "localhost:6000",
		"-b", "http://cli.com",
		"-locale", "en",
	}

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6000", cfg.RunAddr) // CLI > ENV > JSON
	assert.Equal(t, "http://cli.com", cfg.APIBaseURL)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "json-dsn", cfg.DatabaseDSN) // from JSON
}

func TestConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown log level", key: "LOG_LEVEL", value: "loud"},
		{name: "unsupported locale", key: "LOCALE", value: "xx"},
		{name: "bad backend url", key: "API_BASE_URL", value: "not a url"},
		{name: "bad trusted subnet", key: "TRUSTED_SUBNET", value: "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := New(WithDisableFlagsParsing(true))
			assert.Error(t, err)
		})
	}
}
