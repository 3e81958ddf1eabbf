package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/hoaxify/cmd/staticlint/sessionwrite"
)

func TestLoadConfigFromWorkingDirectory(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Staticcheck)
}

func TestLoadConfigMissing(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = loadConfig()
	assert.Error(t, err)
}

func TestAnalyzers(t *testing.T) {
	names := func(cfg ConfigData) map[string]bool {
		found := map[string]bool{}
		for _, analyzer := range analyzers(cfg) {
			found[analyzer.Name] = true
		}
		return found
	}

	base := names(ConfigData{})
	assert.True(t, base[sessionwrite.Analyzer.Name])
	assert.True(t, base["nilerr"])
	assert.False(t, base["SA1000"])

	selected := names(ConfigData{Staticcheck: []string{"SA1000", "SA4006"}})
	assert.True(t, selected["SA1000"])
	assert.True(t, selected["SA4006"])
	assert.Len(t, selected, len(base)+2)
}
