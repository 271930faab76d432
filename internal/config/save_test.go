package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSearch_CreatesNewFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := SaveSearch(configPath, SearchConfig{MaxComposingDims: 4, MaxExp: 2, MaxCombinations: 500})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_composing_dims: 4")
	assert.Contains(t, string(data), "max_exp: 2")
	assert.Contains(t, string(data), "max_combinations: 500")
}

func TestSaveSearch_PreservesOtherSections(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	initial := `# My settings
display:
  form: name   # prefer full names
  color: false

search:
  max_composing_dims: 5
  max_exp: 3
  max_combinations: 0
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	err := SaveSearch(configPath, SearchConfig{MaxComposingDims: 3, MaxExp: 4, MaxCombinations: 100})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	// The comment and the untouched section survive.
	assert.Contains(t, content, "# My settings")
	assert.Contains(t, content, "form: name")
	assert.Contains(t, content, "max_composing_dims: 3")
	assert.NotContains(t, content, "max_composing_dims: 5")
}

func TestSaveSearch_RoundTripsThroughViper(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	want := SearchConfig{MaxComposingDims: 6, MaxExp: 4, MaxCombinations: 2000}
	require.NoError(t, SaveSearch(configPath, want))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, want, cfg.Search)
}

func TestSaveSearch_AppendsToExistingMapping(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("cache:\n  enabled: true\n"), 0o600))

	require.NoError(t, SaveSearch(configPath, SearchConfig{MaxComposingDims: 5, MaxExp: 3}))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "enabled: true")
	assert.Contains(t, string(data), "max_composing_dims: 5")
}
