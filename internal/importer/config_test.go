package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/datas\nbatch_size: 50\ntruncate: false\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/datas", cfg.DataDir)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.False(t, cfg.Truncate)
	assert.False(t, cfg.DryRun)
}

func TestLoadConfig_EnvDefaults(t *testing.T) {
	t.Setenv("IMPORT_DATA_DIR", "/data")
	t.Setenv("IMPORT_DRY_RUN", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, 500, cfg.BatchSize)
	assert.True(t, cfg.Truncate)
	assert.True(t, cfg.DryRun)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
