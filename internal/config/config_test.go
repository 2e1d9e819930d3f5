package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 3, cfg.DiffContextLines)
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout)
	assert.Equal(t, 2*time.Second, cfg.CacheTTL)
	assert.Equal(t, 3*time.Second, cfg.StatusTTL)
	assert.Equal(t, 5*time.Second, cfg.ErrorTTL)
	assert.False(t, cfg.RequireStashMessage)
	assert.Equal(t, DefaultKeyBindings(), cfg.Keys)
	assert.Equal(t, cfg, Default())
}

func TestLoad_FileOverrides(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "zgs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	yaml := `theme: light
diff_context_lines: 5
status_ttl: 1500ms
require_stash_message: true
keys:
  drop: ["D"]
  quit: ["q", "Q"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 5, cfg.DiffContextLines)
	assert.Equal(t, 1500*time.Millisecond, cfg.StatusTTL)
	assert.True(t, cfg.RequireStashMessage)
	assert.Equal(t, []string{"D"}, cfg.Keys.Drop)
	assert.Equal(t, []string{"q", "Q"}, cfg.Keys.Quit)
	assert.Equal(t, []string{"a"}, cfg.Keys.Apply, "unlisted keys keep defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ZGS_CACHE_TTL", "5s")
	t.Setenv("ZGS_INCLUDE_UNTRACKED", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.IncludeUntracked)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "zgs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff_context_lines: 1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.DiffContextLines)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"theme", "theme: neon\n"},
		{"context", "diff_context_lines: -1\n"},
		{"ttl", "status_ttl: 0s\n"},
		{"keys", "keys:\n  apply: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
