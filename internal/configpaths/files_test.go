package configpaths_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/makbe/makbe/internal/configpaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPathComesFirst(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		path string
		pick func(j, y, tm []string) []string
	}{
		{"/tmp/board.yaml", func(_, y, _ []string) []string { return y }},
		{"/tmp/board.toml", func(_, _, tm []string) []string { return tm }},
		{"/tmp/board.json", func(j, _, _ []string) []string { return j }},
		{"/tmp/board", func(j, _, _ []string) []string { return j }},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			paths := tt.pick(configpaths.ConfigCandidatePaths(tt.path))
			require.NotEmpty(t, paths)
			assert.Equal(t, tt.path, paths[0])
		})
	}
}

func TestConfigHomeCandidates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME is not used on windows")
	}
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir, err := configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "makbe"), dir)

	_, yamlPaths, _ := configpaths.ConfigCandidatePaths("")
	assert.Contains(t, yamlPaths, filepath.Join(home, "makbe", "run.yaml"))
	assert.Contains(t, yamlPaths, filepath.Join("/etc", "makbe", "host.yml"))

	p, err := configpaths.DefaultNamedConfigPath("run", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "makbe", "run.yaml"), p)
}
