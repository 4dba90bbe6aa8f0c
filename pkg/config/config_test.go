package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDecodesKnownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tstorie.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
document = "story.md"
target_fps = 30
audio_on = true

[theme]
bg_r = 10
bg_g = 20
bg_b = 30
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "story.md", cfg.Document)
	assert.Equal(t, 30, cfg.TargetFPS)
	assert.True(t, cfg.AudioOn)
	assert.Equal(t, uint8(10), cfg.Theme.BgR)
}

func TestLoadInvalidTomlReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tstorie.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFindReturnsDefaultWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path, cfg, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "", path)
	assert.Equal(t, Default(), cfg)
}

func TestFindWalksUpToParentDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "tstorie.toml"), []byte(`target_fps = 45`), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, cfg, err := Find(nested)
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.Equal(t, 45, cfg.TargetFPS)
}
