package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bloeys/nscene/lights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Field.Rows)
	assert.Equal(t, 100, cfg.Field.Cols)
	assert.Len(t, cfg.Assets.SkyboxFaces, 6)
}

func TestParseKeepsDefaults(t *testing.T) {

	cfg, err := Parse([]byte(`
window:
  width: 800
field:
  rows: 10
lights:
  dir:
    enabled: false
`))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, int32(800), cfg.Window.Width)
	assert.Equal(t, def.Window.Height, cfg.Window.Height)
	assert.Equal(t, 10, cfg.Field.Rows)
	assert.Equal(t, def.Field.Cols, cfg.Field.Cols)
	assert.False(t, cfg.Lights.Dir.Enabled)
	assert.Equal(t, def.Lights.Dir.Dir, cfg.Lights.Dir.Dir)
	assert.Equal(t, def.Camera, cfg.Camera)
}

func TestParseReplacesLists(t *testing.T) {

	cfg, err := Parse([]byte(`
lights:
  points:
    - enabled: true
      pos: [1, 2, 3]
      diffuse: [1, 0, 0]
`))
	require.NoError(t, err)
	require.Len(t, cfg.Lights.Points, 1)
	assert.Equal(t, Vec3{1, 2, 3}, cfg.Lights.Points[0].Pos)

	ls := cfg.Lights.LightSet()
	require.Len(t, ls.Points, 1)
	assert.Equal(t, float32(2), ls.Points[0].Pos.Y())
	assert.Equal(t, lights.DefaultLinear, ls.Points[0].Linear)
}

func TestParseValidation(t *testing.T) {

	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "window:\n  width: 0\n"},
		{"negative height", "window:\n  height: -5\n"},
		{"negative rows", "field:\n  rows: -1\n"},
		{"zero spacing", "field:\n  spacing: 0\n"},
		{"bad clip planes", "camera:\n  near: 10\n  far: 5\n"},
		{"bad skybox", "assets:\n  skyboxFaces: [a.png, b.png]\n"},
		{"bad yaml", "window: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLightSetFlags(t *testing.T) {

	cfg := Default()
	cfg.Lights.Spots[0].Enabled = false

	ls := cfg.Lights.LightSet()
	assert.True(t, ls.Dir.Enabled)
	assert.Len(t, ls.Points, len(cfg.Lights.Points))
	require.Len(t, ls.Spots, 1)
	assert.False(t, ls.Spots[0].Enabled)
	assert.InDelta(t, -1, ls.Spots[0].Dir.Y(), 1e-6)
}

func TestWatcherReloads(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field:\n  rows: 1\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("field:\n  rows: 7\n"), 0o644))

	// Writes can arrive as several events, so wait for the final content
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Changes():
			if cfg.Field.Rows == 7 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}

func TestWatcherIgnoresInvalidAndOtherFiles(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field:\n  rows: 1\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("field:\n  rows: 3\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 0\n"), 0o644))

	select {
	case cfg := <-w.Changes():
		t.Fatalf("unexpected config reload: %+v", cfg.Field)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("  \n"))
	require.Error(t, err)
}
