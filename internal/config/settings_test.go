package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/handiism/grabr/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	tests := []struct {
		mode    Mode
		output  string
		logFile string
	}{
		{ModeImages, "downloads", "grabr.log"},
		{ModeMenu, "menu_items", "menugrabr.log"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := DefaultSettings(tt.mode)
			assert.Equal(t, tt.output, s.OutputDir)
			assert.Equal(t, tt.logFile, s.LogFile)
			assert.Equal(t, DefaultChunkSize, s.ChunkSize)
			assert.Zero(t, s.Timeout())
			assert.Equal(t, extract.DefaultLayout(), s.ToLayout())
			assert.NoError(t, s.Validate())
		})
	}
}

func TestDefaultSettings_DoesNotAliasAllowList(t *testing.T) {
	s := DefaultSettings(ModeMenu)
	s.AllowedExtensions[0] = ".gif"
	assert.Equal(t, ".jpg", extract.DefaultAllowedExtensions[0])
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json5"), ModeImages)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(DefaultSettings(ModeImages), s))
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grabr.json5")
	content := `{
	// only what differs from the defaults
	output_dir: "/srv/cafe",
	timeout_seconds: 15,
	allowed_extensions: [".jpg", ".avif"],
	layout: {
		image_column: ".col-4",
	},
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path, ModeMenu)
	require.NoError(t, err)

	want := DefaultSettings(ModeMenu)
	want.OutputDir = "/srv/cafe"
	want.TimeoutSeconds = 15
	want.AllowedExtensions = []string{".jpg", ".avif"}
	want.Layout.ImageColumn = ".col-4"

	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 15*time.Second, s.Timeout())
	assert.Equal(t, extract.AllowList{".jpg", ".avif"}, s.ToAllowList())
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json5")
	require.NoError(t, os.WriteFile(path, []byte("{output_dir: "), 0644))

	_, err := Load(path, ModeImages)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "negative.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{chunk_size: -1}`), 0644))

	_, err := Load(path, ModeImages)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	s, err := LoadFromEnv(ModeMenu)
	require.NoError(t, err)
	assert.Equal(t, "menu_items", s.OutputDir)

	path := filepath.Join(t.TempDir(), "grabr.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{user_agent: "test-agent/1.0"}`), 0644))
	t.Setenv(EnvConfigPath, path)

	s, err = LoadFromEnv(ModeMenu)
	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", s.UserAgent)
	assert.Equal(t, "menu_items", s.OutputDir)
}

func TestMerge_FlagsOverrideFile(t *testing.T) {
	s := DefaultSettings(ModeImages)
	s.OutputDir = "/from/file"
	s.TimeoutSeconds = 20

	require.NoError(t, s.Merge(&Settings{OutputDir: "/from/flag"}))
	assert.Equal(t, "/from/flag", s.OutputDir)
	assert.Equal(t, 20, s.TimeoutSeconds)
}
