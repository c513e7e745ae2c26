package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/handiism/grabr/internal/extract"
	"github.com/titanous/json5"
)

// EnvConfigPath names the environment variable holding the optional settings file.
const EnvConfigPath = "GRABR_CONFIG"

// DefaultChunkSize is the read buffer used while streaming downloads.
const DefaultChunkSize = 8192

// Mode selects which pipeline the settings are for.
type Mode string

const (
	ModeImages Mode = "images"
	ModeMenu   Mode = "menu"
)

// ErrInvalidSettings is returned by Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds all configuration options.
type Settings struct {
	// Output
	OutputDir string `json:"output_dir"`
	LogFile   string `json:"log_file"`

	// Network
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"` // 0 disables the timeout
	ChunkSize      int    `json:"chunk_size"`

	// Menu extraction
	AllowedExtensions []string       `json:"allowed_extensions"`
	Layout            LayoutSettings `json:"layout"`
}

// LayoutSettings is the JSON form of extract.Layout.
type LayoutSettings struct {
	Container     string `json:"container"`
	ImageColumn   string `json:"image_column"`
	ContentColumn string `json:"content_column"`
}

// DefaultSettings returns settings with default values for mode.
func DefaultSettings(mode Mode) *Settings {
	layout := extract.DefaultLayout()
	s := &Settings{
		OutputDir:         "downloads",
		LogFile:           "grabr.log",
		ChunkSize:         DefaultChunkSize,
		AllowedExtensions: append([]string(nil), extract.DefaultAllowedExtensions...),
		Layout: LayoutSettings{
			Container:     layout.Container,
			ImageColumn:   layout.ImageColumn,
			ContentColumn: layout.ContentColumn,
		},
	}
	if mode == ModeMenu {
		s.OutputDir = "menu_items"
		s.LogFile = "menugrabr.log"
	}
	return s
}

// Load reads settings from a JSON5 file and merges them over the defaults
// for mode.
//
// Only fields present with a non-zero value in the file override a default.
// A missing file is not an error; the defaults are returned.
func Load(path string, mode Mode) (*Settings, error) {
	settings := DefaultSettings(mode)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	var file Settings
	if err := json5.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := settings.Merge(&file); err != nil {
		return nil, err
	}

	return settings, settings.Validate()
}

// LoadFromEnv loads the file named by GRABR_CONFIG, or returns the defaults
// when the variable is unset.
func LoadFromEnv(mode Mode) (*Settings, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return DefaultSettings(mode), nil
	}
	return Load(path, mode)
}

// Merge copies every non-zero field of override into s.
func (s *Settings) Merge(override *Settings) error {
	if err := mergo.Merge(s, *override, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge settings: %w", err)
	}
	return nil
}

// Validate checks that the settings can drive a run.
func (s *Settings) Validate() error {
	switch {
	case s.OutputDir == "":
		return fmt.Errorf("%w: output_dir is empty", ErrInvalidSettings)
	case s.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidSettings, s.ChunkSize)
	case s.TimeoutSeconds < 0:
		return fmt.Errorf("%w: timeout_seconds must not be negative, got %d", ErrInvalidSettings, s.TimeoutSeconds)
	case s.Layout.Container == "" || s.Layout.ImageColumn == "" || s.Layout.ContentColumn == "":
		return fmt.Errorf("%w: layout selectors must not be empty", ErrInvalidSettings)
	}
	return nil
}

// Timeout returns the per-request timeout, zero meaning none.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ToLayout converts settings to an extract.Layout.
func (s *Settings) ToLayout() extract.Layout {
	return extract.Layout{
		Container:     s.Layout.Container,
		ImageColumn:   s.Layout.ImageColumn,
		ContentColumn: s.Layout.ContentColumn,
	}
}

// ToAllowList converts settings to an extract.AllowList.
func (s *Settings) ToAllowList() extract.AllowList {
	return extract.AllowList(s.AllowedExtensions)
}
