// Package config provides configuration management for grabr and menugrabr.
//
// This package handles:
//   - Per-mode default settings
//   - Loading a JSON5 settings file and merging it over the defaults
//   - Conversion to extract.Layout and extract.AllowList
//
// # Default Settings
//
//	settings := config.DefaultSettings(config.ModeMenu)
//	// Writes to ./menu_items, logs to menugrabr.log
//	// Elementor two-column layout, .jpg .jpeg .png .webp
//
// # Loading from File
//
// The file is optional and may use JSON5 (comments, trailing commas).
// Fields left out keep their defaults:
//
//	// grabr.json5
//	{
//	    output_dir: "/srv/cafe/images",
//	    timeout_seconds: 30,
//	}
//
//	settings, err := config.Load("grabr.json5", config.ModeImages)
//
// The command-line tools read the file named by the GRABR_CONFIG environment
// variable through LoadFromEnv; command-line flags are merged last.
package config
