// Package ioutils provides file system utilities for grabr.
//
// This package contains functions for:
//   - Directory creation
//   - File writing, including BOM-prefixed UTF-8 text records
//   - Slug generation for file and folder names
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"os"

	"golang.org/x/text/encoding/unicode"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Parameters:
//   - ctx: Context for cancellation, checked before the file is touched
//   - path: File path to write to
//   - data: Bytes to write
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteTextBOM writes text as UTF-8 prefixed with a byte order mark.
//
// Some desktop text viewers only detect UTF-8 when the BOM is present, which
// matters for Turkish menu text. The file is created or truncated.
//
// Example:
//
//	err := WriteTextBOM(ctx, "/out/latte/latte_details.txt", "Title: Latte\n")
//	// File starts with EF BB BF
func WriteTextBOM(ctx context.Context, path, text string) error {
	encoded, err := unicode.UTF8BOM.NewEncoder().String(text)
	if err != nil {
		return err
	}
	return WriteFile(ctx, path, []byte(encoded))
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/out/menu_items/latte")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
