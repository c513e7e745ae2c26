// Package ioutils provides file system and image utilities.
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/out/menu_items/latte")
//
//	// Write a text record readable by editors that need a BOM
//	err := ioutils.WriteTextBOM(ctx, "/out/menu_items/latte/latte_details.txt", text)
//
// # Slugs
//
// Use Slugify to turn free text (Turkish menu titles in particular) into an
// ASCII folder name:
//
//	ioutils.Slugify("Çörek Şiş") // Returns "corek-sis"
//
// # Image Inspection
//
// The ImageService reads image headers after a download:
//
//	svc := ioutils.NewImageService()
//	info, _ := svc.Probe(ctx, path) // format and dimensions
package ioutils
