// Package model defines the core data structures used throughout grabr.
//
// # Records
//
// ImageRecord is an absolute image URL found by the image extractor.
// MenuItem is one menu card found by the menu extractor:
//
//	item := &model.MenuItem{Title: "Latte", Description: "Hot milk coffee"}
//	fmt.Print(item.Details()) // text record written next to the image
//
// # File Names
//
// Downloaded files are named deterministically from their source:
//
//	model.ImageFileName(url, contentType, time.Now()) // URL basename or image_<ts>_<hash>.<ext>
//	model.MenuImageFileName(slug, contentType)        // <slug>.<ext>
//	model.DetailsFileName(slug)                       // <slug>_details.txt
//
// The extension is inferred from the response Content-Type, defaulting to "jpg".
package model
