package model

import "strings"

// ImageRecord is an absolute image URL found on a page.
//
// It has no identity beyond the URL itself; duplicates are kept so that the
// download order matches document order.
type ImageRecord string

// String returns the URL.
func (r ImageRecord) String() string {
	return string(r)
}

// MenuItem represents one menu card extracted from a page.
//
// Example:
//
//	item := &MenuItem{
//	    Title:       "Latte",
//	    Description: "Hot milk coffee",
//	    ImageURL:    "https://cafe.example/img/latte.jpg",
//	}
//	fmt.Print(item.Details())
//	// Title: Latte
//	// Description: Hot milk coffee
type MenuItem struct {
	// Title is the card heading. Never empty for extracted items.
	Title string

	// Description is the first paragraph of the card, or empty.
	Description string

	// ImageURL is the absolute URL of the card image, or empty.
	ImageURL string
}

// HasImage returns true if the item has an image to download.
func (m *MenuItem) HasImage() bool {
	return m.ImageURL != ""
}

// Details renders the human readable text record stored next to the image.
//
// The description line is omitted when the item has no description.
func (m *MenuItem) Details() string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(m.Title)
	b.WriteString("\n")
	if m.Description != "" {
		b.WriteString("Description: ")
		b.WriteString(m.Description)
		b.WriteString("\n")
	}
	return b.String()
}
