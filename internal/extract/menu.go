package extract

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/handiism/grabr/internal/model"
)

// Layout describes the page-builder markup of a menu card.
//
// A card is an element matching Container that directly owns at least one
// ImageColumn and one ContentColumn. "Directly" means the column's nearest
// Container ancestor is the card itself, so the outer grid of a page with
// nested sections does not swallow the inner cards.
//
// The default layout targets Elementor's grid classes. Other page builders
// need their own Layout; the heuristic does not generalise.
type Layout struct {
	// Container selects the grid element (e.g. ".elementor-container").
	Container string

	// ImageColumn selects the narrow image column.
	ImageColumn string

	// ContentColumn selects the wide text column.
	ContentColumn string
}

// DefaultLayout returns the Elementor two-column layout: a 25% or 33% image
// column next to a 75% or 66% content column.
func DefaultLayout() Layout {
	return Layout{
		Container:     ".elementor-container",
		ImageColumn:   ".elementor-col-33, .elementor-col-25",
		ContentColumn: ".elementor-col-66, .elementor-col-75",
	}
}

// Candidate is the outcome for one matched container: either an Item or a Skip.
type Candidate struct {
	Item *model.MenuItem
	Skip *ParseSkip
}

// MenuExtractor extracts menu cards from pages built with one Layout.
//
// Example usage:
//
//	extractor := NewMenuExtractor(DefaultLayout(), AllowList(DefaultAllowedExtensions))
//
//	doc, _ := NewDocument(html)
//	page, _ := ParsePageURL("https://cafe.example/menu/")
//	candidates := extractor.Extract(doc, page)
//	for _, item := range Items(candidates) {
//	    fmt.Println(item.Title, item.ImageURL)
//	}
type MenuExtractor struct {
	layout    Layout
	resolvers []ImageResolver
}

// NewMenuExtractor creates a MenuExtractor using the DefaultResolvers chain.
func NewMenuExtractor(layout Layout, allow AllowList) *MenuExtractor {
	return NewMenuExtractorWithResolvers(layout, DefaultResolvers(allow)...)
}

// NewMenuExtractorWithResolvers creates a MenuExtractor with an explicit
// resolver chain. Resolvers are tried in order; the first hit wins.
func NewMenuExtractorWithResolvers(layout Layout, resolvers ...ImageResolver) *MenuExtractor {
	return &MenuExtractor{
		layout:    layout,
		resolvers: resolvers,
	}
}

// Layout returns the layout the extractor matches.
func (e *MenuExtractor) Layout() Layout {
	return e.layout
}

// Extract returns one Candidate per matched container, in document order.
//
// For each container:
//   - Title is the text of the first h1..h6; without one the container is skipped
//   - Description is the text of the first <p>, or empty
//   - ImageURL comes from the resolver chain, resolved against page
//
// A container with a title but neither description nor image is skipped.
func (e *MenuExtractor) Extract(doc *goquery.Document, page *url.URL) []Candidate {
	var candidates []Candidate

	index := 0
	doc.Find(e.layout.Container).Each(func(_ int, container *goquery.Selection) {
		if !e.owns(container, e.layout.ImageColumn) || !e.owns(container, e.layout.ContentColumn) {
			return
		}
		candidates = append(candidates, e.extractCard(index, container, page))
		index++
	})

	return candidates
}

func (e *MenuExtractor) extractCard(index int, container *goquery.Selection, page *url.URL) Candidate {
	skip := func(reason error) Candidate {
		return Candidate{Skip: &ParseSkip{Index: index, Element: "container", Reason: reason}}
	}

	title := text(container.Find("h1, h2, h3, h4, h5, h6").First())
	if title == "" {
		return skip(ErrNoTitle)
	}

	item := &model.MenuItem{
		Title:       title,
		Description: text(container.Find("p").First()),
		ImageURL:    e.resolveImage(container, page),
	}

	if item.Description == "" && item.ImageURL == "" {
		return skip(ErrTitleOnly)
	}
	return Candidate{Item: item}
}

// resolveImage runs the resolver chain and returns the first absolute URL.
func (e *MenuExtractor) resolveImage(container *goquery.Selection, page *url.URL) string {
	for _, resolver := range e.resolvers {
		ref, ok := resolver(container)
		if !ok {
			continue
		}
		abs, err := resolve(page, ref)
		if err != nil {
			continue
		}
		return abs
	}
	return ""
}

// owns reports whether container is the nearest Container ancestor of at
// least one element matching column.
func (e *MenuExtractor) owns(container *goquery.Selection, column string) bool {
	return container.Find(column).FilterFunction(func(_ int, col *goquery.Selection) bool {
		return col.Parent().Closest(e.layout.Container).IsSelection(container)
	}).Length() > 0
}

// Items returns the extracted items of candidates, in order.
func Items(candidates []Candidate) []*model.MenuItem {
	var items []*model.MenuItem
	for _, c := range candidates {
		if c.Item != nil {
			items = append(items, c.Item)
		}
	}
	return items
}

// Skips returns the skip records of candidates, in order.
func Skips(candidates []Candidate) []ParseSkip {
	var skips []ParseSkip
	for _, c := range candidates {
		if c.Skip != nil {
			skips = append(skips, *c.Skip)
		}
	}
	return skips
}
