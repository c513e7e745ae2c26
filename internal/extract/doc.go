// Package extract scans HTML pages for downloadable content.
//
// The package handles two use cases:
//
//  1. Collecting every image URL on a page
//  2. Collecting menu cards (title, description, image) from pages built
//     with one page-builder's two-column grid
//
// # Image Extraction
//
//	doc, _ := extract.NewDocument(html)
//	page, _ := extract.ParsePageURL(pageURL)
//	records, skips := extract.Images(doc, page)
//
// # Menu Extraction
//
// Menu extraction is a site-specific heuristic. A Layout names the grid
// container and its narrow image and wide content columns; the image of each
// card is found by an ordered chain of ImageResolver functions:
//
//	extractor := extract.NewMenuExtractor(extract.DefaultLayout(),
//	    extract.AllowList(extract.DefaultAllowedExtensions))
//	candidates := extractor.Extract(doc, page)
//	items := extract.Items(candidates)
//	skips := extract.Skips(candidates)
//
// Elements that cannot be used are reported as ParseSkip values rather than
// errors, so one broken card never hides the others.
package extract
