package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/handiism/grabr/internal/model"
)

// Images returns the absolute URL of every <img> in doc, in document order.
//
// Images without a src, with an inline data: source, or with a src that
// cannot be parsed are reported as skips instead. Duplicates are kept.
// An empty result is not an error.
//
// Example:
//
//	doc, _ := NewDocument(html)
//	page, _ := ParsePageURL("https://cafe.example/gallery/")
//	records, skips := Images(doc, page)
func Images(doc *goquery.Document, page *url.URL) ([]model.ImageRecord, []ParseSkip) {
	var records []model.ImageRecord
	var skips []ParseSkip

	doc.Find("img").Each(func(i int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			skips = append(skips, ParseSkip{Index: i, Element: "img", Reason: ErrMissingSrc})
			return
		}
		if isInline(src) {
			skips = append(skips, ParseSkip{Index: i, Element: "img", Reason: ErrInlineImage})
			return
		}

		abs, err := resolve(page, src)
		if err != nil {
			skips = append(skips, ParseSkip{Index: i, Element: "img", Reason: err})
			return
		}
		records = append(records, model.ImageRecord(abs))
	})

	return records, skips
}
