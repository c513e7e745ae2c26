package extract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Skip reasons reported through ParseSkip.
var (
	ErrInlineImage = errors.New("inline data: source")
	ErrMissingSrc  = errors.New("missing src attribute")
	ErrBadURL      = errors.New("unresolvable URL")
	ErrNoTitle     = errors.New("no heading found")
	ErrTitleOnly   = errors.New("title without description or image")
	ErrInvalidPage = errors.New("invalid page URL")
)

// ParseSkip records an element that was skipped during extraction.
//
// Skips never abort a batch; callers collect them for logging. Use errors.Is
// on a ParseSkip to test the reason:
//
//	for _, skip := range skips {
//	    if errors.Is(skip, extract.ErrTitleOnly) {
//	        ...
//	    }
//	}
type ParseSkip struct {
	// Index is the position of the element among the elements of its kind
	// (images for image mode, matched containers for menu mode).
	Index int

	// Element names what was skipped, e.g. "img" or "container".
	Element string

	// Reason is one of the Err* sentinels of this package, possibly wrapped.
	Reason error
}

func (s ParseSkip) Error() string {
	return fmt.Sprintf("skipped %s #%d: %v", s.Element, s.Index, s.Reason)
}

func (s ParseSkip) Unwrap() error {
	return s.Reason
}

// NewDocument parses markup into a queryable document.
func NewDocument(markup string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}

// ParsePageURL parses the URL of the page the markup came from. Relative
// references in the page are resolved against it.
func ParsePageURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidPage, rawURL)
	}
	return u, nil
}

// resolve turns a reference found in the page into an absolute URL.
func resolve(base *url.URL, ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadURL, err)
	}
	return base.ResolveReference(u).String(), nil
}

// isInline reports whether ref embeds its data instead of pointing to it.
func isInline(ref string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ref)), "data:")
}

// text returns the whitespace-normalised text of a selection.
func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
