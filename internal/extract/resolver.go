package extract

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultAllowedExtensions are the image formats accepted by the srcset and
// fallback resolvers.
var DefaultAllowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// sourceAttrs are checked in order. Lazy-loading plugins leave a placeholder
// in src and the real image in data-src or data-lazy-src.
var sourceAttrs = []string{"data-src", "data-lazy-src", "src"}

// srcsetAttrs are checked on <picture><source> and <img>, in order.
var srcsetAttrs = []string{"srcset", "data-srcset"}

// AllowList decides which image references are worth downloading.
//
// Entries are extensions including the dot. Matching is case-insensitive and
// ignores the query string and fragment.
type AllowList []string

// Allows reports whether ref points to an allowed, non-inline, non-vector image.
//
// Example:
//
//	AllowList{".jpg", ".png"}.Allows("/img/latte.JPG?v=3") // true
//	AllowList{".jpg", ".png"}.Allows("/img/logo.svg")      // false
func (a AllowList) Allows(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || isInline(ref) {
		return false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return false
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" || ext == ".svg" {
		return false
	}
	for _, allowed := range a {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// ImageResolver finds an image reference inside a menu container.
//
// A resolver is a pure function of the container markup. It returns the raw
// reference as found in the page (possibly relative) and whether it found one.
type ImageResolver func(container *goquery.Selection) (string, bool)

// DefaultResolvers returns the resolver chain used by NewMenuExtractor:
//
//  1. SizedImage: an <img> carrying a WordPress size-variant class
//  2. SourceSet: the first allowed srcset candidate
//  3. AnyImage: any <img> whose lazy or plain source is allowed
func DefaultResolvers(allow AllowList) []ImageResolver {
	return []ImageResolver{
		SizedImage(),
		SourceSet(allow),
		AnyImage(allow),
	}
}

// SizedImage resolves the first <img> with a "size-*" class (size-full,
// size-large, size-medium_large, ...). Lazy-load attributes win over src.
// Inline data: sources are rejected; no extension check is applied.
func SizedImage() ImageResolver {
	return func(container *goquery.Selection) (string, bool) {
		var found string
		container.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
			if !hasSizeClass(img) {
				return true
			}
			for _, attr := range sourceAttrs {
				v := strings.TrimSpace(img.AttrOr(attr, ""))
				if v != "" && !isInline(v) {
					found = v
					return false
				}
			}
			return true
		})
		return found, found != ""
	}
}

// SourceSet resolves the first srcset candidate whose URL passes allow.
//
// Candidates are read from <picture><source> elements and <img> elements, in
// document order. Width and density descriptors are ignored.
func SourceSet(allow AllowList) ImageResolver {
	return func(container *goquery.Selection) (string, bool) {
		var found string
		container.Find("picture source, img").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			for _, attr := range srcsetAttrs {
				for _, candidate := range parseSrcset(el.AttrOr(attr, "")) {
					if allow.Allows(candidate) {
						found = candidate
						return false
					}
				}
			}
			return true
		})
		return found, found != ""
	}
}

// AnyImage resolves the first <img> whose lazy-load attribute or src passes
// allow.
func AnyImage(allow AllowList) ImageResolver {
	return func(container *goquery.Selection) (string, bool) {
		var found string
		container.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
			for _, attr := range sourceAttrs {
				v := strings.TrimSpace(img.AttrOr(attr, ""))
				if allow.Allows(v) {
					found = v
					return false
				}
			}
			return true
		})
		return found, found != ""
	}
}

func hasSizeClass(img *goquery.Selection) bool {
	for _, class := range strings.Fields(img.AttrOr("class", "")) {
		if strings.HasPrefix(class, "size-") {
			return true
		}
	}
	return false
}

// parseSrcset returns the URLs of a srcset attribute, in order.
//
// URLs may contain commas (CDN transforms such as "w_300,c_fill"), so a
// candidate ends at whitespace, not at a comma. A comma glued to the end of a
// URL separates candidates without descriptors.
//
//	parseSrcset("a.jpg 300w, b.jpg 600w")      // ["a.jpg", "b.jpg"]
//	parseSrcset("/w_300,c_fill/a.jpg 1x,b.jpg") // ["/w_300,c_fill/a.jpg", "b.jpg"]
func parseSrcset(srcset string) []string {
	var urls []string
	rest := srcset
	for {
		rest = strings.TrimLeft(rest, srcsetSpace+",")
		if rest == "" {
			return urls
		}

		end := strings.IndexAny(rest, srcsetSpace)
		if end < 0 {
			end = len(rest)
		}
		candidate := rest[:end]
		rest = rest[end:]

		if strings.HasSuffix(candidate, ",") {
			candidate = strings.TrimRight(candidate, ",")
		} else {
			rest = skipDescriptors(rest)
		}
		if candidate != "" {
			urls = append(urls, candidate)
		}
	}
}

const srcsetSpace = " \t\n\r\f"

// skipDescriptors drops the descriptors of one candidate and the comma that
// ends them. Commas inside parentheses belong to the descriptor.
func skipDescriptors(s string) string {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return s[i+1:]
			}
		}
	}
	return ""
}
