package ioutils

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// turkishReplacer maps the Turkish letters that have no ASCII decomposition
// (or decompose badly, like dotless ı) to their usual ASCII spelling.
var turkishReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "C",
	"ğ", "g", "Ğ", "G",
	"ı", "i", "İ", "I",
	"ö", "o", "Ö", "O",
	"ş", "s", "Ş", "S",
	"ü", "u", "Ü", "U",
)

var (
	nonSlugChars   = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts free text into a lowercase, ASCII-only token that is safe
// to use as a file or folder name.
//
// The following transformations are applied, in order:
//   - Turkish letters → ASCII equivalents (ç→c, ğ→g, ı→i, İ→I, ö→o, ş→s, ü→u)
//   - Unicode compatibility decomposition (NFKD), dropping non-ASCII remainders
//   - Lowercasing
//   - Removal of everything except letters, digits, underscore, hyphen and whitespace
//   - Whitespace/hyphen runs → single hyphen
//   - Leading and trailing hyphens/underscores trimmed
//
// Slugify is idempotent: Slugify(Slugify(s)) == Slugify(s).
//
// Example:
//
//	Slugify("Çörek Şiş")         // Returns "corek-sis"
//	Slugify("Café  Crème -- XL") // Returns "cafe-creme-xl"
func Slugify(text string) string {
	s := turkishReplacer.Replace(text)
	s = foldASCII(s)
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}

// SlugOrHash returns Slugify(text), or "item-<hash>" when the slug would be
// empty (e.g. a title written entirely in a non-Latin script).
//
// The hash is the first 6 hex digits of md5(text), so the same title always
// maps to the same folder.
func SlugOrHash(text string) string {
	if slug := Slugify(text); slug != "" {
		return slug
	}
	sum := md5.Sum([]byte(text))
	return "item-" + hex.EncodeToString(sum[:])[:6]
}

// foldASCII decomposes s with NFKD and drops every rune outside ASCII.
func foldASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
