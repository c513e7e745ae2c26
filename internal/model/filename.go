package model

import (
	"crypto/md5"
	"encoding/hex"
	"mime"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

// DefaultExtension is used when a media type maps to no known extension.
const DefaultExtension = "jpg"

// maxFileNameLength keeps derived names well below common filesystem limits.
const maxFileNameLength = 200

// imageExtensions maps image media types to the extension written to disk.
//
// The platform MIME table is only consulted for types missing here, because it
// returns several candidates for common types (".jfif", ".jpe", ".jpeg", ".jpg").
var imageExtensions = map[string]string{
	"image/jpeg":               "jpg",
	"image/jpg":                "jpg",
	"image/pjpeg":              "jpg",
	"image/png":                "png",
	"image/gif":                "gif",
	"image/webp":               "webp",
	"image/svg+xml":            "svg",
	"image/bmp":                "bmp",
	"image/avif":               "avif",
	"image/tiff":               "tiff",
	"image/x-icon":             "ico",
	"image/vnd.microsoft.icon": "ico",
}

// MediaType returns the lowercase media type of a Content-Type header value,
// without parameters.
//
//	MediaType("image/PNG; charset=binary") // Returns "image/png"
func MediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// ExtensionForContentType returns the file extension (without dot) for a
// Content-Type header value, falling back to DefaultExtension.
//
// Example:
//
//	ExtensionForContentType("image/webp")   // Returns "webp"
//	ExtensionForContentType("image/x-none") // Returns "jpg"
func ExtensionForContentType(contentType string) string {
	mediaType := MediaType(contentType)
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return DefaultExtension
}

// ImageFileName derives the on-disk name for an image downloaded in image mode.
//
// The basename of the URL path is reused when it carries an extension.
// Otherwise a name is synthesized from the download time and the URL hash:
//
//	image_<YYYYMMDD_HHMMSS>_<first 6 hex digits of md5(url)>.<ext>
//
// Example:
//
//	ImageFileName("https://x.test/a/cat.png?w=200", "image/png", now) // "cat.png"
//	ImageFileName("https://x.test/render", "image/webp", now)         // "image_20240102_150405_1a2b3c.webp"
func ImageFileName(rawURL, contentType string, now time.Time) string {
	if name := urlBaseName(rawURL); name != "" && path.Ext(name) != "" {
		if name = sanitizeFileName(name); name != "" {
			return truncateFileName(name)
		}
	}

	sum := md5.Sum([]byte(rawURL))
	return "image_" + now.Format("20060102_150405") + "_" + hex.EncodeToString(sum[:])[:6] +
		"." + ExtensionForContentType(contentType)
}

// MenuImageFileName derives the on-disk name for a menu item image from the
// item's slug and the response Content-Type.
//
//	MenuImageFileName("corek-sis", "image/png") // Returns "corek-sis.png"
func MenuImageFileName(slug, contentType string) string {
	return truncateFileName(slug + "." + ExtensionForContentType(contentType))
}

// DetailsFileName returns the name of the text record written for a menu item.
func DetailsFileName(slug string) string {
	return slug + "_details.txt"
}

// urlBaseName returns the last segment of the URL path, or "" when the path
// ends with a slash or the URL cannot be parsed.
func urlBaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := u.Path
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// truncateFileName shortens over-long names while keeping the extension.
func truncateFileName(name string) string {
	if len(name) <= maxFileNameLength {
		return name
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	keep := maxFileNameLength - len(ext)
	if keep <= 0 || len(ext) > 16 {
		return name[:maxFileNameLength]
	}
	// Avoid cutting a multi-byte rune in half.
	for keep > 0 && !isRuneStart(base[keep]) {
		keep--
	}
	return base[:keep] + ext
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Surrounding whitespace is removed
//
// Example:
//
//	sanitizeFileName("photo: 1/2.jpg") // Returns "photo_ 1_2.jpg"
func sanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
