package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultUserAgent is a desktop Chrome identity. Several menu sites refuse
// requests from obvious non-browser clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// FetchError reports a failed page or image request.
//
// StatusCode is zero when the request failed before a response arrived
// (DNS, connection, TLS); Err then holds the transport error.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client wraps HTTP operations with a fixed browser-like identity.
//
// Client provides:
//   - Configured User-Agent header on every request
//   - Page fetching with charset detection (result is always UTF-8)
//   - Streaming responses for file downloads
//
// Example usage:
//
//	client := NewClient(DefaultUserAgent, 0)
//
//	// Fetch HTML content
//	html, err := client.GetString(ctx, "https://cafe.example/menu")
//
//	// Stream an image
//	resp, err := client.Open(ctx, imageURL)
//	defer resp.Body.Close()
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// An empty userAgent selects DefaultUserAgent. A zero timeout means requests
// never time out, which is the net/http default.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// UserAgent returns the identity sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// Zero when the server did not declare a length.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Open performs a GET request and returns the response with its body unread.
//
// The caller must close the response body. Any transport error or non-2xx
// status is returned as a *FetchError, in which case the body is already
// closed.
//
// Example:
//
//	resp, err := client.Open(ctx, "https://cafe.example/img/latte.jpg")
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()
func (c *Client) Open(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// GetString performs a GET request and returns the body decoded to UTF-8.
//
// The source encoding is taken from the Content-Type header, a BOM or a
// <meta charset> tag within the first 1024 bytes, in that order of
// precedence. Pages without any hint are assumed to be UTF-8.
//
// Example:
//
//	html, err := client.GetString(ctx, "https://cafe.example/menu")
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	resp, err := c.Open(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyReader := bufio.NewReader(resp.Body)
	e := determineEncoding(bodyReader, resp.Header.Get("Content-Type"))
	utf8Reader := transform.NewReader(bodyReader, e.NewDecoder())

	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	return string(body), nil
}

// determineEncoding sniffs the encoding of an HTML body without consuming it.
func determineEncoding(r *bufio.Reader, contentType string) encoding.Encoding {
	peek, err := r.Peek(1024)
	if err != nil && len(peek) == 0 {
		return unicode.UTF8
	}

	e, _, _ := charset.DetermineEncoding(peek, contentType)
	return e
}
