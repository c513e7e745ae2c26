// Package http provides the HTTP client used to fetch pages and images.
//
// The Client in this package handles:
//   - A fixed browser-like User-Agent header
//   - Charset detection, so pages are always returned as UTF-8
//   - Streaming responses for downloads
//   - FetchError for transport failures and non-2xx statuses
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultUserAgent, 0)
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://cafe.example/menu")
//	var fe *http.FetchError
//	if errors.As(err, &fe) {
//	    fmt.Println(fe.StatusCode)
//	}
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
