package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/grabr/internal/http"
	ioutils "github.com/handiism/grabr/internal/io"
	"github.com/handiism/grabr/internal/model"
)

// ErrNotImage is returned when a response does not declare an image media type.
var ErrNotImage = errors.New("not an image")

// TransferEvent reports bytes written for one file.
//
// Total is the declared Content-Length, or zero when the server did not send
// one.
type TransferEvent struct {
	Name    string
	Written int64
	Total   int64
}

// NameFunc derives the file name once the response Content-Type is known.
type NameFunc func(contentType string) string

// Downloader streams single images to disk.
//
// Example usage:
//
//	d := NewDownloader(client, 8192)
//	path, err := d.Download(ctx, "https://cafe.example/img/latte.jpg", "menu_items/latte",
//	    func(contentType string) string { return "latte.jpg" })
//	if errors.Is(err, ErrNotImage) {
//	    // Server answered with HTML, nothing was written
//	}
type Downloader struct {
	httpClient   *http.Client
	imageService *ioutils.ImageService
	chunkSize    int

	onProgress func(ProgressEvent)
	onTransfer func(TransferEvent)
}

// NewDownloader creates a Downloader reading the body in chunkSize pieces.
func NewDownloader(client *http.Client, chunkSize int) *Downloader {
	return &Downloader{
		httpClient:   client,
		imageService: ioutils.NewImageService(),
		chunkSize:    chunkSize,
	}
}

// Download fetches url into dir and returns the written path.
//
// Responses whose media type does not start with "image/" are rejected with
// ErrNotImage before dir is created. A copy that fails part way removes the
// partial file.
func (d *Downloader) Download(ctx context.Context, url, dir string, name NameFunc) (string, error) {
	resp, err := d.httpClient.Open(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(model.MediaType(contentType), "image/") {
		return "", fmt.Errorf("%w: content type %q for URL: %s", ErrNotImage, contentType, url)
	}

	if err := ioutils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	fileName := name(contentType)
	path := filepath.Join(dir, fileName)
	if err := d.write(ctx, path, fileName, resp.Body, resp.ContentLength); err != nil {
		return "", err
	}

	d.probe(ctx, path)
	return path, nil
}

func (d *Downloader) write(ctx context.Context, path, name string, body io.Reader, length int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	pw := &http.ProgressWriter{
		Writer: f,
		Total:  max(length, 0),
		OnUpdate: func(written, total int64) {
			if d.onTransfer != nil {
				d.onTransfer(TransferEvent{Name: name, Written: written, Total: total})
			}
		},
	}

	// Hide WriterTo/ReaderFrom so CopyBuffer uses the chunk buffer.
	_, err = io.CopyBuffer(pw, struct{ io.Reader }{body}, make([]byte, d.chunkSize))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// probe logs the image dimensions. Failure is not an error: some valid
// images (SVG, AVIF, ICO) have no registered decoder.
func (d *Downloader) probe(ctx context.Context, path string) {
	info, err := d.imageService.Probe(ctx, path)
	if err != nil {
		d.progress(ProgressEvent{Message: fmt.Sprintf("Could not read image header of %s: %v", filepath.Base(path), err), Level: LevelVerbose})
		return
	}
	d.progress(ProgressEvent{Message: fmt.Sprintf("Image %s: %s", filepath.Base(path), info), Level: LevelVerbose})
}

func (d *Downloader) progress(event ProgressEvent) {
	if d.onProgress != nil {
		d.onProgress(event)
	}
}
