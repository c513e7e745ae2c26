package download

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/handiism/grabr/internal/config"
	"github.com/handiism/grabr/internal/extract"
	"github.com/handiism/grabr/internal/http"
	ioutils "github.com/handiism/grabr/internal/io"
	"github.com/handiism/grabr/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Summary is the outcome of one run.
type Summary struct {
	// Found is the number of images (image mode) or menu items (menu mode)
	// extracted from the page.
	Found int

	// Succeeded is the number of those that were written completely.
	Succeeded int

	// Skipped lists the page elements that could not be used.
	Skipped []extract.ParseSkip
}

// Manager runs the fetch, extract and download pipeline for one page.
//
// Items are processed one at a time in document order. A failed item is
// reported and the run continues with the next one; only a failure to fetch
// or parse the page itself ends a run early.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	downloader *Downloader
	extractor  *extract.MenuExtractor

	now        func() time.Time
	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, client *http.Client, onProgress func(ProgressEvent)) *Manager {
	downloader := NewDownloader(client, settings.ChunkSize)
	downloader.onProgress = onProgress

	return &Manager{
		settings:   settings,
		httpClient: client,
		downloader: downloader,
		extractor:  extract.NewMenuExtractor(settings.ToLayout(), settings.ToAllowList()),
		now:        time.Now,
		onProgress: onProgress,
	}
}

// SetTransferCallback registers fn to receive byte counts while files are
// written. Passing nil disables transfer reporting.
func (m *Manager) SetTransferCallback(fn func(TransferEvent)) {
	m.downloader.onTransfer = fn
}

// RunImages downloads every image on the page at pageURL into the output
// directory.
func (m *Manager) RunImages(ctx context.Context, pageURL string) (Summary, error) {
	var summary Summary

	doc, page, err := m.fetchPage(ctx, pageURL)
	if err != nil {
		return summary, err
	}

	records, skips := extract.Images(doc, page)
	summary.Found = len(records)
	summary.Skipped = skips
	m.reportSkips(skips)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d images on the page", len(records)), Level: LevelInfo})
	if len(records) == 0 {
		m.progress(ProgressEvent{Message: "No images found on the page", Level: LevelWarning})
		return summary, nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Starting download of %d images...", len(records)), Level: LevelInfo})
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		imageURL := record.String()
		path, err := m.downloader.Download(ctx, imageURL, m.settings.OutputDir, func(contentType string) string {
			return model.ImageFileName(imageURL, contentType, m.now())
		})
		if err != nil {
			m.reportFailure(imageURL, err)
			continue
		}

		summary.Succeeded++
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully downloaded: %s", filepath.Base(path)), Level: LevelInfo})
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Download complete. Successfully downloaded %d out of %d images.", summary.Succeeded, summary.Found),
		Level:   LevelSuccess,
	})
	return summary, nil
}

// RunMenu saves every menu card on the page at pageURL.
//
// Each item gets its own folder named after the slug of its title, holding
// <slug>_details.txt and, when the card has one, <slug>.<ext>. Items with
// equal slugs share and overwrite one folder.
func (m *Manager) RunMenu(ctx context.Context, pageURL string) (Summary, error) {
	var summary Summary

	doc, page, err := m.fetchPage(ctx, pageURL)
	if err != nil {
		return summary, err
	}

	candidates := m.extractor.Extract(doc, page)
	items := extract.Items(candidates)
	summary.Found = len(items)
	summary.Skipped = extract.Skips(candidates)
	m.reportSkips(summary.Skipped)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d menu items on the page", len(items)), Level: LevelInfo})
	if len(items) == 0 {
		m.progress(ProgressEvent{Message: "No menu items found on the page", Level: LevelWarning})
		return summary, nil
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := m.saveItem(ctx, item); err != nil {
			m.reportFailure(item.Title, err)
			continue
		}

		summary.Succeeded++
		m.progress(ProgressEvent{Message: fmt.Sprintf("Saved menu item: %s", item.Title), Level: LevelInfo})
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Download complete. Successfully downloaded %d out of %d menu items.", summary.Succeeded, summary.Found),
		Level:   LevelSuccess,
	})
	return summary, nil
}

// saveItem writes the details record first so a failed image download still
// leaves the text behind.
func (m *Manager) saveItem(ctx context.Context, item *model.MenuItem) error {
	slug := ioutils.SlugOrHash(item.Title)
	dir := filepath.Join(m.settings.OutputDir, slug)

	if err := ioutils.EnsureDir(dir); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	detailsPath := filepath.Join(dir, model.DetailsFileName(slug))
	if err := ioutils.WriteTextBOM(ctx, detailsPath, item.Details()); err != nil {
		return fmt.Errorf("write details: %w", err)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s", detailsPath), Level: LevelVerbose})

	if !item.HasImage() {
		return nil
	}

	_, err := m.downloader.Download(ctx, item.ImageURL, dir, func(contentType string) string {
		return model.MenuImageFileName(slug, contentType)
	})
	return err
}

// fetchPage downloads and parses the page. Errors are fatal to the run.
func (m *Manager) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, *url.URL, error) {
	page, err := extract.ParsePageURL(pageURL)
	if err != nil {
		return nil, nil, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching page: %s", page), Level: LevelVerbose})
	html, err := m.httpClient.GetString(ctx, page.String())
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching page: %w", err)
	}

	doc, err := extract.NewDocument(html)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing page: %w", err)
	}
	return doc, page, nil
}

func (m *Manager) reportSkips(skips []extract.ParseSkip) {
	for _, skip := range skips {
		m.progress(ProgressEvent{Message: skip.Error(), Level: LevelVerbose})
	}
}

func (m *Manager) reportFailure(subject string, err error) {
	if errors.Is(err, ErrNotImage) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", subject, err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", subject, err), Level: LevelError})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
