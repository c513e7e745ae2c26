package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/grabr/internal/config"
	"github.com/handiism/grabr/internal/download"
	httpclient "github.com/handiism/grabr/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/gallery", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<img src="/img/cat.gif">`))
	})
	mux.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<div class="elementor-container">
			<div class="elementor-col-33"><img src="/img/cat.gif"><img src="/img/cay.jpg"></div>
			<div class="elementor-col-66"><h4>Kedi Çayı</h4><p>Sıcak</p></div>
		</div>`))
	})
	mux.HandleFunc("/img/cat.gif", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/gif")
		w.Write([]byte("GIF89a"))
	})
	mux.HandleFunc("/img/cay.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// withConfig points GRABR_CONFIG at a settings file whose log goes to a
// temporary directory.
func withConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "grabr.json5")
	content := `{log_file: "` + filepath.ToSlash(filepath.Join(dir, "test.log")) + `", ` + extra + `}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv(config.EnvConfigPath, path)
	return dir
}

func execute(t *testing.T, app App, stdin string, args ...string) error {
	t.Helper()
	cmd := NewCommand(app)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func TestImagesCommand(t *testing.T) {
	srv := newSite(t)
	dir := withConfig(t, "")
	out := filepath.Join(t.TempDir(), "downloads")

	err := execute(t, Images(), "", "--url", srv.URL+"/gallery", "--output", out)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "cat.gif"))
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data))

	logData, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "Download complete. Successfully downloaded 1 out of 1 images.")
}

func TestMenuCommand_PromptsForURL(t *testing.T) {
	srv := newSite(t)
	withConfig(t, "")
	out := filepath.Join(t.TempDir(), "menu_items")

	err := execute(t, Menu(), srv.URL+"/menu\n", "--output", out)
	require.NoError(t, err)

	details, err := os.ReadFile(filepath.Join(out, "kedi-cayi", "kedi-cayi_details.txt"))
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFTitle: Kedi Çayı\nDescription: Sıcak\n", string(details))

	// GIF is not on the menu allow-list, the JPEG next to it is.
	photo, err := os.ReadFile(filepath.Join(out, "kedi-cayi", "kedi-cayi.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(photo))
}

func TestCommand_OutputFromConfigFile(t *testing.T) {
	srv := newSite(t)
	out := filepath.Join(t.TempDir(), "from-config")
	withConfig(t, `output_dir: "`+filepath.ToSlash(out)+`"`)

	err := execute(t, Images(), "", "--url", srv.URL+"/gallery")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "cat.gif"))
	assert.NoError(t, err)
}

func TestCommand_FlagOverridesConfigFile(t *testing.T) {
	srv := newSite(t)
	fromFile := filepath.Join(t.TempDir(), "from-config")
	fromFlag := filepath.Join(t.TempDir(), "from-flag")
	withConfig(t, `output_dir: "`+filepath.ToSlash(fromFile)+`"`)

	err := execute(t, Images(), "", "--url", srv.URL+"/gallery", "--output", fromFlag)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(fromFlag, "cat.gif"))
	assert.NoError(t, err)
	_, err = os.Stat(fromFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCommand_EmptyOutputRejected(t *testing.T) {
	srv := newSite(t)
	withConfig(t, "")

	err := execute(t, Images(), "", "--url", srv.URL+"/gallery", "--output", "")
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestCommand_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	withConfig(t, "")

	err := execute(t, Images(), "", "--url", srv.URL, "--output", t.TempDir())

	var fetchErr *httpclient.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)

	var logged loggedError
	assert.True(t, errors.As(err, &logged))
}

func TestCommand_EmptyPrompt(t *testing.T) {
	withConfig(t, "")

	err := execute(t, Images(), "\n", "--output", t.TempDir())
	assert.Error(t, err)
}

func TestCommand_RejectsPositionalArgs(t *testing.T) {
	withConfig(t, "")

	err := execute(t, Images(), "", "https://cafe.example/")
	assert.Error(t, err)
}

func TestLogEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	events := []download.ProgressEvent{
		{Message: "verbose", Level: download.LevelVerbose},
		{Message: "info", Level: download.LevelInfo},
		{Message: "warning", Level: download.LevelWarning},
		{Message: "error", Level: download.LevelError},
		{Message: "success", Level: download.LevelSuccess},
	}
	for _, e := range events {
		logEvent(logger, e)
	}

	want := []zapcore.Level{
		zapcore.DebugLevel,
		zapcore.InfoLevel,
		zapcore.WarnLevel,
		zapcore.ErrorLevel,
		zapcore.InfoLevel,
	}
	entries := logs.AllUntimed()
	require.Len(t, entries, len(want))
	for i, entry := range entries {
		assert.Equal(t, want[i], entry.Level, entry.Message)
	}
}
