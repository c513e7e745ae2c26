package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Çörek Şiş", "corek-sis"},
		{"Latte", "latte"},
		{"Türk Kahvesi (Orta Şekerli)", "turk-kahvesi-orta-sekerli"},
		{"IĞDIR Usulü Köfte", "igdir-usulu-kofte"},
		{"İSKENDER", "iskender"},
		{"Café  Crème -- XL", "cafe-creme-xl"},
		{"  --Su & Soda__  ", "su-soda"},
		{"snake_case_kept", "snake_case_kept"},
		{"100% Arabica!", "100-arabica"},
		{"ｆｕｌｌ－ｗｉｄｔｈ", "full-width"},
		{"", ""},
		{"★★★", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"Çörek Şiş",
		"Türk Kahvesi (Orta Şekerli)",
		"a _ b - c",
		"already-a-slug",
		"ÇAY_ocağı--",
	}

	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "Slugify should be idempotent for %q", in)
	}
}

func TestSlugOrHash(t *testing.T) {
	assert.Equal(t, "corek-sis", SlugOrHash("Çörek Şiş"))

	got := SlugOrHash("烏龍茶")
	assert.Regexp(t, `^item-[0-9a-f]{6}$`, got)
	assert.Equal(t, got, SlugOrHash("烏龍茶"), "fallback must be deterministic")
	assert.NotEqual(t, got, SlugOrHash("抹茶"))
}

func TestWriteTextBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latte_details.txt")

	require.NoError(t, WriteTextBOM(context.Background(), path, "Title: Çay\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing BOM: % x", data[:3])
	assert.Equal(t, "Title: Çay\n", string(data[3:]))
}

func TestWriteFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "never.txt")
	err := WriteFile(ctx, path, []byte("x"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "menu_items", "latte")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "existing directory is not an error")
	assert.DirExists(t, dir)
}

func TestImageService_Probe(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	svc := NewImageService()
	info, err := svc.Probe(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ImageInfo{Format: "png", Width: 32, Height: 16}, info)
	assert.Equal(t, "png 32x16", info.String())

	notImage := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(notImage, []byte("<html></html>"), 0644))
	_, err = svc.Probe(context.Background(), notImage)
	assert.ErrorIs(t, err, image.ErrFormat)
}
