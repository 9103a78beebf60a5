package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, path string, encode func(*os.File, image.Image) error) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 0xff, A: 0xff})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, encode(f, img))
}

func TestDecodeFormats(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		file   string
		encode func(*os.File, image.Image) error
	}{
		{"png", "tiles.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }},
		{"bmp", "tiles.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }},
	}

	images := NewImages()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(dir, c.file)
			writeImage(t, path, c.encode)

			img, err := images.Decode(path)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
			r, _, _, a := img.At(1, 1).RGBA()
			assert.Equal(t, uint32(0xffff), r)
			assert.Equal(t, uint32(0xffff), a)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))

	images := NewImages()

	_, err := images.Decode("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = images.Decode(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = images.Decode(garbage)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestReleaseIgnoresForeignImages(t *testing.T) {
	images := NewImages()
	assert.NotPanics(t, func() {
		images.Release(image.NewRGBA(image.Rect(0, 0, 1, 1)))
		images.Release(nil)
	})
}
