package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrEmptyPath = errors.New("render: empty image path")

// Images loads tileset images from disk into ebiten images.
type Images struct {
	// ReadFile defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

func NewImages() *Images {
	return &Images{ReadFile: os.ReadFile}
}

// Load decodes the image at path and uploads it as an *ebiten.Image.
func (i *Images) Load(path string) (image.Image, error) {
	img, err := i.Decode(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// Decode reads and decodes the image at path without creating a GPU image.
func (i *Images) Decode(path string) (image.Image, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	readFile := i.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	b, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", path, err)
	}
	return img, nil
}

// Release frees the GPU memory of an image returned by Load. Other image
// types are left to the garbage collector.
func (i *Images) Release(img image.Image) {
	if eimg, ok := img.(*ebiten.Image); ok && eimg != nil {
		eimg.Deallocate()
	}
}
