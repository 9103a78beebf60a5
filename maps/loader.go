package maps

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/milk9111/tiledmap/render"
	"github.com/milk9111/tiledmap/tiled"
	"golang.org/x/sync/errgroup"
)

// Parser turns raw map bytes into a tiled.Map and releases it again.
type Parser interface {
	Parse(data []byte) (*tiled.Map, error)
	Free(m *tiled.Map)
}

// ImageSystem loads and releases tileset images.
type ImageSystem interface {
	Load(path string) (image.Image, error)
	Release(img image.Image)
}

// Policy decides what a failed tileset image does to the whole load.
type Policy int

const (
	// Lenient logs the failure, leaves the tileset without an image and
	// keeps going.
	Lenient Policy = iota
	// Strict aborts the load on the first failed image.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Loader loads Tiled maps and attaches their tileset images. The zero value
// is usable and falls back to the JSON parser, ebiten images, os.ReadFile
// and log.Default.
type Loader struct {
	Parser   Parser
	Images   ImageSystem
	ReadFile func(name string) ([]byte, error)
	Policy   Policy
	// Workers bounds the number of tileset images loaded at once. Values
	// below 2 load sequentially.
	Workers int
	Logger  *log.Logger
}

func NewLoader() *Loader {
	return &Loader{
		Parser:   tiled.JSONParser{},
		Images:   render.NewImages(),
		ReadFile: os.ReadFile,
		Workers:  1,
		Logger:   log.Default(),
	}
}

// LoadFile reads the map at path and resolves tileset images relative to the
// directory of path.
func (l *Loader) LoadFile(path string) (*Map, error) {
	data, err := l.readFile()(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrIO, path, err)
	}
	return l.LoadMemory(data, Basedir(path))
}

// LoadMemory parses data and attaches each tileset's image, resolved as
// baseDir + image reference. baseDir should be empty or end in a separator.
func (l *Loader) LoadMemory(data []byte, baseDir string) (*Map, error) {
	tm, err := l.parser().Parse(data)
	if err != nil {
		return nil, err
	}

	m := &Map{Map: tm, Tilesets: make([]*Tileset, len(tm.Tilesets))}
	for i, ts := range tm.Tilesets {
		m.Tilesets[i] = &Tileset{Tileset: ts}
	}

	failures := l.attachImages(m, baseDir)
	if len(failures) > 0 && l.Policy == Strict {
		l.Unload(m)
		return nil, failures[0]
	}
	m.Failures = failures
	return m, nil
}

// Unload releases every attached tileset image in order and then frees the
// parsed map. A nil map is ignored.
func (l *Loader) Unload(m *Map) {
	if m == nil {
		return
	}
	images := l.images()
	for _, ts := range m.Tilesets {
		if ts == nil || ts.Loaded == nil {
			continue
		}
		images.Release(ts.Loaded)
		ts.Loaded = nil
	}
	if m.Map != nil {
		l.parser().Free(m.Map)
		m.Map = nil
	}
}

func (l *Loader) attachImages(m *Map, baseDir string) []*ImageError {
	images := l.images()
	if l.Workers < 2 || len(m.Tilesets) < 2 {
		var failures []*ImageError
		for i, ts := range m.Tilesets {
			if ierr := l.attachImage(images, i, ts, baseDir); ierr != nil {
				failures = append(failures, ierr)
				if l.Policy == Strict {
					break
				}
			}
		}
		return failures
	}

	errs := make([]*ImageError, len(m.Tilesets))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(l.Workers)
	for i, ts := range m.Tilesets {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			ierr := l.attachImage(images, i, ts, baseDir)
			if ierr == nil {
				return nil
			}
			errs[i] = ierr
			if l.Policy == Strict {
				return ierr
			}
			return nil
		})
	}
	_ = g.Wait()

	var failures []*ImageError
	for _, ierr := range errs {
		if ierr != nil {
			failures = append(failures, ierr)
		}
	}
	return failures
}

func (l *Loader) attachImage(images ImageSystem, i int, ts *Tileset, baseDir string) *ImageError {
	ref := ts.Reference()
	if ref == "" {
		if ts.Tileset != nil && ts.Source != "" {
			ierr := &ImageError{Index: i, Tileset: ts.Name, Path: baseDir + ts.Source, Err: ErrExternalTileset}
			l.logger().Printf("tiledmap: skipping tileset %d: %v", i, ierr.Err)
			return ierr
		}
		return nil
	}

	img, err := LoadTilesetImage(images, ref, baseDir)
	if err != nil {
		ierr := &ImageError{Index: i, Tileset: ts.Name, Path: baseDir + ref, Err: err}
		l.logger().Printf("tiledmap: failed to load image %s: %v", ierr.Path, err)
		return ierr
	}
	ts.Loaded = img
	return nil
}

// LoadTilesetImage loads baseDir + reference through images.
func LoadTilesetImage(images ImageSystem, reference, baseDir string) (image.Image, error) {
	path := baseDir + reference
	img, err := images.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrImageLoad, path, err)
	}
	if img == nil {
		return nil, fmt.Errorf("%w %s: no image returned", ErrImageLoad, path)
	}
	return img, nil
}

func (l *Loader) parser() Parser {
	if l.Parser == nil {
		return tiled.JSONParser{}
	}
	return l.Parser
}

func (l *Loader) images() ImageSystem {
	if l.Images == nil {
		return render.NewImages()
	}
	return l.Images
}

func (l *Loader) readFile() func(string) ([]byte, error) {
	if l.ReadFile == nil {
		return os.ReadFile
	}
	return l.ReadFile
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

var defaultLoader = NewLoader()

// LoadFile loads a map with the default loader.
func LoadFile(path string) (*Map, error) {
	return defaultLoader.LoadFile(path)
}

// LoadMemory loads a map from memory with the default loader.
func LoadMemory(data []byte, baseDir string) (*Map, error) {
	return defaultLoader.LoadMemory(data, baseDir)
}

// Unload releases a map loaded with the default loader.
func Unload(m *Map) {
	defaultLoader.Unload(m)
}
