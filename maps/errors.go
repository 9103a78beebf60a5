package maps

import (
	"errors"
	"fmt"
)

var (
	ErrIO              = errors.New("tiledmap: read map file")
	ErrImageLoad       = errors.New("tiledmap: load tileset image")
	ErrExternalTileset = errors.New("tiledmap: external tilesets are not supported")
)

// ImageError records a tileset whose image could not be attached.
type ImageError struct {
	Index   int    // position of the tileset in the map
	Tileset string // tileset name
	Path    string // resolved image path
	Err     error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("tiledmap: tileset %d (%q): image %q: %v", e.Index, e.Tileset, e.Path, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}
