package maps

import (
	"image"

	"github.com/milk9111/tiledmap/tiled"
)

// Map is a parsed Tiled map with its tileset images attached.
type Map struct {
	*tiled.Map

	// Tilesets mirrors Map.Map.Tilesets in the same order.
	Tilesets []*Tileset

	// Failures lists the tilesets whose image could not be attached.
	Failures []*ImageError
}

// Tileset pairs a parsed tileset with the image loaded for it.
type Tileset struct {
	*tiled.Tileset

	// Loaded is nil until the image referenced by the tileset is loaded.
	Loaded image.Image
}

// Reference returns the tileset image path as written in the map.
func (ts *Tileset) Reference() string {
	if ts == nil || ts.Tileset == nil {
		return ""
	}
	return ts.Image
}

// Complete reports whether every tileset that references an image has it
// attached.
func (m *Map) Complete() bool {
	return m != nil && m.Map != nil && len(m.Failures) == 0
}

// TileImage returns the tileset image holding gid and the source rectangle
// of the tile inside it. ok is false for empty tiles and for tilesets
// without an attached image.
func (m *Map) TileImage(gid tiled.GID) (img image.Image, src image.Rectangle, ok bool) {
	if m == nil || m.Map == nil {
		return nil, image.Rectangle{}, false
	}
	idx := m.TilesetFor(gid)
	if idx < 0 || idx >= len(m.Tilesets) {
		return nil, image.Rectangle{}, false
	}
	ts := m.Tilesets[idx]
	if ts.Loaded == nil || ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return nil, image.Rectangle{}, false
	}

	local := int(gid.ID()) - ts.FirstGID
	if ts.TileCount > 0 && local >= ts.TileCount {
		return nil, image.Rectangle{}, false
	}
	columns := ts.Columns
	if columns <= 0 {
		columns = 1
	}
	x := ts.Margin + (local%columns)*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + (local/columns)*(ts.TileHeight+ts.Spacing)
	src = image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight)
	bounds := ts.Loaded.Bounds()
	return ts.Loaded, src.Add(bounds.Min), true
}
