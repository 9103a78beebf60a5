package tiled

// Map is a Tiled map decoded from the JSON map format.
type Map struct {
	Type            string     `json:"type"`
	Version         string     `json:"version"`
	TiledVersion    string     `json:"tiledversion"`
	Orientation     string     `json:"orientation"`
	RenderOrder     string     `json:"renderorder"`
	Width           int        `json:"width"`
	Height          int        `json:"height"`
	TileWidth       int        `json:"tilewidth"`
	TileHeight      int        `json:"tileheight"`
	Infinite        bool       `json:"infinite"`
	BackgroundColor string     `json:"backgroundcolor,omitempty"`
	NextLayerID     int        `json:"nextlayerid"`
	NextObjectID    int        `json:"nextobjectid"`
	Layers          []*Layer   `json:"layers"`
	Tilesets        []*Tileset `json:"tilesets"`
	Properties      []Property `json:"properties,omitempty"`
}

// Layer types as written by Tiled.
const (
	LayerTile   = "tilelayer"
	LayerObject = "objectgroup"
	LayerImage  = "imagelayer"
	LayerGroup  = "group"
)

type Layer struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Visible     bool       `json:"visible"`
	Opacity     float64    `json:"opacity"`
	X           int        `json:"x"`
	Y           int        `json:"y"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	OffsetX     float64    `json:"offsetx"`
	OffsetY     float64    `json:"offsety"`
	Encoding    string     `json:"encoding,omitempty"`
	Compression string     `json:"compression,omitempty"`
	Properties  []Property `json:"properties,omitempty"`

	// Tiles holds the decoded GIDs of a tile layer, row-major.
	Tiles []GID `json:"-"`

	// Infinite maps store tile data in Chunks instead of Tiles.
	StartX int      `json:"startx,omitempty"`
	StartY int      `json:"starty,omitempty"`
	Chunks []*Chunk `json:"chunks,omitempty"`

	// Objects is set on object groups.
	Objects []*Object `json:"objects,omitempty"`

	// Image is set on image layers and is relative to the map file.
	Image string `json:"image,omitempty"`

	// Layers is set on group layers.
	Layers []*Layer `json:"layers,omitempty"`

	rawData []byte
}

// Chunk is a rectangle of tile data of an infinite map, in tiles.
type Chunk struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	Tiles []GID `json:"-"`

	rawData []byte
}

// At returns the gid at map tile coordinates (x, y), or 0 when no chunk
// covers it.
func (l *Layer) At(x, y int) GID {
	if len(l.Chunks) == 0 {
		if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
			return 0
		}
		if i := y*l.Width + x; i < len(l.Tiles) {
			return l.Tiles[i]
		}
		return 0
	}
	for _, c := range l.Chunks {
		if c == nil || x < c.X || y < c.Y || x >= c.X+c.Width || y >= c.Y+c.Height {
			continue
		}
		if i := (y-c.Y)*c.Width + (x - c.X); i < len(c.Tiles) {
			return c.Tiles[i]
		}
	}
	return 0
}

type Object struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Class      string     `json:"class,omitempty"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Rotation   float64    `json:"rotation"`
	GID        GID        `json:"gid,omitempty"`
	Visible    bool       `json:"visible"`
	Point      bool       `json:"point,omitempty"`
	Ellipse    bool       `json:"ellipse,omitempty"`
	Polygon    []Point    `json:"polygon,omitempty"`
	Polyline   []Point    `json:"polyline,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tileset is an embedded tileset. Image is the path of the tileset image
// relative to the map file, exactly as stored in the map.
type Tileset struct {
	FirstGID    int        `json:"firstgid"`
	Source      string     `json:"source,omitempty"`
	Name        string     `json:"name"`
	Image       string     `json:"image"`
	ImageWidth  int        `json:"imagewidth"`
	ImageHeight int        `json:"imageheight"`
	TileWidth   int        `json:"tilewidth"`
	TileHeight  int        `json:"tileheight"`
	TileCount   int        `json:"tilecount"`
	Columns     int        `json:"columns"`
	Margin      int        `json:"margin"`
	Spacing     int        `json:"spacing"`
	Tiles       []Tile     `json:"tiles,omitempty"`
	Properties  []Property `json:"properties,omitempty"`
}

// Tile holds per-tile data of a tileset.
type Tile struct {
	ID         int        `json:"id"`
	Type       string     `json:"type,omitempty"`
	Image      string     `json:"image,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// TilesetFor returns the index of the tileset that owns gid, or -1.
func (m *Map) TilesetFor(gid GID) int {
	id := int(gid.ID())
	if id == 0 {
		return -1
	}
	found := -1
	for i, ts := range m.Tilesets {
		if ts.FirstGID <= id && (found < 0 || ts.FirstGID > m.Tilesets[found].FirstGID) {
			found = i
		}
	}
	return found
}

// Property returns the named property value of the map.
func (m *Map) Property(name string) (any, bool) {
	return lookupProperty(m.Properties, name)
}

func (l *Layer) Property(name string) (any, bool) {
	return lookupProperty(l.Properties, name)
}

func (ts *Tileset) Property(name string) (any, bool) {
	return lookupProperty(ts.Properties, name)
}

func lookupProperty(props []Property, name string) (any, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
