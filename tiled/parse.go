package tiled

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrParse               = errors.New("tiled: parse map")
	ErrUnsupportedEncoding = errors.New("tiled: unsupported layer encoding")
)

// JSONParser parses maps saved in the Tiled JSON format.
type JSONParser struct{}

func (JSONParser) Parse(data []byte) (*Map, error) { return Parse(data) }
func (JSONParser) Free(m *Map)                     { Free(m) }

// Parse decodes a Tiled JSON map and its tile layer data.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if m.Type != "" && m.Type != "map" {
		return nil, fmt.Errorf("%w: unexpected type %q", ErrParse, m.Type)
	}
	if err := decodeLayers(m.Layers); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &m, nil
}

// Free drops everything the map references. A freed map is empty.
func Free(m *Map) {
	if m == nil {
		return
	}
	for _, l := range m.Layers {
		freeLayer(l)
	}
	*m = Map{}
}

func freeLayer(l *Layer) {
	if l == nil {
		return
	}
	for _, child := range l.Layers {
		freeLayer(child)
	}
	l.Tiles = nil
	l.Chunks = nil
	l.Objects = nil
	l.Layers = nil
	l.rawData = nil
}

// UnmarshalJSON keeps the raw "data" member so it can be decoded once the
// encoding and compression members are known.
func (l *Layer) UnmarshalJSON(b []byte) error {
	type layer Layer
	aux := struct {
		*layer
		Data json.RawMessage `json:"data"`
	}{layer: (*layer)(l)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	l.rawData = aux.Data
	return nil
}

func decodeLayers(layers []*Layer) error {
	for _, l := range layers {
		if l == nil {
			continue
		}
		switch l.Type {
		case LayerTile:
			tiles, err := decodeTileData(l.rawData, l.Encoding, l.Compression)
			if err != nil {
				return fmt.Errorf("layer %q: %w", l.Name, err)
			}
			l.Tiles = tiles
			l.rawData = nil
			for i, c := range l.Chunks {
				if c == nil {
					continue
				}
				if c.Tiles, err = decodeTileData(c.rawData, l.Encoding, l.Compression); err != nil {
					return fmt.Errorf("layer %q: chunk %d: %w", l.Name, i, err)
				}
				c.rawData = nil
				if c.Width > 0 && c.Height > 0 && len(c.Tiles) != c.Width*c.Height {
					return fmt.Errorf("layer %q: chunk %d: %d tiles for a %dx%d chunk", l.Name, i, len(c.Tiles), c.Width, c.Height)
				}
			}
		case LayerGroup:
			if err := decodeLayers(l.Layers); err != nil {
				return err
			}
		}
	}
	return nil
}

// UnmarshalJSON keeps the raw "data" member of a chunk; the encoding lives on
// the owning layer.
func (c *Chunk) UnmarshalJSON(b []byte) error {
	type chunk Chunk
	aux := struct {
		*chunk
		Data json.RawMessage `json:"data"`
	}{chunk: (*chunk)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.rawData = aux.Data
	return nil
}

func decodeTileData(data json.RawMessage, encoding, compression string) ([]GID, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	switch encoding {
	case "", "csv":
		var tiles []GID
		if err := json.Unmarshal(data, &tiles); err != nil {
			return nil, err
		}
		return tiles, nil
	case "base64":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	switch compression {
	case "":
	case "zlib":
		r, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to create zlib reader: %w", err)
		}
		defer r.Close()
		if raw, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("decompress zlib: %w", err)
		}
	case "gzip":
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer r.Close()
		if raw, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("decompress gzip: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: compression %q", ErrUnsupportedEncoding, compression)
	}

	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("tile data length %d is not a multiple of 4", len(raw))
	}
	tiles := make([]GID, len(raw)/4)
	for i := range tiles {
		tiles[i] = GID(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return tiles, nil
}
