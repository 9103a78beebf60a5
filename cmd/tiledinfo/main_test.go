package main

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/milk9111/tiledmap/maps"
	"github.com/milk9111/tiledmap/tiled"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tm := &tiled.Map{
		Width: 10, Height: 5, TileWidth: 16, TileHeight: 16,
		Tilesets: []*tiled.Tileset{
			{FirstGID: 1, Name: "terrain", Image: "terrain.png"},
			{FirstGID: 65, Name: "props", Image: "props.png"},
			{FirstGID: 80, Name: "collection"},
		},
	}
	m := &maps.Map{
		Map: tm,
		Tilesets: []*maps.Tileset{
			{Tileset: tm.Tilesets[0], Loaded: image.NewRGBA(image.Rect(0, 0, 128, 64))},
			{Tileset: tm.Tilesets[1]},
			{Tileset: tm.Tilesets[2]},
		},
		Failures: []*maps.ImageError{{Index: 1, Tileset: "props", Path: "props.png", Err: errors.New("missing")}},
	}

	var out bytes.Buffer
	summarize(&out, "world.json", m)

	got := out.String()
	assert.Contains(t, got, "world.json: 10x5 tiles of 16x16, 0 layers, 3 tilesets")
	assert.Contains(t, got, "[0] terrain firstgid=1 image=terrain.png (128x64)")
	assert.Contains(t, got, "[1] props firstgid=65 image=props.png MISSING")
	assert.Contains(t, got, "[2] collection firstgid=80 no image")
	assert.Contains(t, got, `failure: tiledmap: tileset 1 ("props"): image "props.png": missing`)
}
