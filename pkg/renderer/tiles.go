package renderer

import (
	"image"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	Bounds image.Rectangle
}

// NewTileGrid divides the image into tiles of the given size. Edge tiles
// are clipped to the image bounds.
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile

	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			maxX := min(x+tileSize, width)
			maxY := min(y+tileSize, height)
			tiles = append(tiles, &Tile{
				Bounds: image.Rect(x, y, maxX, maxY),
			})
		}
	}

	return tiles
}
