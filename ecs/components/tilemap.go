package components

// TileMap is a grid of tile indices anchored at the entity's Transform.
// Tiles is row-major with Width*Height entries; 0 is an empty cell.
type TileMap struct {
	TileWidth, TileHeight float64
	Width, Height         int
	Tiles                 []int

	OffsetX, OffsetY float64
}

// At returns the tile at (col, row), or 0 when out of range
func (m *TileMap) At(col, row int) int {
	if col < 0 || row < 0 || col >= m.Width || row >= m.Height {
		return 0
	}
	i := row*m.Width + col
	if i >= len(m.Tiles) {
		return 0
	}
	return m.Tiles[i]
}
