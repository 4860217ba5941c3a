package spatial

import (
	h3 "github.com/uber/h3-go/v4"
)

// H3Resolution is the cell resolution used throughout the database.
// Resolution 12 hexagons average roughly 300 square meters, fine enough to
// distinguish adjacent road segments.
const H3Resolution = 12

// CellAt returns the H3 cell identifier of a coordinate at resolution 12.
// The identifier is returned as int64 for storage in SQLite INTEGER columns;
// the bit pattern is the canonical H3 index.
func CellAt(lat, lon float64) int64 {
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), H3Resolution)
	return int64(cell)
}
