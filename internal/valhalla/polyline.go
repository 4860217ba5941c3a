package valhalla

import (
	"math"
	"strings"

	"github.com/joaofig/evedb-go/internal/spatial"
)

// polylinePrecision is the coordinate scaling Valhalla uses for leg shapes.
// Unlike Google's 1e5 polylines, Valhalla encodes six decimal digits.
const polylinePrecision = 1e6

// DecodeShape decodes a Valhalla encoded polyline into coordinates.
// Coordinates are delta-encoded as zig-zag varints, latitude first.
func DecodeShape(encoded string) []spatial.Point {
	var points []spatial.Point
	var lat, lon int64

	i := 0
	for i < len(encoded) {
		dLat, n := decodeValue(encoded[i:])
		i += n
		if n == 0 {
			break
		}
		dLon, n := decodeValue(encoded[i:])
		i += n
		if n == 0 {
			break
		}

		lat += dLat
		lon += dLon
		points = append(points, spatial.Point{
			Lat: float64(lat) / polylinePrecision,
			Lon: float64(lon) / polylinePrecision,
		})
	}
	return points
}

// decodeValue reads one zig-zag varint from s, returning the signed delta
// and the number of bytes consumed (0 on truncated input).
func decodeValue(s string) (int64, int) {
	var result int64
	var shift uint
	for i := 0; i < len(s); i++ {
		b := int64(s[i]) - 63
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			if result&1 != 0 {
				return ^(result >> 1), i + 1
			}
			return result >> 1, i + 1
		}
	}
	return 0, 0
}

// EncodeShape encodes coordinates as a Valhalla polyline.
func EncodeShape(points []spatial.Point) string {
	var sb strings.Builder
	var prevLat, prevLon int64

	for _, p := range points {
		lat := int64(math.Round(p.Lat * polylinePrecision))
		lon := int64(math.Round(p.Lon * polylinePrecision))
		encodeValue(&sb, lat-prevLat)
		encodeValue(&sb, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return sb.String()
}

func encodeValue(sb *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte((0x20 | (u & 0x1f)) + 63))
		u >>= 5
	}
	sb.WriteByte(byte(u + 63))
}
