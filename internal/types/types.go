// README: Shared identifier and coordinate value types used across modules.
package types

// ID is an opaque entity identifier (32-char hex from the ID generator).
type ID string

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}
