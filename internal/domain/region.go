package domain

// Region is a rectangular lat/lon bounding box used as a spatial query
// key. Invariant: North > South and East > West; longitude wraparound is
// not handled. Regions are immutable values, produced only by bisection.
type Region struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Quadrant indexes into the result of Quadrants. The order is the fixed
// traversal order of a scrape run.
const (
	QuadrantNW = iota
	QuadrantNE
	QuadrantSW
	QuadrantSE
)

// Valid reports whether the region satisfies the bounding invariant.
func (r Region) Valid() bool {
	return r.North > r.South && r.East > r.West
}

// IsDegenerate reports whether the region has collapsed to zero area,
// which happens when float midpoints stop moving at extreme depths.
func (r Region) IsDegenerate() bool {
	return r.North <= r.South || r.East <= r.West
}

// MidLat returns the latitude bisection line.
func (r Region) MidLat() float64 {
	return (r.North + r.South) / 2
}

// MidLon returns the longitude bisection line.
func (r Region) MidLon() float64 {
	return (r.East + r.West) / 2
}

// Quadrants bisects both spans at their midpoints and returns the four
// child regions in NW, NE, SW, SE order. Each child touches the midpoint
// lines, so together they cover the parent exactly.
func (r Region) Quadrants() [4]Region {
	midLat := r.MidLat()
	midLon := r.MidLon()

	return [4]Region{
		QuadrantNW: {North: r.North, South: midLat, East: midLon, West: r.West},
		QuadrantNE: {North: r.North, South: midLat, East: r.East, West: midLon},
		QuadrantSW: {North: midLat, South: r.South, East: midLon, West: r.West},
		QuadrantSE: {North: midLat, South: r.South, East: r.East, West: midLon},
	}
}
