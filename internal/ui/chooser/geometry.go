package chooser

import "math"

// Point is a percentage coordinate within the chooser container.
type Point struct {
	X, Y float64
}

type Geometry struct {
	SplitPercent float64
	Mobile       bool
	SeriousClip  []Point
	PlayfulClip  []Point
	// Top and Bottom are the mobile line ends in percent of the height.
	Top, Bottom float64
}

func Compute(ratio float64, mobile bool) Geometry {
	s := ratio * 100
	g := Geometry{SplitPercent: s, Mobile: mobile}
	if mobile {
		g.Top = clamp(s-BandHalfWidth, 0, 100)
		g.Bottom = math.Max(g.Top, clamp(s+BandHalfWidth, 0, 100))
		g.SeriousClip = []Point{{0, 0}, {100, 0}, {100, g.Bottom}, {0, g.Top}}
		g.PlayfulClip = []Point{{0, g.Top}, {100, g.Bottom}, {100, 100}, {0, 100}}
		return g
	}
	g.SeriousClip = []Point{{0, 0}, {s - BandHalfWidth, 0}, {s + BandHalfWidth, 100}, {0, 100}}
	g.PlayfulClip = []Point{{s - BandHalfWidth, 0}, {100, 0}, {100, 100}, {s + BandHalfWidth, 100}}
	return g
}

// Boundary is the dividing line position in percent at progress t along the
// cross axis: x at height t on desktop, y at width t on mobile.
func (g Geometry) Boundary(t float64) float64 {
	if g.Mobile {
		return g.Top + (g.Bottom-g.Top)*t
	}
	return g.SplitPercent - BandHalfWidth + 2*BandHalfWidth*t
}

type Side int

const (
	SeriousSide Side = iota
	PlayfulSide
)

// Raster is the geometry sampled at cell centres. Desktop rasters hold one
// boundary column per row; mobile rasters one boundary row per column.
type Raster struct {
	Mobile        bool
	Width, Height int
	Bounds        []float64
}

func (g Geometry) Cells(width, height int) Raster {
	if width <= 0 || height <= 0 {
		return Raster{Mobile: g.Mobile}
	}
	r := Raster{Mobile: g.Mobile, Width: width, Height: height}
	if g.Mobile {
		r.Bounds = make([]float64, width)
		for col := range width {
			t := (float64(col) + 0.5) / float64(width)
			r.Bounds[col] = g.Boundary(t) / 100 * float64(height)
		}
		return r
	}
	r.Bounds = make([]float64, height)
	for row := range height {
		t := (float64(row) + 0.5) / float64(height)
		r.Bounds[row] = g.Boundary(t) / 100 * float64(width)
	}
	return r
}

func (r Raster) Empty() bool {
	return len(r.Bounds) == 0
}

func (r Raster) Side(col, row int) Side {
	if r.Empty() {
		return SeriousSide
	}
	if r.Mobile {
		if float64(row)+0.5 < r.Bounds[col] {
			return SeriousSide
		}
		return PlayfulSide
	}
	if float64(col)+0.5 < r.Bounds[row] {
		return SeriousSide
	}
	return PlayfulSide
}

// OnBar reports whether the cell holds the divider bar.
func (r Raster) OnBar(col, row int) bool {
	if r.Empty() {
		return false
	}
	if r.Mobile {
		return int(math.Floor(r.Bounds[col])) == row
	}
	return int(math.Floor(r.Bounds[row])) == col
}

// Near reports whether a cell lies within slack cells of the divider, which
// is the grab target for the pointer.
func (r Raster) Near(col, row, slack int) bool {
	if r.Empty() || col < 0 || row < 0 || col >= r.Width || row >= r.Height {
		return false
	}
	if r.Mobile {
		return math.Abs(float64(row)+0.5-r.Bounds[col]) <= float64(slack)+0.5
	}
	return math.Abs(float64(col)+0.5-r.Bounds[row]) <= float64(slack)+0.5
}
