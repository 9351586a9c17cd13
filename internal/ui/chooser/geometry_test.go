package chooser_test

import (
	"testing"

	"folio/internal/ui/chooser"
)

func TestDesktopBoundarySpansBand(t *testing.T) {
	t.Parallel()
	g := chooser.Compute(0.5, false)
	if g.Boundary(0) != 32 || g.Boundary(1) != 68 || g.Boundary(0.5) != 50 {
		t.Fatalf("unexpected boundary: %v %v %v", g.Boundary(0), g.Boundary(0.5), g.Boundary(1))
	}
	if g.SeriousClip[1] != (chooser.Point{X: 32, Y: 0}) || g.PlayfulClip[3] != (chooser.Point{X: 68, Y: 100}) {
		t.Fatalf("unexpected clips: %v %v", g.SeriousClip, g.PlayfulClip)
	}
}

func TestMobileLineIsClamped(t *testing.T) {
	t.Parallel()
	g := chooser.Compute(0.1, true)
	if g.Top != 0 || g.Bottom != 28 {
		t.Fatalf("expected top 0 bottom 28, got %v %v", g.Top, g.Bottom)
	}
	over := chooser.Compute(1.5, true)
	if over.Top != 100 || over.Bottom != 100 {
		t.Fatalf("overshoot must pin the line to the bottom edge, got %v %v", over.Top, over.Bottom)
	}
}

func TestCellsDegenerateForEmptyContainer(t *testing.T) {
	t.Parallel()
	r := chooser.Compute(0.5, false).Cells(0, 10)
	if !r.Empty() {
		t.Fatalf("zero width must yield an empty raster")
	}
	if r.OnBar(0, 0) || r.Near(0, 0, 1) {
		t.Fatalf("empty raster has no bar")
	}
}

func TestCellsAssignSides(t *testing.T) {
	t.Parallel()
	r := chooser.Compute(0.5, false).Cells(100, 10)
	if r.Side(0, 0) != chooser.SeriousSide || r.Side(99, 9) != chooser.PlayfulSide {
		t.Fatalf("serious must be left and playful right")
	}
	if r.Side(40, 0) != chooser.PlayfulSide || r.Side(40, 9) != chooser.SeriousSide {
		t.Fatalf("the band must tilt from top-left to bottom-right")
	}

	m := chooser.Compute(0.5, true).Cells(10, 100)
	if m.Side(5, 0) != chooser.SeriousSide || m.Side(5, 99) != chooser.PlayfulSide {
		t.Fatalf("mobile serious must be on top")
	}
}

func TestOvershootClearsTheScreen(t *testing.T) {
	t.Parallel()
	r := chooser.Compute(1.5, false).Cells(80, 24)
	for row := range 24 {
		for col := range 80 {
			if r.Side(col, row) != chooser.SeriousSide {
				t.Fatalf("ratio 1.5 must hand the whole screen to serious, cell %d,%d", col, row)
			}
			if r.OnBar(col, row) {
				t.Fatalf("the bar must be off screen at ratio 1.5")
			}
		}
	}
}
