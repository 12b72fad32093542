package geom

import "testing"

func TestMakeRRectScalesOverlappingRadii(t *testing.T) {
	rr := MakeRRectXY(MakeLTRB(0, 0, 10, 20), 10, 10)
	if rr.Radii.TopLeft.Width != 5 {
		t.Errorf("TopLeft.Width = %v, want 5", rr.Radii.TopLeft.Width)
	}
	if rr.IsRect() {
		t.Error("IsRect() = true for rounded corners")
	}
}

func TestRSuperellipseApproximation(t *testing.T) {
	rse := MakeRSuperellipseXY(MakeLTRB(0, 0, 100, 50), 8, 8)
	rr := rse.ToApproximateRoundRect()
	if rr.Rect != rse.Bounds {
		t.Errorf("approximation bounds = %+v, want %+v", rr.Rect, rse.Bounds)
	}
	if rr.Radii != rse.Radii {
		t.Errorf("approximation radii = %+v, want %+v", rr.Radii, rse.Radii)
	}
}
