package engine

import (
	"math"
	"testing"

	"voicesketch/internal/interpret"
	"voicesketch/internal/shape"
)

var testCanvas = Canvas{Width: 800, Height: 600}

func TestApplyJitterStaysInBounds(t *testing.T) {
	// Bound check only; the perturbation is deliberately non-deterministic.
	for i := 0; i < 1000; i++ {
		got := ApplyJitter(100, 0.1)
		if got < 95 || got > 105 {
			t.Fatalf("ApplyJitter(100, 0.1) = %v, outside ±5", got)
		}
	}
}

func TestApplyJitterZeroJitter(t *testing.T) {
	if got := ApplyJitter(100, 0); got != 100 {
		t.Errorf("zero jitter should be identity, got %v", got)
	}
}

func TestCreateCircleDefaults(t *testing.T) {
	spec := &interpret.ShapeSpec{Type: shape.KindCircle, Properties: map[string]float64{}}
	s := CreateShape(spec, testCanvas)

	c, ok := s.(*shape.Circle)
	if !ok {
		t.Fatalf("got %T, want *Circle", s)
	}
	if c.ShapeID() == "" {
		t.Error("missing id")
	}
	// Default radius 50 with 5% dimension jitter.
	if c.Radius < 47.5 || c.Radius > 52.5 {
		t.Errorf("radius %v outside jitter bounds around 50", c.Radius)
	}
	// Centered with 10% position jitter.
	if math.Abs(c.Position.X-400) > 20 || math.Abs(c.Position.Y-300) > 15 {
		t.Errorf("position %+v too far from center", c.Position)
	}
	if c.Stroke() != shape.DefaultStyle() {
		t.Errorf("style = %+v, want default", c.Stroke())
	}
}

func TestCreateRectangleAnchorsTopLeft(t *testing.T) {
	spec := &interpret.ShapeSpec{
		Type:       shape.KindRectangle,
		Properties: map[string]float64{"width": 200, "height": 100},
	}
	r := CreateShape(spec, testCanvas).(*shape.Rectangle)

	// Anchor is offset by half the declared dims before jitter: (300, 250).
	if math.Abs(r.Position.X-300) > 15 || math.Abs(r.Position.Y-250) > 13 {
		t.Errorf("anchor %+v too far from (300, 250)", r.Position)
	}
	if r.Width < 190 || r.Width > 210 {
		t.Errorf("width %v outside jitter bounds around 200", r.Width)
	}
}

func TestCreateLineDefaults(t *testing.T) {
	spec := &interpret.ShapeSpec{Type: shape.KindLine, Properties: map[string]float64{}}
	l := CreateShape(spec, testCanvas).(*shape.Line)

	if math.Abs(l.Points[0].X-350) > 18 || math.Abs(l.Points[1].X-450) > 23 {
		t.Errorf("default segment endpoints off: %+v", l.Points)
	}
	if l.Position != (shape.Point{}) {
		t.Errorf("line anchor should stay zero, got %+v", l.Position)
	}
}

func TestCreateShapeNilAndUnknown(t *testing.T) {
	if CreateShape(nil, testCanvas) != nil {
		t.Error("nil spec should yield nil")
	}
	spec := &interpret.ShapeSpec{Type: shape.Kind("triangle")}
	if CreateShape(spec, testCanvas) != nil {
		t.Error("unknown variant should yield nil")
	}
}

func TestCreateShapeIDsAreUnique(t *testing.T) {
	spec := &interpret.ShapeSpec{Type: shape.KindPoint}
	a := CreateShape(spec, testCanvas)
	b := CreateShape(spec, testCanvas)
	if a.ShapeID() == b.ShapeID() {
		t.Error("two creations shared an id")
	}
}

func TestWobbleDoesNotMutateInput(t *testing.T) {
	orig := &shape.Circle{
		Base:   shape.Base{ID: "c1", Position: shape.Point{X: 400, Y: 300}, Style: shape.DefaultStyle()},
		Radius: 50,
	}
	before := *orig

	w := Wobble(orig).(*shape.Circle)
	if *orig != before {
		t.Fatalf("Wobble mutated its input: %+v", orig)
	}
	if w.ShapeID() != "c1" {
		t.Errorf("wobbled copy lost identity: %q", w.ShapeID())
	}
	// Style jitter 0.02 keeps the wobble within ±1% of each value.
	if w.Radius < 49.5 || w.Radius > 50.5 {
		t.Errorf("wobbled radius %v outside style jitter bounds", w.Radius)
	}
}

func TestWobbleNil(t *testing.T) {
	if Wobble(nil) != nil {
		t.Error("Wobble(nil) should be nil")
	}
}
