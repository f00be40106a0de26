package shape

import (
	"strings"
	"testing"
)

func sampleShapes() []Shape {
	return []Shape{
		&Circle{Base: Base{ID: "c1", Position: Point{X: 400, Y: 300}, Style: DefaultStyle()}, Radius: 50},
		&Rectangle{Base: Base{ID: "r1", Position: Point{X: 350, Y: 250}, Style: DefaultStyle()}, Width: 100, Height: 100},
		&Line{Base: Base{ID: "l1", Style: DefaultStyle()}, Points: [2]Point{{X: 350, Y: 300}, {X: 450, Y: 300}}},
		&Dot{Base: Base{ID: "d1", Position: Point{X: 10, Y: 20}, Style: DefaultStyle()}},
	}
}

func TestLast(t *testing.T) {
	if Last(nil) != nil {
		t.Fatal("Last(nil) should be nil")
	}
	shapes := sampleShapes()
	if got := Last(shapes); got.ShapeID() != "d1" {
		t.Errorf("Last = %q, want d1", got.ShapeID())
	}
}

func TestFindByID(t *testing.T) {
	shapes := sampleShapes()
	if got := FindByID(shapes, "r1"); got == nil || got.Kind() != KindRectangle {
		t.Errorf("FindByID(r1) = %v", got)
	}
	if got := FindByID(shapes, "nope"); got != nil {
		t.Errorf("FindByID(nope) = %v, want nil", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	shapes := sampleShapes()
	data, err := MarshalList(shapes)
	if err != nil {
		t.Fatalf("MarshalList failed: %v", err)
	}

	decoded, err := UnmarshalList(data)
	if err != nil {
		t.Fatalf("UnmarshalList failed: %v", err)
	}
	if len(decoded) != len(shapes) {
		t.Fatalf("decoded %d shapes, want %d", len(decoded), len(shapes))
	}

	c, ok := decoded[0].(*Circle)
	if !ok {
		t.Fatalf("decoded[0] is %T, want *Circle", decoded[0])
	}
	if c.Radius != 50 || c.Position.X != 400 {
		t.Errorf("circle fields lost: %+v", c)
	}

	l, ok := decoded[2].(*Line)
	if !ok {
		t.Fatalf("decoded[2] is %T, want *Line", decoded[2])
	}
	if l.Points[1].X != 450 {
		t.Errorf("line endpoint lost: %+v", l.Points)
	}
}

func TestUnmarshalRejectsUnknownType(t *testing.T) {
	_, err := Unmarshal([]byte(`{"id":"x","type":"triangle","position":{"x":0,"y":0}}`))
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "triangle") {
		t.Errorf("error should name the type, got %v", err)
	}
}

func TestUnmarshalLineNeedsTwoPoints(t *testing.T) {
	_, err := Unmarshal([]byte(`{"id":"l","type":"line","position":{"x":0,"y":0},"points":[{"x":1,"y":2}]}`))
	if err == nil {
		t.Fatal("expected error for single-point line")
	}
}

func TestCircleEncodesRadiusOnly(t *testing.T) {
	data, err := Marshal(&Circle{Base: Base{ID: "c", Style: DefaultStyle()}, Radius: 30})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"radius":30`) {
		t.Errorf("missing radius: %s", s)
	}
	if strings.Contains(s, "width") || strings.Contains(s, "points") {
		t.Errorf("circle leaked foreign fields: %s", s)
	}
}
