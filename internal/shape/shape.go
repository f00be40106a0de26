// Package shape defines the drawing primitives shared by the whole
// pipeline: the closed set of shape variants, their style record, and the
// read-only drawing context handed to interpretation.
package shape

// Kind identifies a shape variant. The set is closed; anything else is
// rejected at the pipeline boundary.
type Kind string

const (
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
	KindLine      Kind = "line"
	KindPoint     Kind = "point"
)

// ValidKind reports whether k names one of the four variants.
func ValidKind(k Kind) bool {
	switch k {
	case KindCircle, KindRectangle, KindLine, KindPoint:
		return true
	}
	return false
}

// Point is a 2D coordinate on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style is the stroke style attached to every shape. Jitter is a
// dimensionless ratio in [0, 1) describing the maximum relative
// perturbation applied when the shape is rendered.
type Style struct {
	StrokeWidth float64 `json:"strokeWidth"`
	StrokeColor string  `json:"strokeColor"`
	Jitter      float64 `json:"jitter"`
}

// DefaultStyle returns the hand-drawn default stroke.
func DefaultStyle() Style {
	return Style{
		StrokeWidth: 3,
		StrokeColor: "#000000",
		Jitter:      0.02,
	}
}

// Base carries the fields common to every variant. The identifier is
// assigned at creation and never changes; the anchor position is
// meaningless (zero) for lines.
type Base struct {
	ID       string
	Position Point
	Style    Style
}

// ShapeID returns the stable identifier.
func (b *Base) ShapeID() string { return b.ID }

// Anchor returns the anchor position.
func (b *Base) Anchor() Point { return b.Position }

// SetAnchor moves the anchor position.
func (b *Base) SetAnchor(p Point) { b.Position = p }

// Stroke returns the style record.
func (b *Base) Stroke() Style { return b.Style }

// Shape is the closed union over the four variants. Concrete types are
// *Circle, *Rectangle, *Line and *Dot; callers type-switch for
// variant-specific fields.
type Shape interface {
	ShapeID() string
	Kind() Kind
	Anchor() Point
	SetAnchor(Point)
	Stroke() Style
}

// Circle is a circle with the given radius around its anchor.
type Circle struct {
	Base
	Radius float64
}

func (*Circle) Kind() Kind { return KindCircle }

// Rectangle is an axis-aligned rectangle; the anchor is its top-left corner.
type Rectangle struct {
	Base
	Width  float64
	Height float64
}

func (*Rectangle) Kind() Kind { return KindRectangle }

// Line is a two-point segment. Its anchor is unused and stays zero.
type Line struct {
	Base
	Points [2]Point
}

func (*Line) Kind() Kind { return KindLine }

// Dot is a single point mark at its anchor.
type Dot struct {
	Base
}

func (*Dot) Kind() Kind { return KindPoint }

// Last returns the most recently added shape (insertion order is z-order,
// last is topmost) or nil for an empty collection.
func Last(shapes []Shape) Shape {
	if len(shapes) == 0 {
		return nil
	}
	return shapes[len(shapes)-1]
}

// FindByID returns the shape with the given id, or nil.
func FindByID(shapes []Shape, id string) Shape {
	for _, s := range shapes {
		if s.ShapeID() == id {
			return s
		}
	}
	return nil
}
