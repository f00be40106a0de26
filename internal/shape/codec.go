package shape

import (
	"encoding/json"
	"fmt"
)

// envelope is the wire form shared by all variants. Variant fields are
// pointers so absent and zero stay distinguishable when decoding.
type envelope struct {
	ID       string   `json:"id"`
	Type     Kind     `json:"type"`
	Position Point    `json:"position"`
	Style    Style    `json:"style"`
	Radius   *float64 `json:"radius,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Points   []Point  `json:"points,omitempty"`
}

// Marshal encodes a shape into its JSON wire form.
func Marshal(s Shape) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("nil shape")
	}
	env := envelope{
		ID:       s.ShapeID(),
		Type:     s.Kind(),
		Position: s.Anchor(),
		Style:    s.Stroke(),
	}
	switch v := s.(type) {
	case *Circle:
		env.Radius = &v.Radius
	case *Rectangle:
		env.Width = &v.Width
		env.Height = &v.Height
	case *Line:
		env.Points = v.Points[:]
	case *Dot:
	default:
		return nil, fmt.Errorf("unknown shape variant %T", s)
	}
	return json.Marshal(env)
}

// Unmarshal decodes a shape from its JSON wire form, rejecting unknown
// variants and malformed geometry.
func Unmarshal(data []byte) (Shape, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode shape: %w", err)
	}
	return fromEnvelope(env)
}

// UnmarshalList decodes a JSON array of shapes.
func UnmarshalList(data []byte) ([]Shape, error) {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("decode shape list: %w", err)
	}
	shapes := make([]Shape, 0, len(envs))
	for i, env := range envs {
		s, err := fromEnvelope(env)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// MarshalList encodes a slice of shapes as a JSON array.
func MarshalList(shapes []Shape) ([]byte, error) {
	envs := make([]json.RawMessage, 0, len(shapes))
	for _, s := range shapes {
		b, err := Marshal(s)
		if err != nil {
			return nil, err
		}
		envs = append(envs, b)
	}
	return json.Marshal(envs)
}

func fromEnvelope(env envelope) (Shape, error) {
	base := Base{ID: env.ID, Position: env.Position, Style: env.Style}
	switch env.Type {
	case KindCircle:
		c := &Circle{Base: base}
		if env.Radius != nil {
			c.Radius = *env.Radius
		}
		return c, nil
	case KindRectangle:
		r := &Rectangle{Base: base}
		if env.Width != nil {
			r.Width = *env.Width
		}
		if env.Height != nil {
			r.Height = *env.Height
		}
		return r, nil
	case KindLine:
		l := &Line{Base: base}
		if len(env.Points) != 2 {
			return nil, fmt.Errorf("line %q needs exactly 2 points, got %d", env.ID, len(env.Points))
		}
		l.Points[0] = env.Points[0]
		l.Points[1] = env.Points[1]
		return l, nil
	case KindPoint:
		return &Dot{Base: base}, nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", env.Type)
	}
}
