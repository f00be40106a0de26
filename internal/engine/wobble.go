package engine

import "voicesketch/internal/shape"

// Wobble returns a render-only copy of a shape with its geometry perturbed
// by the shape's own style jitter. Each call produces a different result;
// callers reapply it per frame for the live hand-drawn look. The input is
// never mutated and the wobbled copy must not be written back.
func Wobble(s shape.Shape) shape.Shape {
	if s == nil {
		return nil
	}
	jitter := s.Stroke().Jitter

	switch v := s.(type) {
	case *shape.Circle:
		out := *v
		out.Position = ApplyJitterToPoint(v.Position, jitter)
		out.Radius = ApplyJitter(v.Radius, jitter)
		return &out
	case *shape.Rectangle:
		out := *v
		out.Position = ApplyJitterToPoint(v.Position, jitter)
		out.Width = ApplyJitter(v.Width, jitter)
		out.Height = ApplyJitter(v.Height, jitter)
		return &out
	case *shape.Line:
		out := *v
		out.Points[0] = ApplyJitterToPoint(v.Points[0], jitter)
		out.Points[1] = ApplyJitterToPoint(v.Points[1], jitter)
		return &out
	case *shape.Dot:
		out := *v
		out.Position = ApplyJitterToPoint(v.Position, jitter)
		return &out
	default:
		return s
	}
}
