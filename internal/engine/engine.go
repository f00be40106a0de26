// Package engine builds concrete shapes from abstract shape requests and
// applies the hand-drawn jitter styling. Creation-time jitter is baked
// into the stored geometry exactly once; render-time wobble is recomputed
// on every call and never fed back into stored state.
package engine

import (
	"math/rand"

	"github.com/google/uuid"

	"voicesketch/internal/interpret"
	"voicesketch/internal/shape"
)

// Creation-time jitter coefficients. Positions wander more than sizes;
// both are independent of the style jitter the renderer uses.
const (
	positionJitter  = 0.1
	dimensionJitter = 0.05
)

// Canvas is the logical drawing surface new shapes are centered on.
type Canvas struct {
	Width  float64
	Height float64
}

// ApplyJitter perturbs a value by a symmetric relative amount: up to
// ±jitter/2 of the value itself. Recomputed on every call, deliberately
// non-deterministic.
func ApplyJitter(value, jitter float64) float64 {
	return value + (rand.Float64()-0.5)*jitter*value
}

// ApplyJitterToPoint perturbs both coordinates of a point.
func ApplyJitterToPoint(p shape.Point, jitter float64) shape.Point {
	return shape.Point{
		X: ApplyJitter(p.X, jitter),
		Y: ApplyJitter(p.Y, jitter),
	}
}

// CreateShape turns a shape request into a concrete, uniquely identified
// shape centered on the canvas, with declared numeric properties or the
// variant defaults. Returns nil for a nil spec or an unknown variant; the
// executor treats that as a no-op.
func CreateShape(spec *interpret.ShapeSpec, canvas Canvas) shape.Shape {
	if spec == nil {
		return nil
	}

	centerX := canvas.Width / 2
	centerY := canvas.Height / 2
	base := shape.Base{
		ID:    uuid.NewString(),
		Style: shape.DefaultStyle(),
	}

	switch spec.Type {
	case shape.KindCircle:
		radius := spec.Prop("radius", 50)
		return &shape.Circle{
			Base: withAnchor(base, shape.Point{X: centerX, Y: centerY}),
			Radius: ApplyJitter(radius, dimensionJitter),
		}

	case shape.KindRectangle:
		width := spec.Prop("width", 100)
		height := spec.Prop("height", 100)
		return &shape.Rectangle{
			Base: withAnchor(base, shape.Point{
				X: centerX - width/2,
				Y: centerY - height/2,
			}),
			Width:  ApplyJitter(width, dimensionJitter),
			Height: ApplyJitter(height, dimensionJitter),
		}

	case shape.KindLine:
		start := shape.Point{
			X: spec.Prop("startX", centerX-50),
			Y: spec.Prop("startY", centerY),
		}
		end := shape.Point{
			X: spec.Prop("endX", centerX+50),
			Y: spec.Prop("endY", centerY),
		}
		// Lines keep a zero anchor; geometry lives in the points.
		return &shape.Line{
			Base: base,
			Points: [2]shape.Point{
				ApplyJitterToPoint(start, positionJitter),
				ApplyJitterToPoint(end, positionJitter),
			},
		}

	case shape.KindPoint:
		return &shape.Dot{
			Base: withAnchor(base, shape.Point{X: centerX, Y: centerY}),
		}

	default:
		return nil
	}
}

func withAnchor(base shape.Base, anchor shape.Point) shape.Base {
	base.Position = ApplyJitterToPoint(anchor, positionJitter)
	return base
}
