// Package executor resolves a validated instruction against the current
// shape collection into a concrete effect. It never mutates the collection
// itself; the session applies the effect. A nil effect means "nothing to
// do" (an empty canvas, an unknown target, a rejected type change) and
// is not an error.
package executor

import (
	"voicesketch/internal/engine"
	"voicesketch/internal/interpret"
	"voicesketch/internal/logging"
	"voicesketch/internal/shape"
)

// Updates carries the variant-compatible property changes of an update
// effect. Only fields matching the target's concrete variant are ever set.
type Updates struct {
	Radius *float64 `json:"radius,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Empty reports whether no property survived compatibility filtering.
func (u Updates) Empty() bool {
	return u.Radius == nil && u.Width == nil && u.Height == nil
}

// Effect is the concrete outcome of executing an instruction: a new shape
// to add, or a target plus updates, or a target to delete.
type Effect struct {
	Action   interpret.Action `json:"action"`
	Shape    shape.Shape      `json:"-"`
	TargetID string           `json:"targetId,omitempty"`
	Updates  *Updates         `json:"updates,omitempty"`
}

// Execute computes the effect of an instruction against a snapshot of the
// shape collection. Nil means no-op.
func Execute(in interpret.Instruction, shapes []shape.Shape, canvas engine.Canvas) *Effect {
	switch in.Action {
	case interpret.ActionAdd:
		return executeAdd(in, canvas)
	case interpret.ActionUpdate:
		return executeUpdate(in, shapes)
	case interpret.ActionDelete:
		return executeDelete(in, shapes)
	default:
		logging.Get(logging.CategoryExecutor).Warnw("unknown action", "action", in.Action)
		return nil
	}
}

func executeAdd(in interpret.Instruction, canvas engine.Canvas) *Effect {
	if in.Shape == nil {
		return nil
	}
	s := engine.CreateShape(in.Shape, canvas)
	if s == nil {
		return nil
	}
	return &Effect{Action: interpret.ActionAdd, Shape: s}
}

func executeUpdate(in interpret.Instruction, shapes []shape.Shape) *Effect {
	target, ok := resolveTarget(in.TargetID, shapes)
	if !ok {
		return nil
	}

	updates := Updates{}
	if in.Shape != nil {
		// A requested variant change is rejected outright rather than
		// silently re-typing the shape.
		if in.Shape.Type != "" && in.Shape.Type != target.Kind() {
			logging.Get(logging.CategoryExecutor).Infow("rejected type change",
				"target", target.ShapeID(), "from", target.Kind(), "to", in.Shape.Type)
			return nil
		}

		// Copy only keys compatible with the target's variant.
		switch target.Kind() {
		case shape.KindCircle:
			if in.Shape.HasProp("radius") {
				updates.Radius = propPtr(in.Shape, "radius")
			}
		case shape.KindRectangle:
			if in.Shape.HasProp("width") {
				updates.Width = propPtr(in.Shape, "width")
			}
			if in.Shape.HasProp("height") {
				updates.Height = propPtr(in.Shape, "height")
			}
		}
	}

	return &Effect{
		Action:   interpret.ActionUpdate,
		TargetID: target.ShapeID(),
		Updates:  &updates,
	}
}

func executeDelete(in interpret.Instruction, shapes []shape.Shape) *Effect {
	target, ok := resolveTarget(in.TargetID, shapes)
	if !ok {
		return nil
	}
	return &Effect{Action: interpret.ActionDelete, TargetID: target.ShapeID()}
}

// resolveTarget finds the addressed shape, defaulting to the most recently
// created one when the instruction names none. Empty collections and
// unknown ids resolve to nothing.
func resolveTarget(targetID string, shapes []shape.Shape) (shape.Shape, bool) {
	log := logging.Get(logging.CategoryExecutor)
	if targetID == "" {
		last := shape.Last(shapes)
		if last == nil {
			return nil, false
		}
		return last, true
	}
	target := shape.FindByID(shapes, targetID)
	if target == nil {
		log.Infow("target shape not found", "target", targetID)
		return nil, false
	}
	return target, true
}

func propPtr(spec *interpret.ShapeSpec, key string) *float64 {
	v := spec.Prop(key, 0)
	return &v
}
