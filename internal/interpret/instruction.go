// Package interpret turns a normalized utterance into a validated drawing
// instruction. The remote model does the real understanding; everything
// here exists to survive it being slow, down, or wrong. Every path through
// this package terminates in a well-formed Instruction.
package interpret

import (
	"fmt"

	"voicesketch/internal/shape"
)

// Action is what an instruction does to the canvas.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ValidAction reports whether a is one of the three instruction actions.
func ValidAction(a Action) bool {
	return a == ActionAdd || a == ActionUpdate || a == ActionDelete
}

// ShapeSpec is the loose shape request carried inside an instruction. The
// property bag is numeric-only; non-numeric values from the model are
// dropped during parsing, and unknown keys are ignored when the spec is
// translated into a concrete shape.
type ShapeSpec struct {
	Type       shape.Kind         `json:"type"`
	Properties map[string]float64 `json:"properties"`
}

// Prop returns a named property or the given default.
func (s *ShapeSpec) Prop(key string, def float64) float64 {
	if s == nil || s.Properties == nil {
		return def
	}
	if v, ok := s.Properties[key]; ok {
		return v
	}
	return def
}

// HasProp reports whether the property bag carries the key.
func (s *ShapeSpec) HasProp(key string) bool {
	if s == nil || s.Properties == nil {
		return false
	}
	_, ok := s.Properties[key]
	return ok
}

// Instruction is the contract produced by interpretation and consumed by
// execution: add carries a shape spec, update and delete carry an optional
// target id that defaults downstream to the most recently added shape.
type Instruction struct {
	Action   Action     `json:"action"`
	Shape    *ShapeSpec `json:"shape,omitempty"`
	TargetID string     `json:"targetId,omitempty"`
}

// Validate checks the structural contract. It does not resolve targets;
// that is the executor's job.
func (in Instruction) Validate() error {
	if !ValidAction(in.Action) {
		return fmt.Errorf("invalid action %q", in.Action)
	}
	if in.Action == ActionAdd {
		if in.Shape == nil {
			return fmt.Errorf("add instruction requires a shape")
		}
		if !shape.ValidKind(in.Shape.Type) {
			return fmt.Errorf("unknown shape type %q", in.Shape.Type)
		}
	}
	return nil
}

// DefaultInstruction is the terminal fallback: add a circle with the
// default radius. The keyword classifier, the response parser and the HTTP
// surface all degrade to this same value.
func DefaultInstruction() Instruction {
	return Instruction{
		Action: ActionAdd,
		Shape: &ShapeSpec{
			Type:       shape.KindCircle,
			Properties: map[string]float64{"radius": 50},
		},
	}
}
