package interpret

import (
	"strings"

	"voicesketch/internal/shape"
)

// Keyword vocabularies for the fallback classifier, checked in rule order.
// The delete rule runs first so "remove the circle" deletes instead of
// adding. There is deliberately no rule for resize phrasing ("bigger",
// "smaller"): update-intent utterances that reach the fallback degrade to
// the default add-circle instruction. Known gap, kept for parity with the
// remote path's failure mode.
var (
	deleteWords    = []string{"delete", "remove", "erase", "don't", "dont"}
	circleWords    = []string{"circle", "round"}
	rectangleWords = []string{"square", "rectangle", "box"}
	lineWords      = []string{"line"}
)

// Classify maps text to an instruction with deterministic keyword rules.
// First match wins; no match falls through to the default add-circle
// instruction. Pure and total: any input yields a valid instruction.
func Classify(text string) Instruction {
	lower := strings.ToLower(text)

	if containsAny(lower, deleteWords) {
		return Instruction{Action: ActionDelete}
	}
	if containsAny(lower, circleWords) {
		return Instruction{
			Action: ActionAdd,
			Shape: &ShapeSpec{
				Type:       shape.KindCircle,
				Properties: map[string]float64{"radius": 50},
			},
		}
	}
	if containsAny(lower, rectangleWords) {
		return Instruction{
			Action: ActionAdd,
			Shape: &ShapeSpec{
				Type:       shape.KindRectangle,
				Properties: map[string]float64{"width": 100, "height": 100},
			},
		}
	}
	if containsAny(lower, lineWords) {
		return Instruction{
			Action: ActionAdd,
			Shape: &ShapeSpec{
				Type: shape.KindLine,
				Properties: map[string]float64{
					"startX": 0, "startY": 0, "endX": 100, "endY": 100,
				},
			},
		}
	}

	return DefaultInstruction()
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
