package interpret

import (
	"encoding/json"
	"fmt"
	"strings"

	"voicesketch/internal/normalize"
	"voicesketch/internal/shape"
)

// rawInstruction mirrors the wire form of a model reply before the
// property bag is narrowed to numbers.
type rawInstruction struct {
	Action string `json:"action"`
	Shape  *struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
	} `json:"shape"`
	TargetID string `json:"targetId"`
}

// Parse extracts a single instruction from a model reply. It tolerates
// surrounding prose and markdown code fences, takes the span between the
// first '{' and the last '}' inclusive, and validates the contract. An
// ambiguous target reference ("this"/"that" or the recency placeholder) is
// repaired to the most recently added shape in ctx, or cleared when the
// canvas is empty.
//
// A non-nil error means the reply was unusable; the gateway falls back to
// the keyword classifier instead of surfacing it.
func Parse(raw string, ctx shape.Context) (Instruction, error) {
	jsonStr := stripFences(strings.TrimSpace(raw))

	start := strings.Index(jsonStr, "{")
	end := strings.LastIndex(jsonStr, "}")
	if start == -1 || end == -1 || end < start {
		return Instruction{}, fmt.Errorf("no JSON object in reply")
	}
	jsonStr = jsonStr[start : end+1]

	var rawIn rawInstruction
	if err := json.Unmarshal([]byte(jsonStr), &rawIn); err != nil {
		return Instruction{}, fmt.Errorf("decode reply: %w", err)
	}

	in := Instruction{
		Action:   Action(rawIn.Action),
		TargetID: rawIn.TargetID,
	}
	if rawIn.Shape != nil {
		in.Shape = &ShapeSpec{
			Type:       shape.Kind(rawIn.Shape.Type),
			Properties: numericProps(rawIn.Shape.Properties),
		}
	}

	if err := in.Validate(); err != nil {
		return Instruction{}, err
	}

	in.TargetID = repairTarget(in.TargetID, ctx)
	return in, nil
}

// stripFences removes markdown code-fence markers around the payload.
func stripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// numericProps keeps only numeric values from the model's property bag.
// Anything else ("color": "red", nested objects) is dropped here, at the
// boundary, rather than leaking into typed shape construction.
func numericProps(props map[string]any) map[string]float64 {
	if len(props) == 0 {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(props))
	for k, v := range props {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case json.Number:
			if f, err := n.Float64(); err == nil {
				out[k] = f
			}
		}
	}
	return out
}

// repairTarget resolves demonstrative target ids to the most recently
// added shape. An empty canvas clears the target, which downstream treats
// as "default to last" and then no-op.
func repairTarget(targetID string, ctx shape.Context) string {
	switch targetID {
	case "this", "that", normalize.RecencyPlaceholder:
		if last := shape.Last(ctx.Shapes); last != nil {
			return last.ShapeID()
		}
		return ""
	}
	return targetID
}
