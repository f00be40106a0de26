package interpret

import (
	"fmt"
	"strings"

	"voicesketch/internal/shape"
)

// systemPrompt pins the reply format. The model gets no latitude: one JSON
// object of the instruction shape, nothing else.
const systemPrompt = `You are a sketch assistant that turns a child's natural language into drawing instructions.
You can only output a JSON drawing instruction, never anything else.
Instruction format:
{
  "action": "add" | "update" | "delete",
  "shape": {
    "type": "circle" | "rectangle" | "line" | "point",
    "properties": {...}
  },
  "targetId": "..." (only for update/delete)
}`

// noActions is the sentinel rendered when the recent-action log is empty.
const noActions = "none"

// BuildPrompt renders the user message: the literal utterance, a numbered
// list of current shapes (most recent last), and the recent-action log.
func BuildPrompt(text string, ctx shape.Context) string {
	var shapesInfo strings.Builder
	for i, s := range ctx.Shapes {
		fmt.Fprintf(&shapesInfo, "%d. %s (id: %s)\n", i+1, s.Kind(), s.ShapeID())
	}
	shapes := strings.TrimRight(shapesInfo.String(), "\n")
	if shapes == "" {
		shapes = "(empty canvas)"
	}

	actions := strings.Join(ctx.RecentActions, ", ")
	if actions == "" {
		actions = noActions
	}

	return fmt.Sprintf(`The user said: "%s"

Shapes currently on the canvas:
%s

Recent actions:
%s

Convert the user's words into a drawing instruction. Notes:
- If the user says "this" or "that", infer the target from recent actions or shapes
- If the user asks for bigger or smaller, use the update action
- If the user says to remove or undo something, use the delete action
- Otherwise use the add action to add a new shape

Return only the JSON, nothing else.`, text, shapes, actions)
}
