package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"voicesketch/internal/executor"
	"voicesketch/internal/interpret"
	"voicesketch/internal/shape"
)

// parseRequest is the wire form of a parse call. Shapes stay raw until
// validation has passed so a malformed body and a malformed shape produce
// distinct messages.
type parseRequest struct {
	Text    string          `json:"text"`
	Context *requestContext `json:"context"`
}

type requestContext struct {
	Shapes        []json.RawMessage `json:"shapes"`
	RecentActions []string          `json:"recentActions"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// handleParse is the stateless pipeline entry point: utterance plus caller
// supplied context in, instruction out. Validation failures are the only
// 400s; any failure past that point returns the default instruction.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, "request body must be valid JSON")
		return
	}
	if msg := validateParse(req); msg != "" {
		writeInvalid(w, msg)
		return
	}

	shapes, err := decodeShapes(req.Context.Shapes)
	if err != nil {
		writeInvalid(w, "context.shapes contains an invalid shape")
		return
	}

	dctx := shape.Context{Shapes: shapes, RecentActions: req.Context.RecentActions}
	instruction, source := s.gateway.ParseCommand(r.Context(), req.Text, dctx)
	s.log.Infow("parsed", "source", source, "action", instruction.Action)

	writeJSON(w, http.StatusOK, instruction)
}

// commandResponse reports what a session submission did. Effect is null
// when the instruction resolved to a no-op.
type commandResponse struct {
	Instruction interpret.Instruction `json:"instruction"`
	Source      interpret.Source      `json:"source"`
	Effect      *executor.Effect      `json:"effect"`
	Shapes      json.RawMessage       `json:"shapes"`
}

type commandRequest struct {
	Text string `json:"text"`
}

// handleCommand runs an utterance against the server session and returns
// the applied effect together with the resulting shape collection.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}
	if s.session == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, "request body must be valid JSON")
		return
	}

	result, err := s.session.Submit(r.Context(), req.Text)
	if err != nil {
		writeInvalid(w, err.Error())
		return
	}

	encoded, err := shape.MarshalList(s.session.Shapes())
	if err != nil {
		s.log.Errorw("shape encode failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, commandResponse{
		Instruction: result.Instruction,
		Source:      result.Source,
		Effect:      result.Effect,
		Shapes:      encoded,
	})
}

// validateParse mirrors the boundary contract field by field; the first
// failed check wins.
func validateParse(req parseRequest) string {
	if strings.TrimSpace(req.Text) == "" {
		return "text is required and must be a non-empty string"
	}
	if req.Context == nil {
		return "context is required and must be an object"
	}
	if req.Context.Shapes == nil {
		return "context.shapes must be an array"
	}
	if req.Context.RecentActions == nil {
		return "context.recentActions must be an array"
	}
	return ""
}

func decodeShapes(raw []json.RawMessage) ([]shape.Shape, error) {
	shapes := make([]shape.Shape, 0, len(raw))
	for _, r := range raw {
		sh, err := shape.Unmarshal(r)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, sh)
	}
	return shapes, nil
}

func writeInvalid(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request", Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
