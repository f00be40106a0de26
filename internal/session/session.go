// Package session owns the live drawing state during an interactive run:
// the shape collection, the rolling action log the pipeline reads for
// context, and the history trail. The pipeline itself is stateless between
// submissions; everything it needs is snapshotted here and passed in.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voicesketch/internal/engine"
	"voicesketch/internal/executor"
	"voicesketch/internal/interpret"
	"voicesketch/internal/logging"
	"voicesketch/internal/normalize"
	"voicesketch/internal/shape"
	"voicesketch/internal/store"
)

// Session drives one drawing surface. Submissions are serialized by the
// session mutex: if a second submission arrives while the first is inside
// the remote call it waits, so effects never interleave. Callers that want
// overlap must run separate sessions.
type Session struct {
	mu      sync.Mutex
	gateway *interpret.Gateway
	store   store.Store // nil disables persistence
	canvas  engine.Canvas
	log     *zap.SugaredLogger

	drawingID     string
	shapes        []shape.Shape
	recentActions []string
}

// Result is what one submission produced. A nil Effect means the
// instruction resolved to nothing to do; it is not a failure.
type Result struct {
	Instruction interpret.Instruction
	Source      interpret.Source
	Effect      *executor.Effect
}

// New creates an empty session. The store may be nil for ephemeral use.
func New(gateway *interpret.Gateway, st store.Store, canvas engine.Canvas) *Session {
	return &Session{
		gateway: gateway,
		store:   st,
		canvas:  canvas,
		log:     logging.Get(logging.CategorySession),
	}
}

// Submit runs one utterance through the full pipeline and applies the
// resulting effect. It only fails on invalid input text; interpretation
// and execution failures degrade internally and still return a Result.
func (s *Session) Submit(ctx context.Context, text string) (*Result, error) {
	if !normalize.IsValid(text) {
		return nil, fmt.Errorf("text is required and must be a non-empty string")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dctx := s.snapshotLocked()
	instruction, source := s.gateway.ParseCommand(ctx, text, dctx)
	effect := executor.Execute(instruction, dctx.Shapes, s.canvas)

	if effect != nil {
		s.applyLocked(effect)
	} else {
		s.log.Debugw("instruction resolved to no-op",
			"action", instruction.Action, "target", instruction.TargetID)
	}

	return &Result{Instruction: instruction, Source: source, Effect: effect}, nil
}

// Context returns a read-only snapshot of the current drawing state.
func (s *Session) Context() shape.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Shapes returns a copy of the current shape collection in z-order.
func (s *Session) Shapes() []shape.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shape.Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// AddManual inserts a shape that did not come from the pipeline (drag
// gestures, toolbar) and records it as a manual action.
func (s *Session) AddManual(sh shape.Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes = append(s.shapes, sh)
	s.recordLocked(shape.ActionManual, sh.ShapeID())
}

func (s *Session) snapshotLocked() shape.Context {
	shapes := make([]shape.Shape, len(s.shapes))
	copy(shapes, s.shapes)
	actions := make([]string, len(s.recentActions))
	copy(actions, s.recentActions)
	return shape.Context{Shapes: shapes, RecentActions: actions}
}

// applyLocked mutates the live collection according to an effect.
func (s *Session) applyLocked(e *executor.Effect) {
	switch e.Action {
	case interpret.ActionAdd:
		s.shapes = append(s.shapes, e.Shape)
		s.recordLocked(shape.ActionAdd, e.Shape.ShapeID())

	case interpret.ActionUpdate:
		target := shape.FindByID(s.shapes, e.TargetID)
		if target == nil {
			return
		}
		applyUpdates(target, e.Updates)
		s.recordLocked(shape.ActionUpdate, e.TargetID)

	case interpret.ActionDelete:
		kept := s.shapes[:0]
		for _, sh := range s.shapes {
			if sh.ShapeID() != e.TargetID {
				kept = append(kept, sh)
			}
		}
		s.shapes = kept
		s.recordLocked(shape.ActionDelete, e.TargetID)
	}
}

func applyUpdates(target shape.Shape, u *executor.Updates) {
	if u == nil {
		return
	}
	switch v := target.(type) {
	case *shape.Circle:
		if u.Radius != nil {
			v.Radius = *u.Radius
		}
	case *shape.Rectangle:
		if u.Width != nil {
			v.Width = *u.Width
		}
		if u.Height != nil {
			v.Height = *u.Height
		}
	}
}

// recordLocked appends to the rolling action log and, when a drawing is
// bound and a store is configured, the persistent history.
func (s *Session) recordLocked(action shape.Action, shapeID string) {
	s.recentActions = append(s.recentActions, string(action))
	if len(s.recentActions) > shape.RecentActionWindow {
		s.recentActions = s.recentActions[len(s.recentActions)-shape.RecentActionWindow:]
	}

	if s.store == nil || s.drawingID == "" {
		return
	}
	entry := shape.HistoryEntry{
		ID:        uuid.NewString(),
		DrawingID: s.drawingID,
		Action:    action,
		ShapeID:   shapeID,
		Timestamp: shape.Now(),
	}
	if err := s.store.SaveHistory(entry); err != nil {
		s.log.Warnw("history write failed", "error", err)
	}
}
