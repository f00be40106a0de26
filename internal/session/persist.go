package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"voicesketch/internal/shape"
)

var errNoStore = errors.New("session has no store configured")

// SaveAs creates a new drawing record, binds the session to it, and writes
// the current shapes under it. Subsequent Save calls reuse the binding.
func (s *Session) SaveAs(title string) (string, error) {
	if s.store == nil {
		return "", errNoStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := shape.Now()
	d := shape.Drawing{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveDrawing(d); err != nil {
		return "", fmt.Errorf("save drawing: %w", err)
	}
	if err := s.store.SaveShapes(d.ID, s.shapes); err != nil {
		return "", fmt.Errorf("save shapes: %w", err)
	}
	s.drawingID = d.ID
	return d.ID, nil
}

// Save writes the current shapes back to the bound drawing.
func (s *Session) Save() error {
	if s.store == nil {
		return errNoStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drawingID == "" {
		return errors.New("session is not bound to a drawing, use SaveAs first")
	}
	d, err := s.store.GetDrawing(s.drawingID)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("drawing %s no longer exists", s.drawingID)
	}
	d.UpdatedAt = shape.Now()
	if err := s.store.SaveDrawing(*d); err != nil {
		return fmt.Errorf("save drawing: %w", err)
	}
	if err := s.store.SaveShapes(s.drawingID, s.shapes); err != nil {
		return fmt.Errorf("save shapes: %w", err)
	}
	return nil
}

// Load replaces the session state with a stored drawing. The rolling
// action log restarts empty; history stays attached to the drawing.
func (s *Session) Load(drawingID string) error {
	if s.store == nil {
		return errNoStore
	}

	d, err := s.store.GetDrawing(drawingID)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("drawing not found: %s", drawingID)
	}
	shapes, err := s.store.GetShapes(drawingID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawingID = drawingID
	s.shapes = shapes
	s.recentActions = nil
	return nil
}

// DrawingID reports the bound drawing, empty when the session is ephemeral.
func (s *Session) DrawingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawingID
}
