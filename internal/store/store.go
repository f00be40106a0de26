// Package store persists drawings, their shapes, and their history. The
// session talks to the Store interface only; the interpretation pipeline
// never touches storage.
package store

import "voicesketch/internal/shape"

// Store is the record store the interactive session saves into and loads
// from, keyed by drawing id.
type Store interface {
	SaveDrawing(d shape.Drawing) error
	GetDrawing(id string) (*shape.Drawing, error)
	ListDrawings() ([]shape.Drawing, error)
	DeleteDrawing(id string) error

	SaveShapes(drawingID string, shapes []shape.Shape) error
	GetShapes(drawingID string) ([]shape.Shape, error)

	SaveHistory(entry shape.HistoryEntry) error
	GetHistory(drawingID string) ([]shape.HistoryEntry, error)

	Close() error
}
