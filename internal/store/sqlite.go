package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"voicesketch/internal/logging"
	"voicesketch/internal/shape"
)

// SQLiteStore implements Store on a single SQLite file. Shape geometry is
// stored as the JSON wire form next to indexed metadata, so loading never
// needs per-variant column plumbing.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteStore opens (creating if needed) the database at path and
// bootstraps the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	log := logging.Get(logging.CategoryStore)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	log.Infow("store initialized", "path", path)
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS drawings (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			createdAt INTEGER NOT NULL,
			updatedAt INTEGER NOT NULL,
			thumbnailPath TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS shapes (
			id TEXT PRIMARY KEY,
			drawingId TEXT NOT NULL,
			type TEXT NOT NULL,
			data TEXT NOT NULL,
			createdAt INTEGER NOT NULL,
			zIndex INTEGER DEFAULT 0,
			FOREIGN KEY (drawingId) REFERENCES drawings(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			drawingId TEXT NOT NULL,
			action TEXT NOT NULL,
			shapeId TEXT,
			timestamp INTEGER NOT NULL,
			data TEXT,
			FOREIGN KEY (drawingId) REFERENCES drawings(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shapes_drawingId ON shapes(drawingId)`,
		`CREATE INDEX IF NOT EXISTS idx_history_drawingId ON history(drawingId)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// SaveDrawing inserts or replaces a drawing record.
func (s *SQLiteStore) SaveDrawing(d shape.Drawing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO drawings (id, title, createdAt, updatedAt, thumbnailPath)
		 VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.CreatedAt, d.UpdatedAt, d.ThumbnailPath,
	)
	if err != nil {
		return fmt.Errorf("save drawing %s: %w", d.ID, err)
	}
	return nil
}

// GetDrawing returns the drawing with the given id, or nil when absent.
func (s *SQLiteStore) GetDrawing(id string) (*shape.Drawing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.db.QueryRow(
		`SELECT id, title, createdAt, updatedAt, COALESCE(thumbnailPath, '')
		 FROM drawings WHERE id = ?`, id)

	var d shape.Drawing
	if err := row.Scan(&d.ID, &d.Title, &d.CreatedAt, &d.UpdatedAt, &d.ThumbnailPath); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get drawing %s: %w", id, err)
	}
	return &d, nil
}

// ListDrawings returns all drawings, most recently updated first.
func (s *SQLiteStore) ListDrawings() ([]shape.Drawing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(
		`SELECT id, title, createdAt, updatedAt, COALESCE(thumbnailPath, '')
		 FROM drawings ORDER BY updatedAt DESC`)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	defer rows.Close()

	var out []shape.Drawing
	for rows.Next() {
		var d shape.Drawing
		if err := rows.Scan(&d.ID, &d.Title, &d.CreatedAt, &d.UpdatedAt, &d.ThumbnailPath); err != nil {
			return nil, fmt.Errorf("scan drawing: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDrawing removes a drawing and, via cascade, its shapes and history.
func (s *SQLiteStore) DeleteDrawing(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stmt := range []string{
		`DELETE FROM history WHERE drawingId = ?`,
		`DELETE FROM shapes WHERE drawingId = ?`,
		`DELETE FROM drawings WHERE id = ?`,
	} {
		if _, err := s.db.Exec(stmt, id); err != nil {
			return fmt.Errorf("delete drawing %s: %w", id, err)
		}
	}
	return nil
}

// SaveShapes replaces the shape set of a drawing in one transaction,
// preserving insertion order as zIndex.
func (s *SQLiteStore) SaveShapes(drawingID string, shapes []shape.Shape) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save shapes: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM shapes WHERE drawingId = ?`, drawingID); err != nil {
		return fmt.Errorf("clear shapes for %s: %w", drawingID, err)
	}

	now := shape.Now()
	for i, sh := range shapes {
		data, err := shape.Marshal(sh)
		if err != nil {
			return fmt.Errorf("encode shape %s: %w", sh.ShapeID(), err)
		}
		if _, err := tx.Exec(
			`INSERT INTO shapes (id, drawingId, type, data, createdAt, zIndex)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sh.ShapeID(), drawingID, string(sh.Kind()), string(data), now, i,
		); err != nil {
			return fmt.Errorf("insert shape %s: %w", sh.ShapeID(), err)
		}
	}

	return tx.Commit()
}

// GetShapes loads a drawing's shapes in z-order.
func (s *SQLiteStore) GetShapes(drawingID string) ([]shape.Shape, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(
		`SELECT data FROM shapes WHERE drawingId = ? ORDER BY zIndex ASC`, drawingID)
	if err != nil {
		return nil, fmt.Errorf("get shapes for %s: %w", drawingID, err)
	}
	defer rows.Close()

	var out []shape.Shape
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan shape: %w", err)
		}
		sh, err := shape.Unmarshal([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("decode stored shape: %w", err)
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

// SaveHistory appends one history entry.
func (s *SQLiteStore) SaveHistory(entry shape.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO history (id, drawingId, action, shapeId, timestamp, data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.DrawingID, string(entry.Action), entry.ShapeID, entry.Timestamp, entry.Data,
	)
	if err != nil {
		return fmt.Errorf("save history for %s: %w", entry.DrawingID, err)
	}
	return nil
}

// GetHistory returns a drawing's history, oldest first.
func (s *SQLiteStore) GetHistory(drawingID string) ([]shape.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(
		`SELECT id, drawingId, action, COALESCE(shapeId, ''), timestamp, COALESCE(data, '')
		 FROM history WHERE drawingId = ? ORDER BY timestamp ASC`, drawingID)
	if err != nil {
		return nil, fmt.Errorf("get history for %s: %w", drawingID, err)
	}
	defer rows.Close()

	var out []shape.HistoryEntry
	for rows.Next() {
		var e shape.HistoryEntry
		var action string
		if err := rows.Scan(&e.ID, &e.DrawingID, &action, &e.ShapeID, &e.Timestamp, &e.Data); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Action = shape.Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
