package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"voicesketch/internal/shape"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDrawingRoundTrip(t *testing.T) {
	s := openTestStore(t)

	d := shape.Drawing{ID: "d1", Title: "sunset", CreatedAt: 1000, UpdatedAt: 2000}
	if err := s.SaveDrawing(d); err != nil {
		t.Fatalf("SaveDrawing: %v", err)
	}

	got, err := s.GetDrawing("d1")
	if err != nil {
		t.Fatalf("GetDrawing: %v", err)
	}
	if got == nil {
		t.Fatal("drawing not found")
	}
	if diff := cmp.Diff(d, *got); diff != "" {
		t.Errorf("drawing mismatch (-want +got):\n%s", diff)
	}
}

func TestGetDrawingAbsent(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GetDrawing("nope")
	if err != nil {
		t.Fatalf("GetDrawing: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for absent drawing", got)
	}
}

func TestSaveDrawingUpserts(t *testing.T) {
	s := openTestStore(t)

	d := shape.Drawing{ID: "d1", Title: "first", CreatedAt: 1, UpdatedAt: 1}
	if err := s.SaveDrawing(d); err != nil {
		t.Fatal(err)
	}
	d.Title = "renamed"
	d.UpdatedAt = 2
	if err := s.SaveDrawing(d); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetDrawing("d1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "renamed" || got.UpdatedAt != 2 {
		t.Errorf("upsert lost fields: %+v", got)
	}
}

func TestListDrawingsOrdersByUpdate(t *testing.T) {
	s := openTestStore(t)

	for _, d := range []shape.Drawing{
		{ID: "old", Title: "old", CreatedAt: 1, UpdatedAt: 10},
		{ID: "new", Title: "new", CreatedAt: 2, UpdatedAt: 20},
	} {
		if err := s.SaveDrawing(d); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.ListDrawings()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "new" {
		t.Errorf("list = %+v, want most recent first", list)
	}
}

func TestShapesRoundTripAllVariants(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveDrawing(shape.Drawing{ID: "d1", Title: "t", CreatedAt: 1, UpdatedAt: 1}); err != nil {
		t.Fatal(err)
	}

	shapes := []shape.Shape{
		&shape.Circle{Base: shape.Base{ID: "c1", Position: shape.Point{X: 400, Y: 300}, Style: shape.DefaultStyle()}, Radius: 50},
		&shape.Rectangle{Base: shape.Base{ID: "r1", Position: shape.Point{X: 350, Y: 250}, Style: shape.DefaultStyle()}, Width: 100, Height: 100},
		&shape.Line{Base: shape.Base{ID: "l1", Style: shape.DefaultStyle()}, Points: [2]shape.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}},
		&shape.Dot{Base: shape.Base{ID: "p1", Position: shape.Point{X: 9, Y: 9}, Style: shape.DefaultStyle()}},
	}
	if err := s.SaveShapes("d1", shapes); err != nil {
		t.Fatalf("SaveShapes: %v", err)
	}

	got, err := s.GetShapes("d1")
	if err != nil {
		t.Fatalf("GetShapes: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d shapes, want 4", len(got))
	}
	// z-order preserved.
	for i, want := range []string{"c1", "r1", "l1", "p1"} {
		if got[i].ShapeID() != want {
			t.Errorf("position %d = %q, want %q", i, got[i].ShapeID(), want)
		}
	}
	c := got[0].(*shape.Circle)
	if c.Radius != 50 || c.Position.X != 400 {
		t.Errorf("circle lost geometry: %+v", c)
	}
}

func TestSaveShapesReplaces(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveDrawing(shape.Drawing{ID: "d1", Title: "t", CreatedAt: 1, UpdatedAt: 1}); err != nil {
		t.Fatal(err)
	}

	first := []shape.Shape{&shape.Dot{Base: shape.Base{ID: "a", Style: shape.DefaultStyle()}}}
	if err := s.SaveShapes("d1", first); err != nil {
		t.Fatal(err)
	}
	second := []shape.Shape{&shape.Dot{Base: shape.Base{ID: "b", Style: shape.DefaultStyle()}}}
	if err := s.SaveShapes("d1", second); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetShapes("d1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ShapeID() != "b" {
		t.Errorf("save did not replace: %+v", got)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveDrawing(shape.Drawing{ID: "d1", Title: "t", CreatedAt: 1, UpdatedAt: 1}); err != nil {
		t.Fatal(err)
	}

	entries := []shape.HistoryEntry{
		{ID: "h1", DrawingID: "d1", Action: shape.ActionAdd, ShapeID: "c1", Timestamp: 100},
		{ID: "h2", DrawingID: "d1", Action: shape.ActionDelete, ShapeID: "c1", Timestamp: 200},
	}
	for _, e := range entries {
		if err := s.SaveHistory(e); err != nil {
			t.Fatalf("SaveHistory: %v", err)
		}
	}

	got, err := s.GetHistory("d1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteDrawingCascades(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveDrawing(shape.Drawing{ID: "d1", Title: "t", CreatedAt: 1, UpdatedAt: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveShapes("d1", []shape.Shape{&shape.Dot{Base: shape.Base{ID: "a", Style: shape.DefaultStyle()}}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveHistory(shape.HistoryEntry{ID: "h1", DrawingID: "d1", Action: shape.ActionAdd, Timestamp: 1}); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteDrawing("d1"); err != nil {
		t.Fatalf("DeleteDrawing: %v", err)
	}

	if d, _ := s.GetDrawing("d1"); d != nil {
		t.Error("drawing survived delete")
	}
	if shapes, _ := s.GetShapes("d1"); len(shapes) != 0 {
		t.Error("shapes survived delete")
	}
	if hist, _ := s.GetHistory("d1"); len(hist) != 0 {
		t.Error("history survived delete")
	}
}
