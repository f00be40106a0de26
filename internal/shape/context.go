package shape

import "time"

// Action is the kind of a recorded drawing operation.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManual Action = "manual"
)

// RecentActionWindow bounds how many trailing action kinds the pipeline
// sees as conversational context.
const RecentActionWindow = 5

// Context is the read-only snapshot handed into the interpretation
// pipeline. The pipeline never mutates it; the session owns the live
// collection and passes copies in.
type Context struct {
	Shapes        []Shape
	RecentActions []string
}

// HistoryEntry is one recorded operation against a drawing. The pipeline
// only consumes a trailing window of the action kinds; everything else is
// for persistence and replay.
type HistoryEntry struct {
	ID        string `json:"id"`
	DrawingID string `json:"drawingId"`
	Action    Action `json:"action"`
	ShapeID   string `json:"shapeId,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Data      string `json:"data,omitempty"`
}

// Drawing is a saved piece reachable by id.
type Drawing struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt"`
	ThumbnailPath string `json:"thumbnailPath,omitempty"`
}

// Now is the timestamp convention used for drawings and history entries.
func Now() int64 { return time.Now().UnixMilli() }
