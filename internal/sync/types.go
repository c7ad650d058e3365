package sync

// Document is one remote JSON document. Every document written by the
// engine carries an "updatedAt" field stamped at write time.
type Document = map[string]any

// DocumentWrite is one write inside an atomic batch commit.
type DocumentWrite struct {
	Path string   `json:"path"`
	Data Document `json:"data"`
}

// BatchCommitRequest for POST /api/v1/batch. All writes commit atomically
// or not at all.
type BatchCommitRequest struct {
	Writes []DocumentWrite `json:"writes"`
}

// BatchCommitResponse from POST /api/v1/batch.
type BatchCommitResponse struct {
	Committed int `json:"committed"`
}

// updatedAtField is the timestamp key stamped onto every remote write.
const updatedAtField = "updatedAt"
