// Package store persists layout jobs for the HTTP API.
//
// This package defines the LayoutStore interface and two backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for durable multi-instance deployments
//
// # Architecture
//
// A Layout is a job record: it is created pending when a request is
// accepted, marked running when the pipeline picks it up, and finished
// as done (with the layout document attached) or failed (with the error
// message). Records are immutable between transitions; a transition is
// a fresh Put of the updated record.
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemory()
//
//	// Production
//	st, err := store.NewMongo(ctx, "mongodb://localhost:27017", "")
//
// Track a job:
//
//	l := store.NewLayout(id)
//	st.Put(ctx, l)
//	...
//	l.MarkDone(doc)
//	st.Put(ctx, l)
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/matzehuels/sgdraw/pkg/graphio"
)

// ErrNotFound is returned when a layout job does not exist.
var ErrNotFound = errors.New("layout not found")

// Status is the lifecycle state of a layout job.
type Status string

// Valid job states.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Layout is one layout job and, once done, its result.
type Layout struct {
	ID     string `json:"id" bson:"_id"`
	Status Status `json:"status" bson:"status"`

	// Graph is the node-link JSON the job was submitted with. Keeping it
	// on the record lets the artifact routes re-read edges without a
	// second upload.
	Graph json.RawMessage `json:"graph,omitempty" bson:"graph,omitempty"`

	// Error carries the failure message for StatusFailed records.
	Error string `json:"error,omitempty" bson:"error,omitempty"`

	// Doc is the computed layout, set once the job is done. It is
	// treated as immutable after it is attached; backends share it
	// between copies of the record.
	Doc *graphio.LayoutDoc `json:"layout,omitempty" bson:"layout,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewLayout creates a pending job record.
func NewLayout(id string) *Layout {
	now := time.Now().UTC()
	return &Layout{
		ID:        id,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkRunning transitions the record to running.
func (l *Layout) MarkRunning() {
	l.Status = StatusRunning
	l.UpdatedAt = time.Now().UTC()
}

// MarkDone attaches the finished document and transitions to done.
func (l *Layout) MarkDone(doc *graphio.LayoutDoc) {
	l.Status = StatusDone
	l.Doc = doc
	l.Error = ""
	l.UpdatedAt = time.Now().UTC()
}

// MarkFailed records the failure and transitions to failed.
func (l *Layout) MarkFailed(err error) {
	l.Status = StatusFailed
	if err != nil {
		l.Error = err.Error()
	}
	l.UpdatedAt = time.Now().UTC()
}

// LayoutStore is the interface for layout job storage backends.
type LayoutStore interface {
	// Put stores a job record, replacing any record with the same ID.
	Put(ctx context.Context, l *Layout) error

	// Get retrieves a job by ID.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, id string) (*Layout, error)

	// List returns records sorted newest first. A limit of zero or less
	// returns every record.
	List(ctx context.Context, limit int) ([]*Layout, error)

	// Delete removes a job.
	// Returns ErrNotFound if no record exists.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
