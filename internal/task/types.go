// Package task holds the in-memory task collection and its mutations.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single to-do item.
type Task struct {
	// ID is the permanent identity. It is never shown and never used for lookup.
	ID uuid.UUID `json:"id"`

	// Index is the 1-based handle used by done and remove.
	// It is renumbered after every removal.
	Index int `json:"index"`

	Title string `json:"title"`

	// Complete is stored as "is_complited" to stay readable by existing store files.
	Complete bool `json:"is_complited"`

	// CreatedAt is kept in UTC.
	CreatedAt time.Time `json:"created_at"`
}
