package docstore

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document violates a uniqueness constraint")
)

// Record is the JSON body of a document.
type Record map[string]any

// Document is a stored record together with its identity.
type Document struct {
	ID         string
	Collection string
	Data       Record
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Equal is a top-level field equality filter, compared as text.
type Equal struct {
	Field string
	Value string
}
