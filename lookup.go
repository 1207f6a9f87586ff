package dictscrape

import (
	"context"
	"time"
)

// Lookup is a recorded search: which source was asked, for what, and the
// outcome it produced.
type Lookup struct {
	ID          string      `json:"id"`
	Source      string      `json:"source"`
	Query       string      `json:"query"`
	SourceURL   string      `json:"sourceUrl"`
	Kind        OutcomeKind `json:"kind"`
	Outcome     Outcome     `json:"-"`
	ContentHash string      `json:"contentHash"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Validate returns an error if the lookup contains invalid fields.
func (l *Lookup) Validate() error {
	if l.Source == "" {
		return Errorf(EINVALID, "lookup source required")
	}
	if l.Query == "" {
		return Errorf(EINVALID, "lookup query required")
	}
	if l.Outcome == nil {
		return Errorf(EINVALID, "lookup outcome required")
	}
	return nil
}

// LookupService represents a service for managing recorded lookups.
type LookupService interface {
	// CreateLookup records a lookup. ID, Kind, ContentHash and CreatedAt
	// are set by the implementation.
	CreateLookup(ctx context.Context, lookup *Lookup) error

	// FindLookupByID retrieves a lookup by ID.
	// Returns ENOTFOUND if lookup does not exist.
	FindLookupByID(ctx context.Context, id string) (*Lookup, error)

	// FindLookups retrieves lookups matching the filter, newest first.
	FindLookups(ctx context.Context, filter LookupFilter) ([]*Lookup, error)

	// DeleteLookup permanently removes a lookup.
	// Returns ENOTFOUND if lookup does not exist.
	DeleteLookup(ctx context.Context, id string) error
}

// LookupFilter represents a filter for FindLookups.
type LookupFilter struct {
	Source *string      `json:"source"`
	Query  *string      `json:"query"`
	Kind   *OutcomeKind `json:"kind"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
