package twin

import (
	"context"
	"time"
)

// Filter narrows a timeline read. Zero values mean "no constraint". Limit is
// applied after all filters so it bounds visible events.
type Filter struct {
	EventType    EventType
	SourceModule SourceModule
	Start        *time.Time
	End          *time.Time
	Limit        int
}

// Repository is the append-only persistence contract for the event log.
// There is deliberately no update or delete.
type Repository interface {
	// Insert persists the event, assigning Timestamp and Seq from the store.
	Insert(ctx context.Context, e *Event) error
	// List returns events for the patient, newest first, without scope
	// filtering. Used by unrestricted readers.
	List(ctx context.Context, patientID string, f Filter) ([]*Event, error)
	// ListVisible returns events whose access scope intersects the caller's
	// scopes, newest first. The limit bounds visible events, not scanned rows.
	ListVisible(ctx context.Context, patientID string, scopes []string, f Filter) ([]*Event, error)
}
