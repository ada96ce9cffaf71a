package vitals

import "context"

// Repository is the persistence contract for vital measurements.
type Repository interface {
	Create(ctx context.Context, v *Vital) error
	// List returns measurements newest first, optionally narrowed to one type.
	List(ctx context.Context, patientID, vitalType string, limit, offset int) ([]*Vital, int, error)
	// LatestByType returns the most recent measurement of the given type, or
	// nil when the patient has none.
	LatestByType(ctx context.Context, patientID, vitalType string) (*Vital, error)
}
