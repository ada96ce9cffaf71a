package labs

import (
	"context"
	"time"
)

// Repository is the persistence contract for lab results.
type Repository interface {
	Create(ctx context.Context, r *LabResult) error
	// List returns results newest first, optionally narrowed by test name.
	List(ctx context.Context, patientID, testName string, limit, offset int) ([]*LabResult, int, error)
	// Trend returns all samples for one test, oldest first.
	Trend(ctx context.Context, patientID, testName string) ([]*LabResult, error)
	// CountSince counts results created at or after the given instant.
	CountSince(ctx context.Context, patientID string, since time.Time) (int, error)
}
