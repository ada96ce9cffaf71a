package radiology

import "context"

// Repository is the persistence contract for imaging analyses.
type Repository interface {
	Create(ctx context.Context, a *Analysis) error
	List(ctx context.Context, patientID string, limit, offset int) ([]*Analysis, int, error)
}
