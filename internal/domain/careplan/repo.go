package careplan

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for care plans.
type Repository interface {
	Create(ctx context.Context, p *CarePlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*CarePlan, error)
	List(ctx context.Context, patientID, status string, limit, offset int) ([]*CarePlan, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountActive(ctx context.Context, patientID string) (int, error)
}
