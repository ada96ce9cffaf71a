package documents

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for documents.
type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	List(ctx context.Context, patientID, docType string, limit, offset int) ([]*Document, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, patientID string) (int, error)
}
