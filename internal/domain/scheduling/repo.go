package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// List returns appointments soonest first, optionally narrowed by status
	// or to those at or after the given instant.
	List(ctx context.Context, patientID, status string, from *time.Time, limit, offset int) ([]*Appointment, int, error)
	Update(ctx context.Context, a *Appointment) error
	// CountUpcoming counts appointments at or after now in scheduled or
	// confirmed status.
	CountUpcoming(ctx context.Context, patientID string, now time.Time) (int, error)
}
