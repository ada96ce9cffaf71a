package healthsync

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Reading is one vital measurement as seen by the sync summary.
type Reading struct {
	Type       string
	Value      string
	RecordedAt time.Time
}

// Repository is the persistence contract for connected devices and the
// trailing-window reads the sync summary needs.
type Repository interface {
	CreateDevice(ctx context.Context, d *Device) error
	GetDevice(ctx context.Context, id uuid.UUID) (*Device, error)
	ListDevices(ctx context.Context, patientID string) ([]*Device, error)
	TouchLastSync(ctx context.Context, id uuid.UUID, at time.Time) error
	// ReadingsSince returns measurements recorded at or after the given
	// instant, any type, oldest first.
	ReadingsSince(ctx context.Context, patientID string, since time.Time) ([]*Reading, error)
}
