package vitals

import (
	"time"

	"github.com/google/uuid"
)

// Vital maps to the vital table: one measurement of one vital sign.
type Vital struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  string    `db:"patient_id" json:"patient_id"`
	Type       string    `db:"type" json:"type"`
	Value      string    `db:"value" json:"value"`
	Unit       string    `db:"unit" json:"unit,omitempty"`
	Source     string    `db:"source" json:"source"`
	MeasuredAt time.Time `db:"measured_at" json:"measured_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SourceManualEntry marks a measurement typed in by hand rather than synced
// from a device.
const SourceManualEntry = "manual"
