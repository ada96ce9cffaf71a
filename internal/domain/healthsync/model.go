package healthsync

import (
	"time"

	"github.com/google/uuid"
)

// Device statuses.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// Device maps to the health_device table: one connected wearable or health
// data source.
type Device struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   string     `db:"patient_id" json:"patient_id"`
	DeviceType  string     `db:"device_type" json:"device_type"`
	Status      string     `db:"status" json:"status"`
	LastSyncAt  *time.Time `db:"last_sync_at" json:"last_sync_at,omitempty"`
	ConnectedAt time.Time  `db:"connected_at" json:"connected_at"`
}

// Sample is one measurement in a sync batch.
type Sample struct {
	Type       string    `json:"type"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SyncResult reports the outcome of one batch sync.
type SyncResult struct {
	DeviceID uuid.UUID `json:"device_id"`
	Synced   int       `json:"synced"`
	Skipped  int       `json:"skipped"`
}

// Summary aggregates the trailing activity window.
type Summary struct {
	PatientID     string  `json:"patient_id"`
	Days          int     `json:"days"`
	TotalSteps    int     `json:"total_steps"`
	AvgDailySteps float64 `json:"avg_daily_steps"`
	AvgHeartRate  float64 `json:"avg_heart_rate"`
	AvgSleepHours float64 `json:"avg_sleep_hours"`
}
