package notify

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeReminder = "reminder"
	TypeAlert    = "alert"
	TypeInfo     = "info"
)

var validTypes = map[string]bool{
	TypeReminder: true,
	TypeAlert:    true,
	TypeInfo:     true,
}

// Notification is one in-app message for a patient. Delivery to devices
// happens outside this service.
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID string    `db:"patient_id" json:"patient_id"`
	Type      string    `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
