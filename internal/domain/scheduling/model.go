package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusConfirmed: true, StatusInProgress: true,
	StatusCompleted: true, StatusCancelled: true,
}

// Appointment types.
const (
	TypeVideo    = "video"
	TypeInPerson = "in_person"
)

// Appointment maps to the appointment table.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       string    `db:"patient_id" json:"patient_id"`
	Provider        string    `db:"provider" json:"provider"`
	Type            string    `db:"type" json:"type"`
	Status          string    `db:"status" json:"status"`
	AppointmentDate time.Time `db:"appointment_date" json:"appointment_date"`
	Reason          string    `db:"reason" json:"reason,omitempty"`
	MeetingLink     string    `db:"meeting_link" json:"meeting_link,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
