package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document maps to the document table: a filed clinical document with
// extracted text and an optional generated summary.
type Document struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  string    `db:"patient_id" json:"patient_id"`
	Type       string    `db:"type" json:"type"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content,omitempty"`
	Summary    string    `db:"summary" json:"summary,omitempty"`
	UploadedBy string    `db:"uploaded_by" json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
