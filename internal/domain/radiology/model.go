package radiology

import (
	"time"

	"github.com/google/uuid"
)

// Result sources.
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// Analysis maps to the radiology_analysis table: one interpreted imaging study.
type Analysis struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       string    `db:"patient_id" json:"patient_id"`
	Modality        string    `db:"modality" json:"modality"`
	BodyPart        string    `db:"body_part" json:"body_part,omitempty"`
	ClinicalContext string    `db:"clinical_context" json:"clinical_context,omitempty"`
	Findings        []string  `db:"findings" json:"findings"`
	Impression      string    `db:"impression" json:"impression"`
	Recommendations []string  `db:"recommendations" json:"recommendations"`
	Source          string    `db:"source" json:"source"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
