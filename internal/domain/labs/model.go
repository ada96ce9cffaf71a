package labs

import (
	"time"

	"github.com/google/uuid"
)

// LabResult maps to the lab_result table. Status is computed once at creation
// from the value and reference range and never recomputed, so later range
// revisions do not rewrite history.
type LabResult struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      string    `db:"patient_id" json:"patient_id"`
	TestName       string    `db:"test_name" json:"test_name"`
	Value          float64   `db:"value" json:"value"`
	Unit           string    `db:"unit" json:"unit,omitempty"`
	ReferenceRange string    `db:"reference_range" json:"reference_range,omitempty"`
	Status         Status    `db:"status" json:"status"`
	OrderedBy      string    `db:"ordered_by" json:"ordered_by,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// TrendPoint is one sample in a per-test trend series.
type TrendPoint struct {
	Date   time.Time `json:"date"`
	Value  float64   `json:"value"`
	Status Status    `json:"status"`
}
