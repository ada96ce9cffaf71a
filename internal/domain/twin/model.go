package twin

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrValidation marks rejections that happen before any persistence. Handlers
// map it to a 400 response.
var ErrValidation = errors.New("validation failed")

// EventType identifies the clinical category of an event.
type EventType string

const (
	EventSymptom      EventType = "symptom"
	EventLabResult    EventType = "lab_result"
	EventImaging      EventType = "imaging"
	EventDiagnosis    EventType = "diagnosis"
	EventTreatment    EventType = "treatment"
	EventMedication   EventType = "medication"
	EventObservation  EventType = "observation"
	EventConsultation EventType = "consultation"
	EventVital        EventType = "vital"
	EventDocument     EventType = "document"
)

var validEventTypes = map[EventType]bool{
	EventSymptom: true, EventLabResult: true, EventImaging: true,
	EventDiagnosis: true, EventTreatment: true, EventMedication: true,
	EventObservation: true, EventConsultation: true, EventVital: true,
	EventDocument: true,
}

// SourceModule identifies the subsystem that produced an event.
type SourceModule string

const (
	SourceSymptomAI   SourceModule = "symptom_ai"
	SourceDocHub      SourceModule = "doc_hub"
	SourceRadiologyAI SourceModule = "radiology_ai"
	SourceLabFlow     SourceModule = "lab_flow"
	SourceCarePlan    SourceModule = "care_plan"
	SourceTelemed     SourceModule = "telemed"
	SourceHealthSync  SourceModule = "health_sync"
	SourceCareTeam    SourceModule = "care_team"
	SourceManual      SourceModule = "manual"
)

var validSourceModules = map[SourceModule]bool{
	SourceSymptomAI: true, SourceDocHub: true, SourceRadiologyAI: true,
	SourceLabFlow: true, SourceCarePlan: true, SourceTelemed: true,
	SourceHealthSync: true, SourceCareTeam: true, SourceManual: true,
}

// ScopePatient is the default access scope applied when a writer supplies none.
const ScopePatient = "patient"

// Event is one immutable record in a patient's clinical log. Timestamp and
// Seq are assigned by the store at append time; Seq breaks same-instant ties
// so descending reads are deterministic.
type Event struct {
	EventID            string          `db:"event_id" json:"event_id"`
	PatientID          string          `db:"patient_id" json:"patient_id"`
	Timestamp          time.Time       `db:"timestamp" json:"timestamp"`
	Seq                int64           `db:"seq" json:"-"`
	EventType          EventType       `db:"event_type" json:"event_type"`
	SourceModule       SourceModule    `db:"source_module" json:"source_module"`
	DataPayload        json.RawMessage `db:"data_payload" json:"data_payload"`
	ClinicalConfidence *float64        `db:"clinical_confidence" json:"clinical_confidence"`
	AccessScope        []string        `db:"access_scope" json:"access_scope"`
}

// Payload is the typed body of an event. Each event type has exactly one
// payload shape.
type Payload interface {
	EventType() EventType
}

// VitalPayload records a single vital-sign measurement.
type VitalPayload struct {
	VitalType  string     `json:"vital_type"`
	Value      string     `json:"value"`
	Unit       string     `json:"unit,omitempty"`
	Source     string     `json:"source,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

func (VitalPayload) EventType() EventType { return EventVital }

// LabResultPayload records a completed lab test.
type LabResultPayload struct {
	TestName       string  `json:"test_name"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit,omitempty"`
	ReferenceRange string  `json:"reference_range,omitempty"`
	Status         string  `json:"status"`
}

func (LabResultPayload) EventType() EventType { return EventLabResult }

// ImagingPayload records an imaging study analysis.
type ImagingPayload struct {
	Modality        string   `json:"modality"`
	BodyPart        string   `json:"body_part,omitempty"`
	Findings        []string `json:"findings,omitempty"`
	Impression      string   `json:"impression,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

func (ImagingPayload) EventType() EventType { return EventImaging }

// SymptomPayload records a completed symptom-analysis session.
type SymptomPayload struct {
	Symptoms           []string `json:"symptoms"`
	TriageLevel        string   `json:"triage_level,omitempty"`
	PossibleConditions []string `json:"possible_conditions,omitempty"`
	Recommendations    []string `json:"recommendations,omitempty"`
}

func (SymptomPayload) EventType() EventType { return EventSymptom }

// DocumentPayload records a document filed for the patient.
type DocumentPayload struct {
	DocumentID   string `json:"document_id"`
	DocumentType string `json:"document_type,omitempty"`
	Title        string `json:"title"`
	Summary      string `json:"summary,omitempty"`
}

func (DocumentPayload) EventType() EventType { return EventDocument }

// TreatmentPayload records a care-plan change.
type TreatmentPayload struct {
	PlanID    string `json:"plan_id"`
	Title     string `json:"title"`
	Condition string `json:"condition,omitempty"`
	Status    string `json:"status"`
}

func (TreatmentPayload) EventType() EventType { return EventTreatment }

// ConsultationPayload records an appointment booking or completion.
type ConsultationPayload struct {
	AppointmentID   string     `json:"appointment_id"`
	Provider        string     `json:"provider,omitempty"`
	Mode            string     `json:"mode,omitempty"`
	Status          string     `json:"status"`
	ScheduledFor    *time.Time `json:"scheduled_for,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
}

func (ConsultationPayload) EventType() EventType { return EventConsultation }

// ObservationPayload records a free-form clinical observation.
type ObservationPayload struct {
	Category string `json:"category,omitempty"`
	Note     string `json:"note"`
}

func (ObservationPayload) EventType() EventType { return EventObservation }

// DiagnosisPayload records a diagnosed condition.
type DiagnosisPayload struct {
	Condition string `json:"condition"`
	Severity  string `json:"severity,omitempty"`
	Note      string `json:"note,omitempty"`
}

func (DiagnosisPayload) EventType() EventType { return EventDiagnosis }

// MedicationPayload records a medication start, change, or stop.
type MedicationPayload struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Status    string `json:"status"`
}

func (MedicationPayload) EventType() EventType { return EventMedication }

// DecodePayload unmarshals raw payload bytes into the typed variant for the
// given event type.
func DecodePayload(et EventType, raw json.RawMessage) (Payload, error) {
	var p Payload
	switch et {
	case EventVital:
		p = &VitalPayload{}
	case EventLabResult:
		p = &LabResultPayload{}
	case EventImaging:
		p = &ImagingPayload{}
	case EventSymptom:
		p = &SymptomPayload{}
	case EventDocument:
		p = &DocumentPayload{}
	case EventTreatment:
		p = &TreatmentPayload{}
	case EventConsultation:
		p = &ConsultationPayload{}
	case EventObservation:
		p = &ObservationPayload{}
	case EventDiagnosis:
		p = &DiagnosisPayload{}
	case EventMedication:
		p = &MedicationPayload{}
	default:
		return nil, fmt.Errorf("%w: unknown event_type %q", ErrValidation, et)
	}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("%w: malformed %s payload: %v", ErrValidation, et, err)
	}
	return p, nil
}
