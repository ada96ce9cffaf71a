package twin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultLimit bounds a timeline read when the caller supplies no limit.
const DefaultLimit = 50

// Recorder is the one contract every domain write-path depends on: after
// persisting its own entity, a write-path mirrors the mutation as exactly one
// event. Confidence is nil for records carrying no model uncertainty. An
// empty scope defaults to {patient}.
type Recorder interface {
	Record(ctx context.Context, patientID string, source SourceModule, payload Payload, confidence *float64, scope []string) (*Event, error)
}

// Service owns the append-only event log and its read paths.
type Service struct {
	events Repository
	log    zerolog.Logger
}

// NewService creates the event log service.
func NewService(events Repository, log zerolog.Logger) *Service {
	return &Service{events: events, log: log}
}

// Record validates and appends one event. Once it returns, the event is
// durably persisted and visible to subsequent reads.
func (s *Service) Record(ctx context.Context, patientID string, source SourceModule, payload Payload, confidence *float64, scope []string) (*Event, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is required", ErrValidation)
	}
	et := payload.EventType()
	if !validEventTypes[et] {
		return nil, fmt.Errorf("%w: unknown event_type %q", ErrValidation, et)
	}
	if !validSourceModules[source] {
		return nil, fmt.Errorf("%w: unknown source_module %q", ErrValidation, source)
	}
	if confidence != nil && (*confidence < 0 || *confidence > 1) {
		return nil, fmt.Errorf("%w: clinical_confidence %v outside [0,1]", ErrValidation, *confidence)
	}
	if len(scope) == 0 {
		scope = []string{ScopePatient}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling %s payload: %v", ErrValidation, et, err)
	}

	e := &Event{
		EventID:            uuid.New().String(),
		PatientID:          patientID,
		EventType:          et,
		SourceModule:       source,
		DataPayload:        raw,
		ClinicalConfidence: confidence,
		AccessScope:        scope,
	}
	if err := s.events.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("appending %s event: %w", et, err)
	}

	s.log.Debug().
		Str("patient_id", patientID).
		Str("event_type", string(et)).
		Str("source_module", string(source)).
		Msg("event appended")
	return e, nil
}

// Query reads the patient's events newest first without scope filtering.
// Intended for unrestricted readers and internal consumers.
func (s *Service) Query(ctx context.Context, patientID string, f Filter) ([]*Event, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	f = defaultLimit(f)
	return s.events.List(ctx, patientID, f)
}

// Timeline reads the patient's events visible to a caller holding the given
// scopes, newest first. An event is visible when its access scope intersects
// the caller's. A nil scope set means the caller is unrestricted.
func (s *Service) Timeline(ctx context.Context, patientID string, scopes []string, f Filter) ([]*Event, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	f = defaultLimit(f)
	if scopes == nil {
		return s.events.List(ctx, patientID, f)
	}
	return s.events.ListVisible(ctx, patientID, scopes, f)
}

// defaultLimit fills in the limit when the caller supplies none. An explicit
// limit is honored as given: a caller asking for N events after N appends
// gets all N. HTTP-facing caps live in the pagination layer.
func defaultLimit(f Filter) Filter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	return f
}
