package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
)

// Service provides business logic for vital-sign recording.
type Service struct {
	vitals   Repository
	recorder twin.Recorder
	log      zerolog.Logger
}

func NewService(vitals Repository, recorder twin.Recorder, log zerolog.Logger) *Service {
	return &Service{vitals: vitals, recorder: recorder, log: log}
}

// Record persists one measurement and mirrors it into the patient's event
// log. Manual entries carry no model confidence.
func (s *Service) Record(ctx context.Context, v *Vital) error {
	if v.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if v.Type == "" {
		return fmt.Errorf("type is required")
	}
	if v.Value == "" {
		return fmt.Errorf("value is required")
	}
	if v.Source == "" {
		v.Source = SourceManualEntry
	}
	if v.MeasuredAt.IsZero() {
		v.MeasuredAt = time.Now().UTC()
	}

	if err := s.vitals.Create(ctx, v); err != nil {
		return err
	}

	source := twin.SourceManual
	if v.Source != SourceManualEntry {
		source = twin.SourceHealthSync
	}
	measured := v.MeasuredAt
	_, err := s.recorder.Record(ctx, v.PatientID, source, twin.VitalPayload{
		VitalType:  v.Type,
		Value:      v.Value,
		Unit:       v.Unit,
		Source:     v.Source,
		RecordedAt: &measured,
	}, nil, nil)
	if err != nil {
		// The measurement row is already durable; surface the broken mirror
		// instead of hiding it.
		return fmt.Errorf("mirroring vital event: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, patientID, vitalType string, limit, offset int) ([]*Vital, int, error) {
	if patientID == "" {
		return nil, 0, fmt.Errorf("patient_id is required")
	}
	return s.vitals.List(ctx, patientID, vitalType, limit, offset)
}

// LatestByType returns the newest measurement per requested type, or nil.
func (s *Service) LatestByType(ctx context.Context, patientID, vitalType string) (*Vital, error) {
	return s.vitals.LatestByType(ctx, patientID, vitalType)
}

// Latest returns the newest measurement for each tracked vital type.
func (s *Service) Latest(ctx context.Context, patientID string) (map[string]*Vital, error) {
	out := map[string]*Vital{}
	for _, vt := range twin.TrackedVitalTypes {
		v, err := s.vitals.LatestByType(ctx, patientID, vt)
		if err != nil {
			s.log.Warn().Err(err).Str("vital_type", vt).Msg("latest vital lookup failed")
			continue
		}
		if v != nil {
			out[vt] = v
		}
	}
	return out, nil
}
