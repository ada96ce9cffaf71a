package labs

import (
	"context"
	"fmt"
	"time"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
)

// Manually entered results carry full confidence.
var manualConfidence = 1.0

// Service provides business logic for the lab workflow.
type Service struct {
	labs     Repository
	recorder twin.Recorder
}

func NewService(labs Repository, recorder twin.Recorder) *Service {
	return &Service{labs: labs, recorder: recorder}
}

// Create classifies and persists one lab result, then mirrors it into the
// patient's event log, visible to the patient and their primary doctor.
func (s *Service) Create(ctx context.Context, l *LabResult) error {
	if l.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if l.TestName == "" {
		return fmt.Errorf("test_name is required")
	}

	l.Status = Classify(l.Value, l.ReferenceRange)

	if err := s.labs.Create(ctx, l); err != nil {
		return err
	}

	_, err := s.recorder.Record(ctx, l.PatientID, twin.SourceLabFlow, twin.LabResultPayload{
		TestName:       l.TestName,
		Value:          l.Value,
		Unit:           l.Unit,
		ReferenceRange: l.ReferenceRange,
		Status:         string(l.Status),
	}, &manualConfidence, []string{"patient", "primary_doctor"})
	if err != nil {
		return fmt.Errorf("mirroring lab event: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, patientID, testName string, limit, offset int) ([]*LabResult, int, error) {
	if patientID == "" {
		return nil, 0, fmt.Errorf("patient_id is required")
	}
	return s.labs.List(ctx, patientID, testName, limit, offset)
}

// Trend returns the per-test series of values oldest first, for charting.
func (s *Service) Trend(ctx context.Context, patientID, testName string) ([]TrendPoint, error) {
	if testName == "" {
		return nil, fmt.Errorf("test_name is required")
	}
	results, err := s.labs.Trend(ctx, patientID, testName)
	if err != nil {
		return nil, err
	}
	points := make([]TrendPoint, 0, len(results))
	for _, r := range results {
		points = append(points, TrendPoint{Date: r.CreatedAt, Value: r.Value, Status: r.Status})
	}
	return points, nil
}

// CountSince counts results created within a trailing window, used by the
// aggregate snapshot.
func (s *Service) CountSince(ctx context.Context, patientID string, since time.Time) (int, error) {
	return s.labs.CountSince(ctx, patientID, since)
}
