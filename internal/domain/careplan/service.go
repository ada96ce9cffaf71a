package careplan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
)

// Service provides business logic for care plans.
type Service struct {
	plans    Repository
	recorder twin.Recorder
}

func NewService(plans Repository, recorder twin.Recorder) *Service {
	return &Service{plans: plans, recorder: recorder}
}

// Create opens a plan in active status and mirrors it as a treatment event
// visible to the patient and their primary doctor.
func (s *Service) Create(ctx context.Context, p *CarePlan) error {
	if p.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	p.Status = StatusActive

	if err := s.plans.Create(ctx, p); err != nil {
		return err
	}

	_, err := s.recorder.Record(ctx, p.PatientID, twin.SourceCarePlan, twin.TreatmentPayload{
		PlanID:    p.ID.String(),
		Title:     p.Title,
		Condition: p.Condition,
		Status:    p.Status,
	}, nil, []string{"patient", "primary_doctor"})
	if err != nil {
		return fmt.Errorf("mirroring care plan event: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CarePlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, patientID, status string, limit, offset int) ([]*CarePlan, int, error) {
	if patientID == "" {
		return nil, 0, fmt.Errorf("patient_id is required")
	}
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("unknown status %q", status)
	}
	return s.plans.List(ctx, patientID, status, limit, offset)
}

// UpdateStatus transitions a plan and mirrors the change as a treatment event.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*CarePlan, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.plans.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	p.Status = status

	_, err = s.recorder.Record(ctx, p.PatientID, twin.SourceCarePlan, twin.TreatmentPayload{
		PlanID:    p.ID.String(),
		Title:     p.Title,
		Condition: p.Condition,
		Status:    status,
	}, nil, []string{"patient", "primary_doctor"})
	if err != nil {
		return nil, fmt.Errorf("mirroring care plan event: %w", err)
	}
	return p, nil
}

// CountActive counts open plans, used by the aggregate snapshot.
func (s *Service) CountActive(ctx context.Context, patientID string) (int, error) {
	return s.plans.CountActive(ctx, patientID)
}
