package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
)

// Service provides business logic for appointment booking and telemedicine.
type Service struct {
	appts    Repository
	recorder twin.Recorder
}

func NewService(appts Repository, recorder twin.Recorder) *Service {
	return &Service{appts: appts, recorder: recorder}
}

// Create books an appointment in scheduled status. Video visits get a
// synthetic meeting room link; call signaling itself is an external concern.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if a.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if a.AppointmentDate.IsZero() {
		return fmt.Errorf("appointment_date is required")
	}
	if a.Type == "" {
		a.Type = TypeInPerson
	}
	a.Status = StatusScheduled
	if a.Type == TypeVideo {
		a.MeetingLink = "https://meet.medinexus.health/" + uuid.New().String()
	}

	if err := s.appts.Create(ctx, a); err != nil {
		return err
	}

	return s.mirror(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

// List returns appointments soonest first. With upcoming set, only those at
// or after now are returned.
func (s *Service) List(ctx context.Context, patientID, status string, upcoming bool, limit, offset int) ([]*Appointment, int, error) {
	if patientID == "" {
		return nil, 0, fmt.Errorf("patient_id is required")
	}
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("unknown status %q", status)
	}
	var from *time.Time
	if upcoming {
		now := time.Now().UTC()
		from = &now
	}
	return s.appts.List(ctx, patientID, status, from, limit, offset)
}

// UpdateStatus transitions an appointment and mirrors the change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	if err := s.mirror(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// CompleteVideoConsult closes a video visit, recording its duration.
func (s *Service) CompleteVideoConsult(ctx context.Context, id uuid.UUID, durationMinutes int) (*Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Type != TypeVideo {
		return nil, fmt.Errorf("appointment %s is not a video visit", id)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration_minutes must be positive")
	}
	a.Status = StatusCompleted
	a.DurationMinutes = durationMinutes
	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	if err := s.mirror(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// CountUpcoming counts pending visits, used by the aggregate snapshot.
func (s *Service) CountUpcoming(ctx context.Context, patientID string) (int, error) {
	return s.appts.CountUpcoming(ctx, patientID, time.Now().UTC())
}

func (s *Service) mirror(ctx context.Context, a *Appointment) error {
	scheduled := a.AppointmentDate
	_, err := s.recorder.Record(ctx, a.PatientID, twin.SourceTelemed, twin.ConsultationPayload{
		AppointmentID:   a.ID.String(),
		Provider:        a.Provider,
		Mode:            a.Type,
		Status:          a.Status,
		ScheduledFor:    &scheduled,
		DurationMinutes: a.DurationMinutes,
	}, nil, []string{"patient", "primary_doctor"})
	if err != nil {
		return fmt.Errorf("mirroring consultation event: %w", err)
	}
	return nil
}
