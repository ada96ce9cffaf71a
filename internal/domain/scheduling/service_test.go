package scheduling

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
)

// =========== Mocks ===========

type mockApptRepo struct {
	store map[uuid.UUID]*Appointment
}

func newMockApptRepo() *mockApptRepo {
	return &mockApptRepo{store: make(map[uuid.UUID]*Appointment)}
}

func (m *mockApptRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.store[a.ID] = a
	return nil
}

func (m *mockApptRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockApptRepo) List(_ context.Context, patientID, status string, from *time.Time, limit, offset int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.store {
		if a.PatientID != patientID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		if from != nil && a.AppointmentDate.Before(*from) {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *mockApptRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.store[a.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[a.ID] = a
	return nil
}

func (m *mockApptRepo) CountUpcoming(_ context.Context, patientID string, now time.Time) (int, error) {
	n := 0
	for _, a := range m.store {
		if a.PatientID == patientID && !a.AppointmentDate.Before(now) &&
			(a.Status == StatusScheduled || a.Status == StatusConfirmed) {
			n++
		}
	}
	return n, nil
}

type mockRecorder struct {
	recorded []twin.Payload
}

func (m *mockRecorder) Record(_ context.Context, patientID string, _ twin.SourceModule, payload twin.Payload, _ *float64, _ []string) (*twin.Event, error) {
	m.recorded = append(m.recorded, payload)
	return &twin.Event{EventID: uuid.New().String(), PatientID: patientID}, nil
}

// =========== Tests ===========

func TestCreate_VideoGetsMeetingLink(t *testing.T) {
	rec := &mockRecorder{}
	svc := NewService(newMockApptRepo(), rec)

	a := &Appointment{
		PatientID: "patient-1", Provider: "dr-lee", Type: TypeVideo,
		AppointmentDate: time.Now().UTC().Add(48 * time.Hour),
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("status = %q, want scheduled", a.Status)
	}
	if !strings.HasPrefix(a.MeetingLink, "https://meet.medinexus.health/") {
		t.Errorf("meeting link = %q", a.MeetingLink)
	}
	cp, ok := rec.recorded[0].(twin.ConsultationPayload)
	if !ok {
		t.Fatalf("payload type = %T", rec.recorded[0])
	}
	if cp.Mode != TypeVideo || cp.Status != StatusScheduled {
		t.Errorf("payload = %+v", cp)
	}
}

func TestCreate_InPersonHasNoLink(t *testing.T) {
	svc := NewService(newMockApptRepo(), &mockRecorder{})
	a := &Appointment{
		PatientID: "patient-1", Provider: "dr-lee",
		AppointmentDate: time.Now().UTC().Add(time.Hour),
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Type != TypeInPerson {
		t.Errorf("type = %q, want in_person default", a.Type)
	}
	if a.MeetingLink != "" {
		t.Errorf("meeting link = %q, want none", a.MeetingLink)
	}
}

func TestCreate_MissingDate(t *testing.T) {
	svc := NewService(newMockApptRepo(), &mockRecorder{})
	err := svc.Create(context.Background(), &Appointment{PatientID: "patient-1", Provider: "dr-lee"})
	if err == nil {
		t.Fatal("expected error for missing appointment_date")
	}
}

func TestCompleteVideoConsult(t *testing.T) {
	repo := newMockApptRepo()
	rec := &mockRecorder{}
	svc := NewService(repo, rec)

	a := &Appointment{
		PatientID: "patient-1", Provider: "dr-lee", Type: TypeVideo,
		AppointmentDate: time.Now().UTC().Add(time.Hour),
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done, err := svc.CompleteVideoConsult(context.Background(), a.ID, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done.Status != StatusCompleted || done.DurationMinutes != 25 {
		t.Errorf("appointment = %+v", done)
	}
	cp := rec.recorded[len(rec.recorded)-1].(twin.ConsultationPayload)
	if cp.Status != StatusCompleted || cp.DurationMinutes != 25 {
		t.Errorf("payload = %+v", cp)
	}
}

func TestCompleteVideoConsult_RejectsInPerson(t *testing.T) {
	repo := newMockApptRepo()
	svc := NewService(repo, &mockRecorder{})

	a := &Appointment{
		PatientID: "patient-1", Provider: "dr-lee",
		AppointmentDate: time.Now().UTC().Add(time.Hour),
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CompleteVideoConsult(context.Background(), a.ID, 25); err == nil {
		t.Fatal("expected error completing an in-person visit as video")
	}
}

func TestCountUpcoming_ExcludesPastAndClosed(t *testing.T) {
	repo := newMockApptRepo()
	svc := NewService(repo, &mockRecorder{})

	now := time.Now().UTC()
	add := func(date time.Time, status string) {
		id := uuid.New()
		repo.store[id] = &Appointment{
			ID: id, PatientID: "patient-1", Provider: "dr-lee",
			Status: status, AppointmentDate: date,
		}
	}
	add(now.Add(24*time.Hour), StatusScheduled)
	add(now.Add(48*time.Hour), StatusConfirmed)
	add(now.Add(72*time.Hour), StatusCancelled)
	add(now.Add(-24*time.Hour), StatusScheduled)

	n, err := svc.CountUpcoming(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("upcoming = %d, want 2", n)
	}
}
