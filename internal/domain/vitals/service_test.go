package vitals

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
)

// =========== Mocks ===========

type mockVitalRepo struct {
	store []*Vital
}

func (m *mockVitalRepo) Create(_ context.Context, v *Vital) error {
	v.ID = uuid.New()
	m.store = append(m.store, v)
	return nil
}

func (m *mockVitalRepo) List(_ context.Context, patientID, vitalType string, limit, offset int) ([]*Vital, int, error) {
	var out []*Vital
	for _, v := range m.store {
		if v.PatientID == patientID && (vitalType == "" || v.Type == vitalType) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MeasuredAt.After(out[j].MeasuredAt) })
	return out, len(out), nil
}

func (m *mockVitalRepo) LatestByType(_ context.Context, patientID, vitalType string) (*Vital, error) {
	var latest *Vital
	for _, v := range m.store {
		if v.PatientID != patientID || v.Type != vitalType {
			continue
		}
		if latest == nil || v.MeasuredAt.After(latest.MeasuredAt) {
			latest = v
		}
	}
	return latest, nil
}

type mockRecorder struct {
	recorded []recordedCall
}

type recordedCall struct {
	patientID  string
	source     twin.SourceModule
	payload    twin.Payload
	confidence *float64
	scope      []string
}

func (m *mockRecorder) Record(_ context.Context, patientID string, source twin.SourceModule, payload twin.Payload, confidence *float64, scope []string) (*twin.Event, error) {
	m.recorded = append(m.recorded, recordedCall{patientID, source, payload, confidence, scope})
	return &twin.Event{EventID: uuid.New().String(), PatientID: patientID}, nil
}

// =========== Tests ===========

func TestRecord_Success(t *testing.T) {
	repo := &mockVitalRepo{}
	rec := &mockRecorder{}
	svc := NewService(repo, rec, zerolog.Nop())

	v := &Vital{PatientID: "patient-1", Type: "heart_rate", Value: "72", Unit: "bpm"}
	if err := svc.Record(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Source != SourceManualEntry {
		t.Errorf("source = %q, want manual default", v.Source)
	}
	if v.MeasuredAt.IsZero() {
		t.Error("expected measured_at to default to now")
	}
	if len(rec.recorded) != 1 {
		t.Fatalf("recorded %d events, want exactly 1", len(rec.recorded))
	}
	call := rec.recorded[0]
	if call.source != twin.SourceManual {
		t.Errorf("event source = %q, want manual", call.source)
	}
	vp, ok := call.payload.(twin.VitalPayload)
	if !ok {
		t.Fatalf("payload type = %T", call.payload)
	}
	if vp.VitalType != "heart_rate" || vp.Value != "72" {
		t.Errorf("payload = %+v", vp)
	}
	if call.confidence != nil {
		t.Error("manual entry must carry no confidence")
	}
}

func TestRecord_DeviceSourceUsesHealthSync(t *testing.T) {
	rec := &mockRecorder{}
	svc := NewService(&mockVitalRepo{}, rec, zerolog.Nop())

	v := &Vital{PatientID: "patient-1", Type: "heart_rate", Value: "68", Source: "fitbit"}
	if err := svc.Record(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.recorded[0].source != twin.SourceHealthSync {
		t.Errorf("event source = %q, want health_sync", rec.recorded[0].source)
	}
}

func TestRecord_MissingType(t *testing.T) {
	svc := NewService(&mockVitalRepo{}, &mockRecorder{}, zerolog.Nop())
	err := svc.Record(context.Background(), &Vital{PatientID: "patient-1", Value: "72"})
	if err == nil {
		t.Fatal("expected error for missing type")
	}
}

func TestRecord_MissingValue(t *testing.T) {
	svc := NewService(&mockVitalRepo{}, &mockRecorder{}, zerolog.Nop())
	err := svc.Record(context.Background(), &Vital{PatientID: "patient-1", Type: "weight"})
	if err == nil {
		t.Fatal("expected error for missing value")
	}
}

func TestLatest_PicksNewestPerType(t *testing.T) {
	repo := &mockVitalRepo{}
	svc := NewService(repo, &mockRecorder{}, zerolog.Nop())

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	repo.store = []*Vital{
		{PatientID: "patient-1", Type: "heart_rate", Value: "70", MeasuredAt: t1},
		{PatientID: "patient-1", Type: "heart_rate", Value: "75", MeasuredAt: t2},
		{PatientID: "patient-1", Type: "weight", Value: "80", MeasuredAt: t1},
		{PatientID: "patient-2", Type: "heart_rate", Value: "99", MeasuredAt: t2},
	}

	latest, err := svc.Latest(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest["heart_rate"].Value != "75" {
		t.Errorf("latest heart_rate = %q, want the 11:00 reading", latest["heart_rate"].Value)
	}
	if latest["weight"].Value != "80" {
		t.Errorf("latest weight = %q", latest["weight"].Value)
	}
	if _, ok := latest["temperature"]; ok {
		t.Error("types with no measurements must be omitted")
	}
}
