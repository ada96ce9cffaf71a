package symptoms

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/llm"
)

// =========== Mocks ===========

type mockRecorder struct {
	recorded  []twin.Payload
	lastConf  *float64
	lastScope []string
}

func (m *mockRecorder) Record(_ context.Context, patientID string, _ twin.SourceModule, payload twin.Payload, confidence *float64, scope []string) (*twin.Event, error) {
	m.recorded = append(m.recorded, payload)
	m.lastConf = confidence
	m.lastScope = scope
	return &twin.Event{EventID: uuid.New().String(), PatientID: patientID}, nil
}

type stubGen struct {
	out string
	err error
}

func (s stubGen) Generate(context.Context, string, string) (string, error) {
	return s.out, s.err
}

func newTestService(gen llm.Client, rec *mockRecorder) *Service {
	return NewService(gen, rec, nil, zerolog.Nop())
}

// =========== Tests ===========

func TestAnalyze_GeneratedResult(t *testing.T) {
	rec := &mockRecorder{}
	gen := stubGen{out: "```json\n" +
		`{"triage_level":"urgent","possible_conditions":["migraine"],` +
		`"recommendations":["hydrate"],"follow_up_questions":["any aura?"]}` +
		"\n```"}
	svc := newTestService(gen, rec)

	a, err := svc.Analyze(context.Background(), "patient-1", []string{"headache", "nausea"}, "two days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Source != SourceGenerated {
		t.Errorf("source = %q, want generated", a.Source)
	}
	if a.TriageLevel != TriageUrgent {
		t.Errorf("triage = %q, want urgent", a.TriageLevel)
	}
	if a.Disclaimer == "" {
		t.Error("disclaimer must always be attached")
	}
	if rec.lastConf == nil || *rec.lastConf != 0.7 {
		t.Errorf("confidence = %v, want 0.7", rec.lastConf)
	}
	if len(rec.lastScope) != 2 || rec.lastScope[1] != "primary_doctor" {
		t.Errorf("scope = %v", rec.lastScope)
	}
}

func TestAnalyze_FallbackOnModelFailure(t *testing.T) {
	rec := &mockRecorder{}
	svc := newTestService(stubGen{err: llm.ErrUnavailable}, rec)

	a, err := svc.Analyze(context.Background(), "patient-1", []string{"sore throat"}, "")
	if err != nil {
		t.Fatalf("model failure must not fail the session: %v", err)
	}
	if a.Source != SourceFallback {
		t.Errorf("source = %q, want fallback", a.Source)
	}
	if a.TriageLevel != TriageStandard {
		t.Errorf("triage = %q, want standard", a.TriageLevel)
	}
	if len(a.Recommendations) == 0 {
		t.Error("fallback must carry recommendations")
	}
	if len(rec.recorded) != 1 {
		t.Errorf("recorded %d events, want 1", len(rec.recorded))
	}
}

func TestAnalyze_FallbackOnUnusableOutput(t *testing.T) {
	svc := newTestService(stubGen{out: `{"triage_level":"panic"}`}, &mockRecorder{})
	a, err := svc.Analyze(context.Background(), "patient-1", []string{"cough"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Source != SourceFallback {
		t.Errorf("source = %q, want fallback for unknown triage level", a.Source)
	}
}

func TestAnalyze_RedFlagEscalates(t *testing.T) {
	svc := newTestService(stubGen{err: llm.ErrUnavailable}, &mockRecorder{})
	a, err := svc.Analyze(context.Background(), "patient-1", []string{"crushing Chest Pain"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.TriageLevel != TriageEmergency {
		t.Errorf("triage = %q, want emergency for red-flag symptom", a.TriageLevel)
	}
}

func TestAnalyze_NoSymptoms(t *testing.T) {
	svc := newTestService(llm.Noop{}, &mockRecorder{})
	if _, err := svc.Analyze(context.Background(), "patient-1", nil, ""); err == nil {
		t.Fatal("expected error for empty symptom list")
	}
}
