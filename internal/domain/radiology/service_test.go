package radiology

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/llm"
)

// =========== Mocks ===========

type mockAnalysisRepo struct {
	store []*Analysis
}

func (m *mockAnalysisRepo) Create(_ context.Context, a *Analysis) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	m.store = append(m.store, a)
	return nil
}

func (m *mockAnalysisRepo) List(_ context.Context, patientID string, limit, offset int) ([]*Analysis, int, error) {
	var out []*Analysis
	for _, a := range m.store {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

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

// =========== Tests ===========

func TestAnalyze_GeneratedReport(t *testing.T) {
	repo := &mockAnalysisRepo{}
	rec := &mockRecorder{}
	gen := stubGen{out: "```json\n" +
		`{"findings":["no acute fracture"],"impression":"normal study",` +
		`"recommendations":["no follow-up needed"]}` + "\n```"}
	svc := NewService(repo, gen, rec, zerolog.Nop())

	a := &Analysis{PatientID: "patient-1", Modality: "xray", BodyPart: "wrist"}
	if err := svc.Analyze(context.Background(), a, "AP and lateral wrist"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Source != SourceGenerated {
		t.Errorf("source = %q, want generated", a.Source)
	}
	if a.Impression != "normal study" {
		t.Errorf("impression = %q", a.Impression)
	}
	if len(repo.store) != 1 {
		t.Error("analysis not persisted")
	}
	if rec.lastConf == nil || *rec.lastConf != 0.75 {
		t.Errorf("confidence = %v, want 0.75", rec.lastConf)
	}
	if len(rec.lastScope) != 3 || rec.lastScope[2] != "specialist:radiologist" {
		t.Errorf("scope = %v", rec.lastScope)
	}
	ip, ok := rec.recorded[0].(twin.ImagingPayload)
	if !ok {
		t.Fatalf("payload type = %T", rec.recorded[0])
	}
	if ip.Modality != "xray" || ip.Impression != "normal study" {
		t.Errorf("payload = %+v", ip)
	}
}

func TestAnalyze_FallbackOnModelFailure(t *testing.T) {
	repo := &mockAnalysisRepo{}
	svc := NewService(repo, stubGen{err: llm.ErrUnavailable}, &mockRecorder{}, zerolog.Nop())

	a := &Analysis{PatientID: "patient-1", Modality: "ct", BodyPart: "chest"}
	if err := svc.Analyze(context.Background(), a, "chest CT with contrast"); err != nil {
		t.Fatalf("model failure must not fail the analysis: %v", err)
	}
	if a.Source != SourceFallback {
		t.Errorf("source = %q, want fallback", a.Source)
	}
	if a.Impression == "" {
		t.Error("fallback must carry an impression")
	}
}

func TestAnalyze_FallbackOnMissingImpression(t *testing.T) {
	svc := NewService(&mockAnalysisRepo{}, stubGen{out: `{"findings":["x"]}`}, &mockRecorder{}, zerolog.Nop())
	a := &Analysis{PatientID: "patient-1", Modality: "mri"}
	if err := svc.Analyze(context.Background(), a, "study"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Source != SourceFallback {
		t.Errorf("source = %q, want fallback for empty impression", a.Source)
	}
}

func TestAnalyze_MissingModality(t *testing.T) {
	svc := NewService(&mockAnalysisRepo{}, llm.Noop{}, &mockRecorder{}, zerolog.Nop())
	if err := svc.Analyze(context.Background(), &Analysis{PatientID: "patient-1"}, "s"); err == nil {
		t.Fatal("expected error for missing modality")
	}
}
