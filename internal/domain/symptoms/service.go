package symptoms

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/llm"
)

var analysisConfidence = 0.7

const analysisSystemPrompt = "You are a clinical triage assistant. Given patient " +
	"symptoms, respond with JSON only, no prose, matching this shape: " +
	`{"triage_level":"emergency|urgent|standard|routine",` +
	`"possible_conditions":["..."],"recommendations":["..."],` +
	`"follow_up_questions":["..."]}`

// redFlagSymptoms force an emergency triage in the deterministic fallback.
var redFlagSymptoms = []string{
	"chest pain", "difficulty breathing", "shortness of breath",
	"severe bleeding", "loss of consciousness", "stroke", "seizure",
}

// Service runs symptom-checker sessions and mirrors them into the event log.
type Service struct {
	gen      llm.Client
	recorder twin.Recorder
	twin     *twin.Service
	log      zerolog.Logger
}

func NewService(gen llm.Client, recorder twin.Recorder, twinSvc *twin.Service, log zerolog.Logger) *Service {
	return &Service{gen: gen, recorder: recorder, twin: twinSvc, log: log}
}

type modelAnalysis struct {
	TriageLevel        string   `json:"triage_level"`
	PossibleConditions []string `json:"possible_conditions"`
	Recommendations    []string `json:"recommendations"`
	FollowUpQuestions  []string `json:"follow_up_questions"`
}

// Analyze triages the reported symptoms, preferring the model and falling
// back to deterministic rules on any failure. The session is recorded as one
// symptom event either way.
func (s *Service) Analyze(ctx context.Context, patientID string, symptomList []string, notes string) (*Analysis, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if len(symptomList) == 0 {
		return nil, fmt.Errorf("at least one symptom is required")
	}

	analysis := s.generate(ctx, symptomList, notes)
	analysis.Symptoms = symptomList
	analysis.Disclaimer = Disclaimer

	_, err := s.recorder.Record(ctx, patientID, twin.SourceSymptomAI, twin.SymptomPayload{
		Symptoms:           symptomList,
		TriageLevel:        analysis.TriageLevel,
		PossibleConditions: analysis.PossibleConditions,
		Recommendations:    analysis.Recommendations,
	}, &analysisConfidence, []string{"patient", "primary_doctor"})
	if err != nil {
		return nil, fmt.Errorf("mirroring symptom event: %w", err)
	}
	return analysis, nil
}

func (s *Service) generate(ctx context.Context, symptomList []string, notes string) *Analysis {
	prompt := "Symptoms: " + strings.Join(symptomList, ", ")
	if notes != "" {
		prompt += "\nAdditional notes: " + notes
	}

	out, err := s.gen.Generate(ctx, analysisSystemPrompt, prompt)
	if err != nil {
		s.log.Debug().Err(err).Msg("symptom model unavailable, using fallback")
		return fallbackAnalysis(symptomList)
	}

	var parsed modelAnalysis
	if err := llm.DecodeJSON(out, &parsed); err != nil || !validTriageLevels[parsed.TriageLevel] {
		s.log.Warn().Err(err).Str("triage_level", parsed.TriageLevel).
			Msg("unusable symptom model output, using fallback")
		return fallbackAnalysis(symptomList)
	}

	return &Analysis{
		TriageLevel:        parsed.TriageLevel,
		PossibleConditions: parsed.PossibleConditions,
		Recommendations:    parsed.Recommendations,
		FollowUpQuestions:  parsed.FollowUpQuestions,
		Source:             SourceGenerated,
	}
}

// fallbackAnalysis is the deterministic rule set used when the model is
// unavailable or returns unusable output.
func fallbackAnalysis(symptomList []string) *Analysis {
	triage := TriageStandard
	for _, sym := range symptomList {
		lower := strings.ToLower(sym)
		for _, flag := range redFlagSymptoms {
			if strings.Contains(lower, flag) {
				triage = TriageEmergency
			}
		}
	}

	recs := []string{
		"Monitor your symptoms and note any changes.",
		"Stay hydrated and rest.",
		"Book an appointment if symptoms persist beyond 48 hours.",
	}
	if triage == TriageEmergency {
		recs = []string{"Seek emergency medical care immediately."}
	}

	return &Analysis{
		TriageLevel:     triage,
		Recommendations: recs,
		Source:          SourceFallback,
	}
}

// History returns past symptom sessions from the patient's event log,
// newest first.
func (s *Service) History(ctx context.Context, patientID string, limit int) ([]*twin.Event, error) {
	return s.twin.Query(ctx, patientID, twin.Filter{
		EventType: twin.EventSymptom,
		Limit:     limit,
	})
}
