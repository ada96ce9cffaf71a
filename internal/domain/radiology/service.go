package radiology

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/llm"
)

var analysisConfidence = 0.75

const analysisSystemPrompt = "You are a radiology reporting assistant. Given an " +
	"imaging study description, respond with JSON only, no prose, matching this " +
	`shape: {"findings":["..."],"impression":"...","recommendations":["..."]}`

// Service interprets imaging studies and mirrors results into the event log.
type Service struct {
	analyses Repository
	gen      llm.Client
	recorder twin.Recorder
	log      zerolog.Logger
}

func NewService(analyses Repository, gen llm.Client, recorder twin.Recorder, log zerolog.Logger) *Service {
	return &Service{analyses: analyses, gen: gen, recorder: recorder, log: log}
}

type modelReport struct {
	Findings        []string `json:"findings"`
	Impression      string   `json:"impression"`
	Recommendations []string `json:"recommendations"`
}

// Analyze interprets one study, preferring the model with a deterministic
// fallback, persists the analysis, and records an imaging event visible to
// the patient, their primary doctor, and radiology specialists.
func (s *Service) Analyze(ctx context.Context, a *Analysis, studyDescription string) error {
	if a.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if a.Modality == "" {
		return fmt.Errorf("modality is required")
	}

	prompt := fmt.Sprintf("Modality: %s\nBody part: %s\nClinical context: %s\nStudy: %s",
		a.Modality, a.BodyPart, a.ClinicalContext, studyDescription)

	out, err := s.gen.Generate(ctx, analysisSystemPrompt, prompt)
	var report modelReport
	if err != nil || llm.DecodeJSON(out, &report) != nil || report.Impression == "" {
		if err != nil {
			s.log.Debug().Err(err).Msg("radiology model unavailable, using fallback")
		} else {
			s.log.Warn().Msg("unusable radiology model output, using fallback")
		}
		report = fallbackReport(a.Modality, a.BodyPart)
		a.Source = SourceFallback
	} else {
		a.Source = SourceGenerated
	}

	a.Findings = report.Findings
	a.Impression = report.Impression
	a.Recommendations = report.Recommendations

	if err := s.analyses.Create(ctx, a); err != nil {
		return err
	}

	_, err = s.recorder.Record(ctx, a.PatientID, twin.SourceRadiologyAI, twin.ImagingPayload{
		Modality:        a.Modality,
		BodyPart:        a.BodyPart,
		Findings:        a.Findings,
		Impression:      a.Impression,
		Recommendations: a.Recommendations,
	}, &analysisConfidence, []string{"patient", "primary_doctor", "specialist:radiologist"})
	if err != nil {
		return fmt.Errorf("mirroring imaging event: %w", err)
	}
	return nil
}

func fallbackReport(modality, bodyPart string) modelReport {
	region := bodyPart
	if region == "" {
		region = "the studied region"
	}
	return modelReport{
		Findings: []string{
			fmt.Sprintf("Automated interpretation of the %s study is unavailable.", modality),
		},
		Impression: fmt.Sprintf("The %s study of %s requires manual radiologist review.", modality, region),
		Recommendations: []string{
			"Route the study to the radiology reading queue.",
		},
	}
}

func (s *Service) List(ctx context.Context, patientID string, limit, offset int) ([]*Analysis, int, error) {
	if patientID == "" {
		return nil, 0, fmt.Errorf("patient_id is required")
	}
	return s.analyses.List(ctx, patientID, limit, offset)
}
