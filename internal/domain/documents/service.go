package documents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/llm"
)

const summarySystemPrompt = "You are a clinical documentation assistant. " +
	"Summarize the document in two plain sentences for a patient-facing record. " +
	"Do not add information that is not in the document."

// Service provides business logic for the document hub.
type Service struct {
	docs     Repository
	recorder twin.Recorder
	gen      llm.Client
	log      zerolog.Logger
}

func NewService(docs Repository, recorder twin.Recorder, gen llm.Client, log zerolog.Logger) *Service {
	return &Service{docs: docs, recorder: recorder, gen: gen, log: log}
}

// Create files a document, attempts a best-effort generated summary, and
// mirrors the filing into the patient's event log. A summary failure never
// blocks filing.
func (s *Service) Create(ctx context.Context, d *Document) error {
	if d.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if d.Title == "" {
		return fmt.Errorf("title is required")
	}

	if d.Summary == "" && d.Content != "" {
		summary, err := s.gen.Generate(ctx, summarySystemPrompt, d.Content)
		if err != nil {
			s.log.Debug().Err(err).Msg("document summary generation skipped")
		} else {
			d.Summary = llm.StripFence(summary)
		}
	}

	if err := s.docs.Create(ctx, d); err != nil {
		return err
	}

	_, err := s.recorder.Record(ctx, d.PatientID, twin.SourceDocHub, twin.DocumentPayload{
		DocumentID:   d.ID.String(),
		DocumentType: d.Type,
		Title:        d.Title,
		Summary:      d.Summary,
	}, nil, nil)
	if err != nil {
		return fmt.Errorf("mirroring document event: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.docs.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, patientID, docType string, limit, offset int) ([]*Document, int, error) {
	if patientID == "" {
		return nil, 0, fmt.Errorf("patient_id is required")
	}
	return s.docs.List(ctx, patientID, docType, limit, offset)
}

// Delete removes the document row. The filing event in the log is immutable
// and stays.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.docs.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context, patientID string) (int, error) {
	return s.docs.Count(ctx, patientID)
}
