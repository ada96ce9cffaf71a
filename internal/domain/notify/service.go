package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service manages in-app notification records.
type Service struct {
	notifications Repository
	log           zerolog.Logger
}

func NewService(notifications Repository, log zerolog.Logger) *Service {
	return &Service{notifications: notifications, log: log}
}

func (s *Service) Create(ctx context.Context, n *Notification) error {
	if n.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if !validTypes[n.Type] {
		return fmt.Errorf("unknown notification type %q", n.Type)
	}
	return s.notifications.Create(ctx, n)
}

func (s *Service) List(ctx context.Context, patientID string, unreadOnly bool, limit, offset int) ([]*Notification, int, error) {
	if patientID == "" {
		return nil, 0, fmt.Errorf("patient_id is required")
	}
	return s.notifications.List(ctx, patientID, unreadOnly, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.notifications.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context, patientID string) (int, error) {
	if patientID == "" {
		return 0, fmt.Errorf("patient_id is required")
	}
	return s.notifications.MarkAllRead(ctx, patientID)
}

func (s *Service) UnreadCount(ctx context.Context, patientID string) (int, error) {
	if patientID == "" {
		return 0, fmt.Errorf("patient_id is required")
	}
	return s.notifications.CountUnread(ctx, patientID)
}
