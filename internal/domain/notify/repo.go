package notify

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for in-app notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, patientID string, unreadOnly bool, limit, offset int) ([]*Notification, int, error)
	// MarkRead flags one notification; pgx.ErrNoRows when it does not exist.
	MarkRead(ctx context.Context, id uuid.UUID) error
	// MarkAllRead flags every unread notification for the patient and
	// returns how many were updated.
	MarkAllRead(ctx context.Context, patientID string) (int, error)
	CountUnread(ctx context.Context, patientID string) (int, error)
}
