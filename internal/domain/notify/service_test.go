package notify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// =========== Mocks ===========

type mockNotifyRepo struct {
	store []*Notification
}

func (m *mockNotifyRepo) Create(_ context.Context, n *Notification) error {
	n.ID = uuid.New()
	m.store = append(m.store, n)
	return nil
}

func (m *mockNotifyRepo) List(_ context.Context, patientID string, unreadOnly bool, limit, offset int) ([]*Notification, int, error) {
	var out []*Notification
	for _, n := range m.store {
		if n.PatientID != patientID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func (m *mockNotifyRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	for _, n := range m.store {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockNotifyRepo) MarkAllRead(_ context.Context, patientID string) (int, error) {
	count := 0
	for _, n := range m.store {
		if n.PatientID == patientID && !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

func (m *mockNotifyRepo) CountUnread(_ context.Context, patientID string) (int, error) {
	count := 0
	for _, n := range m.store {
		if n.PatientID == patientID && !n.Read {
			count++
		}
	}
	return count, nil
}

// =========== Tests ===========

func seed(t *testing.T, svc *Service, patientID string, titles ...string) {
	t.Helper()
	for _, title := range titles {
		if err := svc.Create(context.Background(), &Notification{PatientID: patientID, Title: title}); err != nil {
			t.Fatalf("seeding notification: %v", err)
		}
	}
}

func TestCreate_DefaultsToInfo(t *testing.T) {
	repo := &mockNotifyRepo{}
	svc := NewService(repo, zerolog.Nop())

	n := &Notification{PatientID: "patient-1", Title: "Lab results ready"}
	if err := svc.Create(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Type != TypeInfo {
		t.Errorf("type = %q, want info default", n.Type)
	}
}

func TestCreate_MissingTitle(t *testing.T) {
	svc := NewService(&mockNotifyRepo{}, zerolog.Nop())
	err := svc.Create(context.Background(), &Notification{PatientID: "patient-1"})
	if err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestCreate_UnknownType(t *testing.T) {
	svc := NewService(&mockNotifyRepo{}, zerolog.Nop())
	err := svc.Create(context.Background(), &Notification{
		PatientID: "patient-1", Title: "x", Type: "carrier_pigeon",
	})
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestMarkAllRead_CountsUpdates(t *testing.T) {
	repo := &mockNotifyRepo{}
	svc := NewService(repo, zerolog.Nop())
	seed(t, svc, "patient-1", "a", "b", "c")
	seed(t, svc, "patient-2", "other")

	if err := svc.MarkRead(context.Background(), repo.store[0].ID); err != nil {
		t.Fatalf("marking read: %v", err)
	}
	updated, err := svc.MarkAllRead(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2 remaining unread", updated)
	}
	unread, err := svc.UnreadCount(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread = %d, want 0", unread)
	}
	other, _ := svc.UnreadCount(context.Background(), "patient-2")
	if other != 1 {
		t.Errorf("other patient unread = %d, want untouched 1", other)
	}
}

func TestMarkRead_NotFound(t *testing.T) {
	svc := NewService(&mockNotifyRepo{}, zerolog.Nop())
	if err := svc.MarkRead(context.Background(), uuid.New()); err != pgx.ErrNoRows {
		t.Errorf("err = %v, want pgx.ErrNoRows", err)
	}
}

func TestList_UnreadOnly(t *testing.T) {
	repo := &mockNotifyRepo{}
	svc := NewService(repo, zerolog.Nop())
	seed(t, svc, "patient-1", "a", "b")
	svc.MarkRead(context.Background(), repo.store[0].ID)

	items, total, err := svc.List(context.Background(), "patient-1", true, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Title != "b" {
		t.Errorf("got %d items (total %d), want only the unread one", len(items), total)
	}
}
