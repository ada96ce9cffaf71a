package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type notifyRepoPG struct{ pool *pgxpool.Pool }

func NewNotifyRepoPG(pool *pgxpool.Pool) Repository {
	return &notifyRepoPG{pool: pool}
}

func (r *notifyRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const notificationCols = `id, patient_id, type, title, body, read, created_at`

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.PatientID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt)
	return &n, err
}

func (r *notifyRepoPG) Create(ctx context.Context, n *Notification) error {
	n.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO notification (id, patient_id, type, title, body)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING read, created_at`,
		n.ID, n.PatientID, n.Type, n.Title, n.Body).Scan(&n.Read, &n.CreatedAt)
}

func (r *notifyRepoPG) List(ctx context.Context, patientID string, unreadOnly bool, limit, offset int) ([]*Notification, int, error) {
	where := ` WHERE patient_id = $1`
	args := []interface{}{patientID}
	idx := 2
	if unreadOnly {
		where += ` AND read = FALSE`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM notification`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + notificationCols + ` FROM notification` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []*Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *notifyRepoPG) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE notification SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notifyRepoPG) MarkAllRead(ctx context.Context, patientID string) (int, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE notification SET read = TRUE
		WHERE patient_id = $1 AND read = FALSE`, patientID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *notifyRepoPG) CountUnread(ctx context.Context, patientID string) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM notification
		WHERE patient_id = $1 AND read = FALSE`, patientID).Scan(&n)
	return n, err
}
