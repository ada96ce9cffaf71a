package twin

import (
	"context"
	"fmt"

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

type eventRepoPG struct{ pool *pgxpool.Pool }

// NewEventRepoPG creates the Postgres-backed event log repository.
func NewEventRepoPG(pool *pgxpool.Pool) Repository {
	return &eventRepoPG{pool: pool}
}

func (r *eventRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const eventCols = `event_id, patient_id, timestamp, seq, event_type,
	source_module, data_payload, clinical_confidence, access_scope`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.EventID, &e.PatientID, &e.Timestamp, &e.Seq, &e.EventType,
		&e.SourceModule, &e.DataPayload, &e.ClinicalConfidence, &e.AccessScope)
	return &e, err
}

func (r *eventRepoPG) Insert(ctx context.Context, e *Event) error {
	// timestamp and seq come from the table defaults so that append order is
	// decided by the store, never by callers.
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO twin_event (event_id, patient_id, event_type, source_module,
			data_payload, clinical_confidence, access_scope)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING timestamp, seq`,
		e.EventID, e.PatientID, e.EventType, e.SourceModule,
		e.DataPayload, e.ClinicalConfidence, e.AccessScope)
	return row.Scan(&e.Timestamp, &e.Seq)
}

func (r *eventRepoPG) List(ctx context.Context, patientID string, f Filter) ([]*Event, error) {
	return r.list(ctx, patientID, nil, f)
}

func (r *eventRepoPG) ListVisible(ctx context.Context, patientID string, scopes []string, f Filter) ([]*Event, error) {
	if len(scopes) == 0 {
		return []*Event{}, nil
	}
	return r.list(ctx, patientID, scopes, f)
}

func (r *eventRepoPG) list(ctx context.Context, patientID string, scopes []string, f Filter) ([]*Event, error) {
	query := `SELECT ` + eventCols + ` FROM twin_event WHERE patient_id = $1`
	args := []interface{}{patientID}
	idx := 2

	if f.EventType != "" {
		query += fmt.Sprintf(` AND event_type = $%d`, idx)
		args = append(args, f.EventType)
		idx++
	}
	if f.SourceModule != "" {
		query += fmt.Sprintf(` AND source_module = $%d`, idx)
		args = append(args, f.SourceModule)
		idx++
	}
	if f.Start != nil {
		query += fmt.Sprintf(` AND timestamp >= $%d`, idx)
		args = append(args, *f.Start)
		idx++
	}
	if f.End != nil {
		query += fmt.Sprintf(` AND timestamp <= $%d`, idx)
		args = append(args, *f.End)
		idx++
	}
	if scopes != nil {
		// Scope visibility is part of the WHERE clause so LIMIT bounds
		// visible events rather than scanned rows.
		query += fmt.Sprintf(` AND access_scope && $%d`, idx)
		args = append(args, scopes)
		idx++
	}

	query += fmt.Sprintf(` ORDER BY timestamp DESC, seq DESC LIMIT $%d`, idx)
	args = append(args, f.Limit)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
