package labs

import (
	"context"
	"fmt"
	"time"

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

type labRepoPG struct{ pool *pgxpool.Pool }

func NewLabRepoPG(pool *pgxpool.Pool) Repository {
	return &labRepoPG{pool: pool}
}

func (r *labRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const labCols = `id, patient_id, test_name, value, unit, reference_range,
	status, ordered_by, created_at`

func scanLab(row pgx.Row) (*LabResult, error) {
	var l LabResult
	err := row.Scan(&l.ID, &l.PatientID, &l.TestName, &l.Value, &l.Unit,
		&l.ReferenceRange, &l.Status, &l.OrderedBy, &l.CreatedAt)
	return &l, err
}

func (r *labRepoPG) Create(ctx context.Context, l *LabResult) error {
	l.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO lab_result (id, patient_id, test_name, value, unit,
			reference_range, status, ordered_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		l.ID, l.PatientID, l.TestName, l.Value, l.Unit,
		l.ReferenceRange, l.Status, l.OrderedBy).Scan(&l.CreatedAt)
}

func (r *labRepoPG) List(ctx context.Context, patientID, testName string, limit, offset int) ([]*LabResult, int, error) {
	where := ` WHERE patient_id = $1`
	args := []interface{}{patientID}
	idx := 2
	if testName != "" {
		where += fmt.Sprintf(` AND test_name ILIKE $%d`, idx)
		args = append(args, "%"+testName+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM lab_result`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + labCols + ` FROM lab_result` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []*LabResult{}
	for rows.Next() {
		l, err := scanLab(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, l)
	}
	return items, total, rows.Err()
}

func (r *labRepoPG) Trend(ctx context.Context, patientID, testName string) ([]*LabResult, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+labCols+` FROM lab_result
		WHERE patient_id = $1 AND test_name = $2
		ORDER BY created_at ASC`, patientID, testName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*LabResult{}
	for rows.Next() {
		l, err := scanLab(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

func (r *labRepoPG) CountSince(ctx context.Context, patientID string, since time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM lab_result
		WHERE patient_id = $1 AND created_at >= $2`, patientID, since).Scan(&n)
	return n, err
}
