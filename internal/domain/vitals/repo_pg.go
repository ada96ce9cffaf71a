package vitals

import (
	"context"
	"errors"
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

type vitalRepoPG struct{ pool *pgxpool.Pool }

func NewVitalRepoPG(pool *pgxpool.Pool) Repository {
	return &vitalRepoPG{pool: pool}
}

func (r *vitalRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const vitalCols = `id, patient_id, type, value, unit, source, measured_at, created_at`

func scanVital(row pgx.Row) (*Vital, error) {
	var v Vital
	err := row.Scan(&v.ID, &v.PatientID, &v.Type, &v.Value, &v.Unit,
		&v.Source, &v.MeasuredAt, &v.CreatedAt)
	return &v, err
}

func (r *vitalRepoPG) Create(ctx context.Context, v *Vital) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO vital (id, patient_id, type, value, unit, source, measured_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		v.ID, v.PatientID, v.Type, v.Value, v.Unit, v.Source, v.MeasuredAt)
	return err
}

func (r *vitalRepoPG) List(ctx context.Context, patientID, vitalType string, limit, offset int) ([]*Vital, int, error) {
	where := ` WHERE patient_id = $1`
	args := []interface{}{patientID}
	idx := 2
	if vitalType != "" {
		where += fmt.Sprintf(` AND type = $%d`, idx)
		args = append(args, vitalType)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vital`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vitalCols + ` FROM vital` + where +
		fmt.Sprintf(` ORDER BY measured_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []*Vital{}
	for rows.Next() {
		v, err := scanVital(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *vitalRepoPG) LatestByType(ctx context.Context, patientID, vitalType string) (*Vital, error) {
	v, err := scanVital(r.conn(ctx).QueryRow(ctx, `
		SELECT `+vitalCols+` FROM vital
		WHERE patient_id = $1 AND type = $2
		ORDER BY measured_at DESC LIMIT 1`, patientID, vitalType))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
