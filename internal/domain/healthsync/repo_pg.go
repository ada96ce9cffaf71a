package healthsync

import (
	"context"
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

type deviceRepoPG struct{ pool *pgxpool.Pool }

func NewDeviceRepoPG(pool *pgxpool.Pool) Repository {
	return &deviceRepoPG{pool: pool}
}

func (r *deviceRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const deviceCols = `id, patient_id, device_type, status, last_sync_at, connected_at`

func scanDevice(row pgx.Row) (*Device, error) {
	var d Device
	err := row.Scan(&d.ID, &d.PatientID, &d.DeviceType, &d.Status, &d.LastSyncAt, &d.ConnectedAt)
	return &d, err
}

func (r *deviceRepoPG) CreateDevice(ctx context.Context, d *Device) error {
	d.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO health_device (id, patient_id, device_type, status)
		VALUES ($1,$2,$3,$4)
		RETURNING connected_at`,
		d.ID, d.PatientID, d.DeviceType, d.Status).Scan(&d.ConnectedAt)
}

func (r *deviceRepoPG) GetDevice(ctx context.Context, id uuid.UUID) (*Device, error) {
	return scanDevice(r.conn(ctx).QueryRow(ctx,
		`SELECT `+deviceCols+` FROM health_device WHERE id = $1`, id))
}

func (r *deviceRepoPG) ListDevices(ctx context.Context, patientID string) ([]*Device, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+deviceCols+` FROM health_device
		WHERE patient_id = $1 ORDER BY connected_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *deviceRepoPG) TouchLastSync(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE health_device SET last_sync_at = $2 WHERE id = $1`, id, at)
	return err
}

func (r *deviceRepoPG) ReadingsSince(ctx context.Context, patientID string, since time.Time) ([]*Reading, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT type, value, measured_at FROM vital
		WHERE patient_id = $1 AND measured_at >= $2
		ORDER BY measured_at ASC`, patientID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Reading{}
	for rows.Next() {
		var rd Reading
		if err := rows.Scan(&rd.Type, &rd.Value, &rd.RecordedAt); err != nil {
			return nil, err
		}
		items = append(items, &rd)
	}
	return items, rows.Err()
}
