package healthsync

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/vitals"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/db"
)

// Device-reported measurements carry moderate confidence.
var syncConfidence = 0.9

// Service manages connected devices and ingests their measurement batches.
type Service struct {
	devices  Repository
	vitals   vitals.Repository
	recorder twin.Recorder
	tx       db.Beginner
	log      zerolog.Logger
}

func NewService(devices Repository, vitalRepo vitals.Repository, recorder twin.Recorder, tx db.Beginner, log zerolog.Logger) *Service {
	return &Service{devices: devices, vitals: vitalRepo, recorder: recorder, tx: tx, log: log}
}

// atomic runs fn in one transaction so a vital row never lands without its
// mirrored event. With no Beginner configured fn runs directly.
func (s *Service) atomic(ctx context.Context, fn func(context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	txCtx, tx, err := db.WithTx(ctx, s.tx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(txCtx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Connect registers a new device for the patient. OAuth handshakes with the
// provider happen outside this service.
func (s *Service) Connect(ctx context.Context, d *Device) error {
	if d.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if d.DeviceType == "" {
		return fmt.Errorf("device_type is required")
	}
	d.Status = StatusConnected
	return s.devices.CreateDevice(ctx, d)
}

func (s *Service) ListDevices(ctx context.Context, patientID string) ([]*Device, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	return s.devices.ListDevices(ctx, patientID)
}

// SyncBatch ingests one batch of device samples. Each usable sample becomes
// a vital row plus one event; samples missing a type or value are skipped,
// not fatal, so a partly bad batch still lands its good samples.
func (s *Service) SyncBatch(ctx context.Context, deviceID uuid.UUID, samples []Sample) (*SyncResult, error) {
	d, err := s.devices.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("device not found: %w", err)
	}

	res := &SyncResult{DeviceID: deviceID}
	for _, sample := range samples {
		if sample.Type == "" || sample.Value == "" {
			res.Skipped++
			continue
		}
		measured := sample.RecordedAt
		if measured.IsZero() {
			measured = time.Now().UTC()
		}

		// One transaction per sample: the vital row and its event commit
		// or roll back together, never one without the other.
		err := s.atomic(ctx, func(ctx context.Context) error {
			v := &vitals.Vital{
				PatientID:  d.PatientID,
				Type:       sample.Type,
				Value:      sample.Value,
				Unit:       sample.Unit,
				Source:     d.DeviceType,
				MeasuredAt: measured,
			}
			if err := s.vitals.Create(ctx, v); err != nil {
				return fmt.Errorf("persisting %s sample: %w", sample.Type, err)
			}

			_, err := s.recorder.Record(ctx, d.PatientID, twin.SourceHealthSync, twin.VitalPayload{
				VitalType:  sample.Type,
				Value:      sample.Value,
				Unit:       sample.Unit,
				Source:     d.DeviceType,
				RecordedAt: &measured,
			}, &syncConfidence, nil)
			if err != nil {
				return fmt.Errorf("mirroring %s sample: %w", sample.Type, err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		res.Synced++
	}

	now := time.Now().UTC()
	if err := s.devices.TouchLastSync(ctx, deviceID, now); err != nil {
		s.log.Warn().Err(err).Str("device_id", deviceID.String()).Msg("updating last sync failed")
	}
	return res, nil
}

// Summarize aggregates the patient's trailing activity window.
func (s *Service) Summarize(ctx context.Context, patientID string, days int) (*Summary, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if days <= 0 {
		days = 7
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	readings, err := s.devices.ReadingsSince(ctx, patientID, since)
	if err != nil {
		return nil, err
	}

	sum := &Summary{PatientID: patientID, Days: days}
	var hrTotal, hrCount, sleepTotal, sleepCount float64
	for _, r := range readings {
		v, err := strconv.ParseFloat(r.Value, 64)
		if err != nil {
			continue
		}
		switch r.Type {
		case "steps":
			sum.TotalSteps += int(v)
		case "heart_rate":
			hrTotal += v
			hrCount++
		case "sleep":
			sleepTotal += v
			sleepCount++
		}
	}
	sum.AvgDailySteps = float64(sum.TotalSteps) / float64(days)
	if hrCount > 0 {
		sum.AvgHeartRate = hrTotal / hrCount
	}
	if sleepCount > 0 {
		sum.AvgSleepHours = sleepTotal / sleepCount
	}
	return sum, nil
}
