package twin

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// TrackedVitalTypes are the vital signs the snapshot reports latest values for.
var TrackedVitalTypes = []string{
	"heart_rate", "blood_pressure", "temperature",
	"weight", "oxygen_saturation", "blood_glucose",
}

// RecentLabWindow is the trailing window for the recent-labs count.
const RecentLabWindow = 30 * 24 * time.Hour

// VitalReading is the snapshot's view of one latest vital measurement.
type VitalReading struct {
	Type       string    `json:"type"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	Source     string    `json:"source,omitempty"`
	MeasuredAt time.Time `json:"measured_at"`
}

// Snapshot is the derived current-state view of a patient. It is recomputed
// on every read and never persisted.
type Snapshot struct {
	PatientID            string                   `json:"patient_id"`
	LatestVitals         map[string]*VitalReading `json:"latest_vitals"`
	ActiveCarePlans      int                      `json:"active_care_plans"`
	UpcomingAppointments int                      `json:"upcoming_appointments"`
	RecentLabResults     int                      `json:"recent_lab_results"`
	TotalDocuments       int                      `json:"total_documents"`
	LastUpdated          time.Time                `json:"last_updated"`
}

// SnapshotBuilder assembles a Snapshot from independent per-collection reads.
// The function fields are wired at startup to the owning domain services,
// keeping this package free of domain imports. LatestVitalFn returns
// (nil, nil) when the patient has no measurement of that type.
type SnapshotBuilder struct {
	LatestVitalFn          func(ctx context.Context, patientID, vitalType string) (*VitalReading, error)
	ActivePlansFn          func(ctx context.Context, patientID string) (int, error)
	UpcomingAppointmentsFn func(ctx context.Context, patientID string) (int, error)
	RecentLabsFn           func(ctx context.Context, patientID string, since time.Time) (int, error)
	DocumentCountFn        func(ctx context.Context, patientID string) (int, error)

	Log zerolog.Logger
}

// Build fans out all sub-queries concurrently and joins before assembling the
// snapshot. A failed vital lookup omits that type from the map; a failed
// count propagates, since returning a wrong count would be worse than an
// error.
func (b *SnapshotBuilder) Build(ctx context.Context, patientID string) (*Snapshot, error) {
	snap := &Snapshot{
		PatientID:    patientID,
		LatestVitals: map[string]*VitalReading{},
		LastUpdated:  time.Now().UTC(),
	}

	g, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for _, vt := range TrackedVitalTypes {
		vt := vt
		g.Go(func() error {
			v, err := b.LatestVitalFn(ctx, patientID, vt)
			if err != nil {
				b.Log.Warn().Err(err).Str("vital_type", vt).Msg("latest vital lookup failed")
				return nil
			}
			if v == nil {
				return nil
			}
			mu.Lock()
			snap.LatestVitals[vt] = v
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		n, err := b.ActivePlansFn(ctx, patientID)
		if err != nil {
			return err
		}
		snap.ActiveCarePlans = n
		return nil
	})
	g.Go(func() error {
		n, err := b.UpcomingAppointmentsFn(ctx, patientID)
		if err != nil {
			return err
		}
		snap.UpcomingAppointments = n
		return nil
	})
	g.Go(func() error {
		n, err := b.RecentLabsFn(ctx, patientID, time.Now().UTC().Add(-RecentLabWindow))
		if err != nil {
			return err
		}
		snap.RecentLabResults = n
		return nil
	})
	g.Go(func() error {
		n, err := b.DocumentCountFn(ctx, patientID)
		if err != nil {
			return err
		}
		snap.TotalDocuments = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
