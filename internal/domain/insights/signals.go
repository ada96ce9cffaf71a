package insights

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/healthsync"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
)

const (
	activityWindow  = 7 * 24 * time.Hour
	rollingWindow   = 30 * 24 * time.Hour
	dailyStepGoal   = 8000
	minimumSteps    = 4000
	goodSleepHours  = 7.0
	shortSleepHours = 6.0
)

// signals holds everything scoring, risks and recommendations read. It is
// gathered once per request so the three outputs agree on the same inputs.
type signals struct {
	vitalsObserved int
	vitalsInRange  int

	hasSteps      bool
	avgDailySteps float64
	hasSleep      bool
	avgSleepHours float64

	hasHeartRate bool
	avgHeartRate float64
	hasGlucose   bool
	avgGlucose   float64
	hasBP        bool
	systolic     float64
	diastolic    float64

	activePlans int
	medEvents   int

	// per-day step and sleep totals for the trailing week, keyed by
	// YYYY-MM-DD, used by the trend and weekly report.
	stepsByDay map[string]float64
	sleepByDay map[string]float64
}

func (s *Service) gather(ctx context.Context, patientID string) (*signals, error) {
	now := s.now().UTC()
	sig := &signals{
		stepsByDay: make(map[string]float64),
		sleepByDay: make(map[string]float64),
	}

	for _, vt := range twin.TrackedVitalTypes {
		v, err := s.vitals.LatestByType(ctx, patientID, vt)
		if err != nil {
			s.log.Warn().Err(err).Str("vital_type", vt).Msg("latest vital lookup failed")
			continue
		}
		if v == nil {
			continue
		}
		if vt == "blood_pressure" {
			if sys, dia, ok := parseBloodPressure(v.Value); ok {
				sig.hasBP = true
				sig.systolic, sig.diastolic = sys, dia
			}
		}
		in, judged := inBaseline(vt, v.Value)
		if !judged {
			continue
		}
		sig.vitalsObserved++
		if in {
			sig.vitalsInRange++
		}
	}

	readings, err := s.activity.ReadingsSince(ctx, patientID, now.Add(-rollingWindow))
	if err != nil {
		return nil, err
	}
	sig.fold(readings, now)

	plans, err := s.plans.CountActive(ctx, patientID)
	if err != nil {
		return nil, err
	}
	sig.activePlans = plans

	weekAgo := now.Add(-activityWindow)
	meds, err := s.events.Query(ctx, patientID, twin.Filter{
		EventType: twin.EventMedication,
		Start:     &weekAgo,
	})
	if err != nil {
		return nil, err
	}
	sig.medEvents = len(meds)

	return sig, nil
}

// fold accumulates the reading series into weekly activity and 30-day
// rolling averages.
func (sig *signals) fold(readings []*healthsync.Reading, now time.Time) {
	weekStart := now.Add(-activityWindow)
	var stepTotal, sleepTotal, sleepCount float64
	var hrTotal, hrCount, glucoseTotal, glucoseCount float64

	for _, r := range readings {
		v, err := strconv.ParseFloat(r.Value, 64)
		if err != nil {
			continue
		}
		day := r.RecordedAt.UTC().Format("2006-01-02")
		switch r.Type {
		case "steps":
			if !r.RecordedAt.Before(weekStart) {
				stepTotal += v
				sig.stepsByDay[day] += v
				sig.hasSteps = true
			}
		case "sleep":
			if !r.RecordedAt.Before(weekStart) {
				sleepTotal += v
				sleepCount++
				sig.sleepByDay[day] += v
				sig.hasSleep = true
			}
		case "heart_rate":
			hrTotal += v
			hrCount++
		case "blood_glucose":
			glucoseTotal += v
			glucoseCount++
		}
	}

	if sig.hasSteps {
		sig.avgDailySteps = stepTotal / (activityWindow.Hours() / 24)
	}
	if sleepCount > 0 {
		sig.avgSleepHours = sleepTotal / sleepCount
	}
	if hrCount > 0 {
		sig.hasHeartRate = true
		sig.avgHeartRate = hrTotal / hrCount
	}
	if glucoseCount > 0 {
		sig.hasGlucose = true
		sig.avgGlucose = glucoseTotal / glucoseCount
	}
}

// inBaseline judges a vital value against its population baseline. The
// second return is false when the value cannot be judged at all, so
// unparsable or unranged readings never count against the patient.
func inBaseline(vitalType, value string) (in bool, judged bool) {
	switch vitalType {
	case "blood_pressure":
		sys, dia, ok := parseBloodPressure(value)
		if !ok {
			return false, false
		}
		return sys >= 90 && sys < 130 && dia >= 60 && dia < 85, true
	case "heart_rate", "temperature", "oxygen_saturation", "blood_glucose":
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return false, false
		}
		switch vitalType {
		case "heart_rate":
			return v >= 60 && v <= 100, true
		case "temperature":
			return v >= 36.1 && v <= 37.5, true
		case "oxygen_saturation":
			return v >= 95, true
		default: // blood_glucose, mmol/L
			return v >= 3.9 && v <= 7.8, true
		}
	default:
		// weight and anything untracked has no fixed baseline
		return false, false
	}
}

func parseBloodPressure(value string) (sys, dia float64, ok bool) {
	parts := strings.SplitN(value, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	sys, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	dia, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return sys, dia, true
}
