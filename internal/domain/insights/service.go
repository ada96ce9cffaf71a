package insights

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/healthsync"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/vitals"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/llm"
)

// VitalSource provides the latest measurement per vital type.
type VitalSource interface {
	LatestByType(ctx context.Context, patientID, vitalType string) (*vitals.Vital, error)
}

// ActivitySource provides the trailing measurement series.
type ActivitySource interface {
	ReadingsSince(ctx context.Context, patientID string, since time.Time) ([]*healthsync.Reading, error)
}

// PlanSource counts the patient's active care plans.
type PlanSource interface {
	CountActive(ctx context.Context, patientID string) (int, error)
}

// EventSource reads the patient's event log.
type EventSource interface {
	Query(ctx context.Context, patientID string, f twin.Filter) ([]*twin.Event, error)
}

const highlightSystemPrompt = "You are a health analytics assistant. " +
	"Write one or two short, encouraging sentences about the patient's daily health score. " +
	"Plain text only, no medical diagnoses."

const highlightMaxLen = 200

// Service computes derived health insights from the patient's recorded
// data. All outputs are recomputable; only the daily score is cached.
type Service struct {
	vitals   VitalSource
	activity ActivitySource
	plans    PlanSource
	events   EventSource
	gen      llm.Client
	cache    *scoreCache
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(vs VitalSource, as ActivitySource, ps PlanSource, es EventSource, gen llm.Client, cacheTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		vitals:   vs,
		activity: as,
		plans:    ps,
		events:   es,
		gen:      gen,
		cache:    newScoreCache(cacheTTL),
		log:      log,
		now:      time.Now,
	}
}

// Daily computes today's health score with its explainable factor list and
// a narrative highlight. Cached per patient for the configured TTL.
func (s *Service) Daily(ctx context.Context, patientID string) (*DailyScore, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	now := s.now().UTC()
	if cached := s.cache.get(patientID, now); cached != nil {
		return cached, nil
	}

	sig, err := s.gather(ctx, patientID)
	if err != nil {
		return nil, err
	}

	factors := scoreFactors(sig)
	score := totalScore(factors)
	n := s.highlight(ctx, score, factors)

	ds := &DailyScore{
		PatientID:       patientID,
		Date:            now.Format("2006-01-02"),
		Score:           score,
		Factors:         factors,
		Highlight:       n.Text,
		HighlightSource: n.Source,
		Trend:           trend(sig, score, now),
	}
	s.cache.set(patientID, ds, now)
	return ds, nil
}

// Risks assesses the configured risk areas from 30-day rolling averages
// and the supplied static profile.
func (s *Service) Risks(ctx context.Context, patientID string, p Profile) ([]Risk, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	sig, err := s.gather(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return assessRisks(sig, p), nil
}

// Recommendations returns the prioritized suggestion list.
func (s *Service) Recommendations(ctx context.Context, patientID string) ([]Recommendation, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	sig, err := s.gather(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return buildRecommendations(sig), nil
}

// Weekly builds the trailing-week report from per-day deterministic scores.
func (s *Service) Weekly(ctx context.Context, patientID string) (*WeeklyReport, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	sig, err := s.gather(ctx, patientID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	report := &WeeklyReport{
		PatientID: patientID,
		WeekStart: now.AddDate(0, 0, -6).Format("2006-01-02"),
		WeekEnd:   now.Format("2006-01-02"),
	}

	var sum int
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		score := dayScore(sig, day)
		sum += score
		report.ScoreTrend = append(report.ScoreTrend, ScorePoint{Date: day, Score: score})
	}
	report.AvgScore = math.Round(float64(sum)/7*10) / 10
	report.KeyInsights = keyInsights(sig)
	return report, nil
}

// trend compares today's score to the average of the six prior days.
func trend(sig *signals, today int, now time.Time) string {
	var sum, count int
	for i := 6; i >= 1; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		sum += dayScore(sig, day)
		count++
	}
	if count == 0 {
		return "stable"
	}
	avg := float64(sum) / float64(count)
	switch {
	case float64(today) > avg+3:
		return "improving"
	case float64(today) < avg-3:
		return "declining"
	default:
		return "stable"
	}
}

func keyInsights(sig *signals) []string {
	var out []string
	if sig.hasSleep {
		if sig.avgSleepHours >= goodSleepHours {
			out = append(out, "Average sleep met the 7 hour target")
		} else {
			out = append(out, fmt.Sprintf("Average sleep was %.1f hours, below the 7 hour target", sig.avgSleepHours))
		}
	}
	if sig.hasSteps {
		if sig.avgDailySteps >= dailyStepGoal {
			out = append(out, "Daily step goal met on average")
		} else {
			out = append(out, fmt.Sprintf("Daily activity averaged %.0f steps, below the %d goal", sig.avgDailySteps, dailyStepGoal))
		}
	}
	if sig.vitalsObserved > 0 {
		if sig.vitalsInRange == sig.vitalsObserved {
			out = append(out, "All recorded vitals within baseline")
		} else {
			out = append(out, fmt.Sprintf("%d of %d recorded vitals outside baseline", sig.vitalsObserved-sig.vitalsInRange, sig.vitalsObserved))
		}
	}
	if len(out) == 0 {
		out = append(out, "Not enough data recorded this week")
	}
	return out
}

// highlight asks the model for a short narrative seeded with the computed
// factors, substituting the deterministic template on any failure. The
// score never depends on this succeeding.
func (s *Service) highlight(ctx context.Context, score int, factors []Factor) Narrative {
	var b strings.Builder
	fmt.Fprintf(&b, "Today's health score is %d out of 100. Factors:\n", score)
	for _, f := range factors {
		fmt.Fprintf(&b, "- %s: %+d (%s)\n", f.Name, f.Contribution, f.Status)
	}

	text, err := s.gen.Generate(ctx, highlightSystemPrompt, b.String())
	if err != nil {
		s.log.Debug().Err(err).Msg("highlight generation unavailable, using template")
		return Narrative{Text: fallbackHighlight(score, factors), Source: SourceFallback}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Narrative{Text: fallbackHighlight(score, factors), Source: SourceFallback}
	}
	// Truncate on rune boundaries so a multi-byte character is never split.
	if runes := []rune(text); len(runes) > highlightMaxLen {
		text = string(runes[:highlightMaxLen])
	}
	return Narrative{Text: text, Source: SourceGenerated}
}

func fallbackHighlight(score int, factors []Factor) string {
	var warnings []Factor
	for _, f := range factors {
		if f.Status == StatusWarning {
			warnings = append(warnings, f)
		}
	}
	if len(warnings) == 0 {
		return fmt.Sprintf("Your health score is %d today. Keep up your current routine.", score)
	}
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Contribution < warnings[j].Contribution
	})
	return fmt.Sprintf("Your health score is %d today. Focus on %s to improve it.",
		score, strings.ToLower(warnings[0].Name))
}
