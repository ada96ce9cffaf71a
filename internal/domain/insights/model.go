package insights

// FactorStatus qualifies one score factor.
type FactorStatus string

const (
	StatusGood    FactorStatus = "good"
	StatusWarning FactorStatus = "warning"
	StatusInfo    FactorStatus = "info"
)

// Factor is one explainable component of the daily score. Contributions are
// signed and sum to the reported score before clipping.
type Factor struct {
	Name         string       `json:"name"`
	Contribution int          `json:"contribution"`
	Status       FactorStatus `json:"status"`
}

// Narrative sources.
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// Narrative is the highlight text plus how it was produced, so callers can
// tell a model answer from the deterministic template.
type Narrative struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// DailyScore is the computed health score for one day.
type DailyScore struct {
	PatientID       string   `json:"patient_id"`
	Date            string   `json:"date"`
	Score           int      `json:"score"`
	Factors         []Factor `json:"factors"`
	Highlight       string   `json:"highlight"`
	HighlightSource string   `json:"highlight_source"`
	Trend           string   `json:"trend"`
}

// Risk levels, ordered.
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
)

// Risk is one assessed risk area with its supporting factors.
type Risk struct {
	Name           string   `json:"name"`
	Level          string   `json:"level"`
	Score          float64  `json:"score"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is one actionable suggestion.
type Recommendation struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	ActionType  string `json:"action_type"`
}

// ScorePoint is one entry in a score trend series.
type ScorePoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// WeeklyReport summarizes the trailing week.
type WeeklyReport struct {
	PatientID   string       `json:"patient_id"`
	WeekStart   string       `json:"week_start"`
	WeekEnd     string       `json:"week_end"`
	AvgScore    float64      `json:"avg_score"`
	ScoreTrend  []ScorePoint `json:"score_trend"`
	KeyInsights []string     `json:"key_insights"`
}

// Profile carries the static demographic and history inputs risk assessment
// combines with the rolling vitals averages. All fields are optional.
type Profile struct {
	Age                int  `json:"age"`
	Smoker             bool `json:"smoker"`
	FamilyHeartDisease bool `json:"family_heart_disease"`
	FamilyDiabetes     bool `json:"family_diabetes"`
}
