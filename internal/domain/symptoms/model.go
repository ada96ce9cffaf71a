package symptoms

// Triage levels, most to least urgent.
const (
	TriageEmergency = "emergency"
	TriageUrgent    = "urgent"
	TriageStandard  = "standard"
	TriageRoutine   = "routine"
)

var validTriageLevels = map[string]bool{
	TriageEmergency: true, TriageUrgent: true,
	TriageStandard: true, TriageRoutine: true,
}

// Result sources.
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// Disclaimer is attached to every analysis regardless of how it was produced.
const Disclaimer = "This assessment is informational only and is not a medical " +
	"diagnosis. Seek professional care for any concerning or worsening symptoms."

// Analysis is the outcome of one symptom-checker session.
type Analysis struct {
	Symptoms           []string `json:"symptoms"`
	TriageLevel        string   `json:"triage_level"`
	PossibleConditions []string `json:"possible_conditions"`
	Recommendations    []string `json:"recommendations"`
	FollowUpQuestions  []string `json:"follow_up_questions,omitempty"`
	Disclaimer         string   `json:"disclaimer"`
	Source             string   `json:"source"`
}
