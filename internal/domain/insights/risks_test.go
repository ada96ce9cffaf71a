package insights

import (
	"reflect"
	"testing"
)

func TestRiskLevel_MonotoneThresholds(t *testing.T) {
	cases := []struct {
		score float64
		level string
	}{
		{0, LevelLow},
		{19.9, LevelLow},
		{20, LevelModerate},
		{49.9, LevelModerate},
		{50, LevelHigh},
		{95, LevelHigh},
	}
	for _, tc := range cases {
		if got := riskLevel(tc.score); got != tc.level {
			t.Errorf("riskLevel(%.1f) = %s, want %s", tc.score, got, tc.level)
		}
	}
}

func TestAssessRisks_AlwaysCarryFactors(t *testing.T) {
	risks := assessRisks(&signals{}, Profile{})
	if len(risks) != 2 {
		t.Fatalf("got %d risks, want cardiovascular and diabetes", len(risks))
	}
	for _, r := range risks {
		if len(r.Factors) == 0 {
			t.Errorf("risk %q has no supporting factors", r.Name)
		}
		if r.Level != LevelLow {
			t.Errorf("risk %q level = %s with no signals, want low", r.Name, r.Level)
		}
		if r.Recommendation == "" {
			t.Errorf("risk %q has no recommendation", r.Name)
		}
	}
}

func TestCardiovascularRisk_Elevated(t *testing.T) {
	sig := &signals{
		hasBP: true, systolic: 150, diastolic: 95,
		hasSteps: true, avgDailySteps: 2000,
	}
	r := cardiovascularRisk(sig, Profile{Age: 60, Smoker: true})
	if r.Level != LevelHigh {
		t.Errorf("level = %s, want high (score %.0f)", r.Level, r.Score)
	}
	want := []string{
		"elevated blood pressure",
		"low physical activity",
		"smoking",
		"age above 55",
	}
	if !reflect.DeepEqual(r.Factors, want) {
		t.Errorf("factors = %v, want %v", r.Factors, want)
	}
}

func TestDiabetesRisk_GlucoseTrending(t *testing.T) {
	sig := &signals{hasGlucose: true, avgGlucose: 6.5}
	r := diabetesRisk(sig, Profile{FamilyDiabetes: true})
	if r.Score != 35 {
		t.Errorf("score = %.1f, want 35", r.Score)
	}
	if r.Level != LevelModerate {
		t.Errorf("level = %s, want moderate", r.Level)
	}
}

func TestAssessRisks_Deterministic(t *testing.T) {
	sig := &signals{hasBP: true, systolic: 135, diastolic: 80, hasGlucose: true, avgGlucose: 8.0}
	p := Profile{Age: 50}
	a := assessRisks(sig, p)
	b := assessRisks(sig, p)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different risk assessments")
	}
}
