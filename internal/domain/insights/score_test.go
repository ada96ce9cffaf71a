package insights

import "testing"

func TestScoreFactors_SumEqualsScore(t *testing.T) {
	cases := []struct {
		name string
		sig  *signals
	}{
		{"everything good", &signals{
			vitalsObserved: 4, vitalsInRange: 4,
			hasSteps: true, avgDailySteps: 9000,
			hasSleep: true, avgSleepHours: 7.5,
			activePlans: 1, medEvents: 6,
		}},
		{"everything bad", &signals{
			vitalsObserved: 4, vitalsInRange: 0,
			hasSteps: true, avgDailySteps: 1000,
			hasSleep: true, avgSleepHours: 4,
			activePlans: 1, medEvents: 0,
		}},
		{"mixed", &signals{
			vitalsObserved: 3, vitalsInRange: 2,
			hasSteps: true, avgDailySteps: 5000,
			hasSleep: true, avgSleepHours: 6.5,
		}},
		{"no data", &signals{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			factors := scoreFactors(tc.sig)
			sum := 0
			for _, f := range factors {
				sum += f.Contribution
			}
			want := sum
			if want > 100 {
				want = 100
			}
			if want < 0 {
				want = 0
			}
			if got := totalScore(factors); got != want {
				t.Errorf("score = %d, want clipped factor sum %d", got, want)
			}
		})
	}
}

func TestScoreFactors_AllGoodClipsAt100(t *testing.T) {
	sig := &signals{
		vitalsObserved: 4, vitalsInRange: 4,
		hasSteps: true, avgDailySteps: 10000,
		hasSleep: true, avgSleepHours: 8,
		activePlans: 2, medEvents: 7,
	}
	if got := totalScore(scoreFactors(sig)); got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestScoreFactors_InsufficientDataOmitted(t *testing.T) {
	sig := &signals{hasSleep: true, avgSleepHours: 7.5}
	factors := scoreFactors(sig)
	if len(factors) != 2 {
		t.Fatalf("got %d factors, want baseline plus sleep only", len(factors))
	}
	for _, f := range factors {
		if f.Name == factorActivity || f.Name == factorVitals || f.Name == factorAdherence {
			t.Errorf("factor %q present without data", f.Name)
		}
	}
}

func TestScoreFactors_AdherenceOmittedWithoutPlans(t *testing.T) {
	sig := &signals{activePlans: 0, medEvents: 3}
	for _, f := range scoreFactors(sig) {
		if f.Name == factorAdherence {
			t.Error("adherence factor present without active care plans")
		}
	}
}

func TestSleepFactor_Thresholds(t *testing.T) {
	cases := []struct {
		hours  float64
		points int
		status FactorStatus
	}{
		{8, 20, StatusGood},
		{7, 20, StatusGood},
		{6.5, 5, StatusWarning},
		{6, 5, StatusWarning},
		{5.9, -5, StatusWarning},
	}
	for _, tc := range cases {
		f := sleepFactor(tc.hours)
		if f.Contribution != tc.points || f.Status != tc.status {
			t.Errorf("sleepFactor(%.1f) = %+d %s, want %+d %s",
				tc.hours, f.Contribution, f.Status, tc.points, tc.status)
		}
	}
}

func TestActivityFactor_Thresholds(t *testing.T) {
	cases := []struct {
		steps  float64
		points int
		status FactorStatus
	}{
		{8000, 25, StatusGood},
		{4000, 10, StatusWarning},
		{3999, -5, StatusWarning},
	}
	for _, tc := range cases {
		f := activityFactor(tc.steps)
		if f.Contribution != tc.points || f.Status != tc.status {
			t.Errorf("activityFactor(%.0f) = %+d %s, want %+d %s",
				tc.steps, f.Contribution, f.Status, tc.points, tc.status)
		}
	}
}

func TestTotalScore_ClipsAtZero(t *testing.T) {
	factors := []Factor{
		{Name: "a", Contribution: -10, Status: StatusWarning},
		{Name: "b", Contribution: -10, Status: StatusWarning},
	}
	if got := totalScore(factors); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestInBaseline(t *testing.T) {
	cases := []struct {
		vitalType string
		value     string
		in        bool
		judged    bool
	}{
		{"heart_rate", "72", true, true},
		{"heart_rate", "110", false, true},
		{"heart_rate", "abnormal", false, false},
		{"blood_pressure", "120/80", true, true},
		{"blood_pressure", "150/95", false, true},
		{"blood_pressure", "high", false, false},
		{"oxygen_saturation", "97", true, true},
		{"oxygen_saturation", "92", false, true},
		{"blood_glucose", "5.5", true, true},
		{"blood_glucose", "9.2", false, true},
		{"temperature", "36.8", true, true},
		{"weight", "82", false, false},
	}
	for _, tc := range cases {
		in, judged := inBaseline(tc.vitalType, tc.value)
		if in != tc.in || judged != tc.judged {
			t.Errorf("inBaseline(%s, %s) = %v,%v want %v,%v",
				tc.vitalType, tc.value, in, judged, tc.in, tc.judged)
		}
	}
}
