package labs

import "testing"

func TestClassify_ReferenceScenarios(t *testing.T) {
	cases := []struct {
		name     string
		value    float64
		rng      string
		want     Status
	}{
		{"within range", 145.5, "120-160", StatusNormal},
		{"below low but above critical floor", 90, "120-160", StatusLow},
		{"below critical floor", 50, "120-160", StatusCritical},
		{"above high but below critical ceiling", 170, "120-160", StatusHigh},
		{"above critical ceiling", 250, "120-160", StatusCritical},
		{"exactly low bound", 120, "120-160", StatusNormal},
		{"exactly high bound", 160, "120-160", StatusNormal},
		{"exactly critical floor", 84, "120-160", StatusLow},
		{"exactly critical ceiling", 240, "120-160", StatusHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.value, tc.rng); got != tc.want {
				t.Errorf("Classify(%v, %q) = %q, want %q", tc.value, tc.rng, got, tc.want)
			}
		})
	}
}

func TestClassify_FailOpen(t *testing.T) {
	// Any range that cannot be parsed into two numeric bounds yields normal.
	for _, rng := range []string{
		"", "normal", "120", "120-", "-160", "a-b", "120-160-200 ", "12a-160",
	} {
		if got := Classify(100, rng); got != StatusNormal {
			t.Errorf("Classify(100, %q) = %q, want normal", rng, got)
		}
	}
}

func TestClassify_WhitespaceTolerant(t *testing.T) {
	if got := Classify(90, " 120 - 160 "); got != StatusLow {
		t.Errorf("Classify with padded range = %q, want low", got)
	}
}
