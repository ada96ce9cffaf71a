package insights

import (
	"reflect"
	"testing"
)

func TestBuildRecommendations_PriorityOrdered(t *testing.T) {
	sig := &signals{
		hasSleep: true, avgSleepHours: 5.5,
		hasSteps: true, avgDailySteps: 6000,
		vitalsObserved: 2, vitalsInRange: 2,
	}
	recs := buildRecommendations(sig)
	if len(recs) < 3 {
		t.Fatalf("got %d recommendations, want sleep, activity and check-up", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if priorityRank[recs[i-1].Priority] > priorityRank[recs[i].Priority] {
			t.Errorf("recommendation %d (%s) ordered after lower priority %s",
				i, recs[i].Priority, recs[i-1].Priority)
		}
	}
	if recs[0].Title != "Improve sleep routine" || recs[0].Priority != PriorityHigh {
		t.Errorf("first recommendation = %q %s, want high priority sleep", recs[0].Title, recs[0].Priority)
	}
}

func TestBuildRecommendations_StableForIdenticalInputs(t *testing.T) {
	sig := &signals{
		hasSleep: true, avgSleepHours: 6.5,
		hasSteps: true, avgDailySteps: 3000,
		hasBP:    true, systolic: 140, diastolic: 90,
	}
	a := buildRecommendations(sig)
	b := buildRecommendations(sig)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different recommendation order")
	}
}

func TestBuildRecommendations_NoVitalsPromptsTracking(t *testing.T) {
	recs := buildRecommendations(&signals{})
	var found bool
	for _, r := range recs {
		if r.Title == "Record your vitals" {
			found = true
		}
	}
	if !found {
		t.Error("missing tracking recommendation when no vitals on file")
	}
}

func TestBuildRecommendations_AlwaysIncludesCheckup(t *testing.T) {
	recs := buildRecommendations(&signals{
		vitalsObserved: 1, vitalsInRange: 1,
		hasSteps: true, avgDailySteps: 9000,
		hasSleep: true, avgSleepHours: 8,
	})
	last := recs[len(recs)-1]
	if last.Category != "prevention" || last.ActionType != "appointment" {
		t.Errorf("last recommendation = %+v, want preventive check-up", last)
	}
}
