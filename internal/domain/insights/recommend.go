package insights

import (
	"fmt"
	"sort"
)

var priorityRank = map[string]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// buildRecommendations evaluates a fixed rule list over the gathered
// signals, then orders by priority. Rule order breaks priority ties, so
// identical inputs always yield the identical sequence.
func buildRecommendations(sig *signals) []Recommendation {
	var recs []Recommendation

	if sig.hasSleep && sig.avgSleepHours < goodSleepHours {
		priority := PriorityMedium
		if sig.avgSleepHours < shortSleepHours {
			priority = PriorityHigh
		}
		recs = append(recs, Recommendation{
			Category: "lifestyle",
			Title:    "Improve sleep routine",
			Description: fmt.Sprintf(
				"Aim for 7 to 8 hours of sleep. Your average over the last week was %.1f hours.",
				sig.avgSleepHours),
			Priority:   priority,
			ActionType: "habit_change",
		})
	}

	if sig.hasSteps && sig.avgDailySteps < dailyStepGoal {
		priority := PriorityMedium
		if sig.avgDailySteps < minimumSteps {
			priority = PriorityHigh
		}
		recs = append(recs, Recommendation{
			Category: "lifestyle",
			Title:    "Increase daily activity",
			Description: fmt.Sprintf(
				"Work toward %d steps per day. Your current daily average is %.0f.",
				dailyStepGoal, sig.avgDailySteps),
			Priority:   priority,
			ActionType: "habit_change",
		})
	}

	if sig.hasBP && (sig.systolic >= 130 || sig.diastolic >= 85) {
		recs = append(recs, Recommendation{
			Category:    "monitoring",
			Title:       "Track blood pressure daily",
			Description: "Your latest reading is above the normal range. Record a measurement each morning.",
			Priority:    PriorityHigh,
			ActionType:  "tracking",
		})
	}

	if sig.vitalsObserved == 0 {
		recs = append(recs, Recommendation{
			Category:    "monitoring",
			Title:       "Record your vitals",
			Description: "No recent measurements on file. Regular readings make your health insights more accurate.",
			Priority:    PriorityMedium,
			ActionType:  "tracking",
		})
	}

	recs = append(recs, Recommendation{
		Category:    "prevention",
		Title:       "Schedule a preventive check-up",
		Description: "An annual check-up helps catch issues early.",
		Priority:    PriorityLow,
		ActionType:  "appointment",
	})

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
	})
	return recs
}
