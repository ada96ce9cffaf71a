package insights

import "math"

// Factor weights. Baseline is the starting point every patient gets; the
// data factors add or subtract from it so the factor list always sums to
// the reported score.
const (
	baselinePoints  = 50
	vitalsMaxPoints = 40
	activityPoints  = 25
	sleepPoints     = 20
	adherencePoints = 15
)

const (
	factorBaseline  = "Baseline"
	factorVitals    = "Vitals in baseline"
	factorActivity  = "Daily activity"
	factorSleep     = "Sleep quality"
	factorAdherence = "Medication adherence"
)

// scoreFactors derives the explainable factor list from the gathered
// signals. Factors with insufficient data are omitted, never guessed.
func scoreFactors(sig *signals) []Factor {
	factors := []Factor{{Name: factorBaseline, Contribution: baselinePoints, Status: StatusInfo}}

	if sig.vitalsObserved > 0 {
		ratio := float64(sig.vitalsInRange) / float64(sig.vitalsObserved)
		f := Factor{
			Name:         factorVitals,
			Contribution: int(math.Round(vitalsMaxPoints * ratio)),
			Status:       StatusGood,
		}
		if sig.vitalsInRange < sig.vitalsObserved {
			f.Status = StatusWarning
		}
		factors = append(factors, f)
	}

	if sig.hasSteps {
		factors = append(factors, activityFactor(sig.avgDailySteps))
	}
	if sig.hasSleep {
		factors = append(factors, sleepFactor(sig.avgSleepHours))
	}

	if sig.activePlans > 0 {
		f := Factor{Name: factorAdherence}
		switch {
		case sig.medEvents >= 5:
			f.Contribution, f.Status = adherencePoints, StatusGood
		case sig.medEvents >= 1:
			f.Contribution, f.Status = 5, StatusWarning
		default:
			f.Contribution, f.Status = -5, StatusWarning
		}
		factors = append(factors, f)
	}

	return factors
}

func activityFactor(avgDailySteps float64) Factor {
	f := Factor{Name: factorActivity}
	switch {
	case avgDailySteps >= dailyStepGoal:
		f.Contribution, f.Status = activityPoints, StatusGood
	case avgDailySteps >= minimumSteps:
		f.Contribution, f.Status = 10, StatusWarning
	default:
		f.Contribution, f.Status = -5, StatusWarning
	}
	return f
}

func sleepFactor(avgHours float64) Factor {
	f := Factor{Name: factorSleep}
	switch {
	case avgHours >= goodSleepHours:
		f.Contribution, f.Status = sleepPoints, StatusGood
	case avgHours >= shortSleepHours:
		f.Contribution, f.Status = 5, StatusWarning
	default:
		f.Contribution, f.Status = -5, StatusWarning
	}
	return f
}

// totalScore sums the signed contributions and clips to [0, 100].
func totalScore(factors []Factor) int {
	sum := 0
	for _, f := range factors {
		sum += f.Contribution
	}
	if sum < 0 {
		return 0
	}
	if sum > 100 {
		return 100
	}
	return sum
}

// dayScore re-scores one calendar day using that day's step and sleep
// totals, holding vitals and adherence constant across the window. The
// weekly trend is built from these.
func dayScore(sig *signals, day string) int {
	var factors []Factor
	for _, f := range scoreFactors(sig) {
		if f.Name == factorActivity || f.Name == factorSleep {
			continue
		}
		factors = append(factors, f)
	}
	if steps, ok := sig.stepsByDay[day]; ok {
		factors = append(factors, activityFactor(steps))
	}
	if sleep, ok := sig.sleepByDay[day]; ok {
		factors = append(factors, sleepFactor(sleep))
	}
	return totalScore(factors)
}
