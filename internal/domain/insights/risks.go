package insights

// Risk score thresholds. Levels are monotone in the underlying score.
const (
	moderateRiskThreshold = 20
	highRiskThreshold     = 50
)

func riskLevel(score float64) string {
	switch {
	case score < moderateRiskThreshold:
		return LevelLow
	case score < highRiskThreshold:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// assessRisks applies the rule set over 30-day rolling averages and the
// static profile. Every risk carries at least one factor string even when
// nothing is elevated.
func assessRisks(sig *signals, p Profile) []Risk {
	return []Risk{
		cardiovascularRisk(sig, p),
		diabetesRisk(sig, p),
	}
}

func cardiovascularRisk(sig *signals, p Profile) Risk {
	var score float64
	var factors []string

	if sig.hasBP {
		switch {
		case sig.systolic >= 140 || sig.diastolic >= 90:
			score += 25
			factors = append(factors, "elevated blood pressure")
		case sig.systolic >= 130:
			score += 10
			factors = append(factors, "blood pressure trending high")
		}
	}
	if sig.hasHeartRate && (sig.avgHeartRate > 100 || sig.avgHeartRate < 50) {
		score += 15
		factors = append(factors, "resting heart rate outside 50-100 bpm")
	}
	if sig.hasSteps && sig.avgDailySteps < minimumSteps {
		score += 15
		factors = append(factors, "low physical activity")
	}
	if p.Smoker {
		score += 20
		factors = append(factors, "smoking")
	}
	if p.Age >= 55 {
		score += 10
		factors = append(factors, "age above 55")
	}
	if p.FamilyHeartDisease {
		score += 15
		factors = append(factors, "family history of heart disease")
	}
	if len(factors) == 0 {
		factors = []string{"no elevated cardiovascular indicators in the trailing 30 days"}
	}

	level := riskLevel(score)
	rec := map[string]string{
		LevelLow:      "Maintain current activity and routine monitoring",
		LevelModerate: "Review blood pressure and activity with your primary doctor",
		LevelHigh:     "Schedule a cardiovascular evaluation with your care team",
	}[level]

	return Risk{
		Name:           "Cardiovascular disease",
		Level:          level,
		Score:          score,
		Factors:        factors,
		Recommendation: rec,
	}
}

func diabetesRisk(sig *signals, p Profile) Risk {
	var score float64
	var factors []string

	if sig.hasGlucose {
		switch {
		case sig.avgGlucose > 7.8:
			score += 30
			factors = append(factors, "elevated average blood glucose")
		case sig.avgGlucose > 6.1:
			score += 15
			factors = append(factors, "blood glucose trending high")
		}
	}
	if sig.hasSteps && sig.avgDailySteps < minimumSteps {
		score += 10
		factors = append(factors, "low physical activity")
	}
	if p.FamilyDiabetes {
		score += 20
		factors = append(factors, "family history of diabetes")
	}
	if p.Age >= 45 {
		score += 10
		factors = append(factors, "age above 45")
	}
	if len(factors) == 0 {
		factors = []string{"no elevated metabolic indicators in the trailing 30 days"}
	}

	level := riskLevel(score)
	rec := map[string]string{
		LevelLow:      "Routine glucose screening at regular check-ups",
		LevelModerate: "Check fasting glucose every 3 months",
		LevelHigh:     "Discuss glucose management with your primary doctor",
	}[level]

	return Risk{
		Name:           "Type 2 diabetes",
		Level:          level,
		Score:          score,
		Factors:        factors,
		Recommendation: rec,
	}
}
