package prediction

import (
	"fmt"
	"math"
)

// riskFactor pairs a sub-score accessor with its human-readable name. The
// slice order is the tie-break order: the first factor with the highest
// score wins.
var riskFactors = []struct {
	name  string
	score func(RiskScores) float64
}{
	{"anemia", func(s RiskScores) float64 { return s.Anemia }},
	{"hypertension", func(s RiskScores) float64 { return s.Hypertension }},
	{"fetal growth restriction", func(s RiskScores) float64 { return s.GrowthRestriction }},
	{"preterm delivery", func(s RiskScores) float64 { return s.PretermRisk }},
	{"maternal age", func(s RiskScores) float64 { return s.MaternalAgeRisk }},
	{"BMI-related", func(s RiskScores) float64 { return s.BMIRisk }},
}

// composeSummary renders a one-sentence narrative bucketed by the severity
// of the dominant risk factor.
func composeSummary(scores RiskScores, dist DeliveryType) string {
	name, score := dominantFactor(scores)
	maturedPct := int(math.Round(dist.Matured * 100))
	prematurePct := int(math.Round(dist.Premature * 100))

	switch {
	case score > 0.7:
		return fmt.Sprintf(
			"High-risk pregnancy profile dominated by %s; estimated %d%% likelihood of premature delivery, close monitoring advised.",
			name, prematurePct)
	case score > 0.4:
		return fmt.Sprintf(
			"Moderate risk related to %s; pregnancy is estimated %d%% likely to reach full term with regular follow-up.",
			name, maturedPct)
	default:
		return fmt.Sprintf(
			"Low-risk profile overall; pregnancy is estimated %d%% likely to reach full term (leading factor: %s).",
			maturedPct, name)
	}
}

// dominantFactor returns the name and value of the highest sub-score, with
// ties broken by enumeration order.
func dominantFactor(scores RiskScores) (string, float64) {
	name, best := riskFactors[0].name, riskFactors[0].score(scores)
	for _, f := range riskFactors[1:] {
		if v := f.score(scores); v > best {
			name, best = f.name, v
		}
	}
	return name, best
}
