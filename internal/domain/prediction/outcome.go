package prediction

import "math"

// deliveryTypeDistribution converts the risk sub-scores into a normalized
// probability distribution over delivery timing. The three raw weights are
// derived from the arithmetic mean of the six sub-scores, normalized to sum
// to 1.0, then rounded to two decimals independently; the rounded values may
// drift from 1.0 by a few hundredths, which downstream consumers accept.
func deliveryTypeDistribution(scores RiskScores) DeliveryType {
	mean := (scores.Anemia + scores.Hypertension + scores.GrowthRestriction +
		scores.PretermRisk + scores.MaternalAgeRisk + scores.BMIRisk) / 6

	matured := math.Max(0.40, 0.80-mean*0.3)
	premature := math.Min(0.40, 0.15+mean*0.2)
	mortality := math.Min(0.20, 0.05+mean*0.1)

	total := matured + premature + mortality
	return DeliveryType{
		Matured:       round2(matured / total),
		Premature:     round2(premature / total),
		MortalityRisk: round2(mortality / total),
	}
}

// deliveryModeDistribution derives the C-section risk from the hypertension,
// growth-restriction, and BMI sub-scores plus a nulliparity surcharge, capped
// at 0.70.
func deliveryModeDistribution(scores RiskScores, patient Record) DeliveryMode {
	csection := scores.Hypertension*0.4 + scores.GrowthRestriction*0.3 + scores.BMIRisk*0.2
	if parityZero(patient[FieldParity]) {
		csection += 0.1
	}
	csection = math.Min(0.70, csection)

	return DeliveryMode{
		Normal:   round2(1 - csection),
		CSection: round2(csection),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
