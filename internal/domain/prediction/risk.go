package prediction

import "strings"

// Default blood pressure used when the latest visit carries no parseable
// reading.
const (
	defaultSystolic  = 115.0
	defaultDiastolic = 70.0
)

// ScoreRisks computes the six risk sub-scores from the chronologically
// latest visit, the patient profile, and the full sorted visit history
// (scanned for preterm-history mentions). Each rule is independent; missing
// inputs leave the corresponding score at its zero default.
func ScoreRisks(latest Visit, patient Record, history []Visit) RiskScores {
	var scores RiskScores

	if hb := latest.Hemoglobin; hb != nil {
		switch {
		case *hb < 10:
			scores.Anemia = 0.8
		case *hb < 11:
			scores.Anemia = 0.4
		default:
			scores.Anemia = 0.1
		}
	}

	if latest.BloodPressure != nil {
		sys, dia := parseBloodPressure(latest.BloodPressure)
		switch {
		case sys >= 140 || dia >= 90:
			scores.Hypertension = 0.9
		case sys >= 130 || dia >= 85:
			scores.Hypertension = 0.6
		default:
			scores.Hypertension = 0.1
		}
	}

	if fh := latest.FundalHeight; fh != nil {
		gap := *fh - latest.GestationalAge
		if gap < 0 {
			gap = -gap
		}
		switch {
		case gap > 4:
			scores.GrowthRestriction = 0.7
		case gap > 2:
			scores.GrowthRestriction = 0.3
		default:
			scores.GrowthRestriction = 0.1
		}
	}

	// Preterm risk is always assigned.
	switch {
	case latest.GestationalAge < 37 && hasPretermHistory(patient, history):
		scores.PretermRisk = 0.6
	case latest.GestationalAge < 32:
		scores.PretermRisk = 0.3
	default:
		scores.PretermRisk = 0.1
	}

	age := defaultMaternalAge
	if a := numField(patient, FieldAge); a != nil {
		age = *a
	}
	if age < 18 || age > 35 {
		scores.MaternalAgeRisk = 0.4
	} else {
		scores.MaternalAgeRisk = 0.1
	}

	if bmi := numField(patient, FieldBMIValue); bmi != nil {
		switch {
		case *bmi < 18.5 || *bmi > 30:
			scores.BMIRisk = 0.5
		case *bmi > 25:
			scores.BMIRisk = 0.3
		default:
			scores.BMIRisk = 0.1
		}
	}

	return scores
}

// defaultMaternalAge is assumed when the profile carries no age.
const defaultMaternalAge = 25.0

// hasPretermHistory reports whether the patient has had a prior birth
// (parity > 0, also accepted as the numeric string "1") and either the
// profile's medical history or any visit's complication notes mention a
// preterm delivery.
func hasPretermHistory(patient Record, history []Visit) bool {
	if !parityPositive(patient[FieldParity]) {
		return false
	}
	if containsPreterm(strField(patient, FieldMedicalHistory)) {
		return true
	}
	for _, v := range history {
		if containsPreterm(v.Complications) {
			return true
		}
	}
	return false
}

func containsPreterm(s *string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), "preterm")
}

// parityPositive reports a parity value greater than zero. Parity arrives
// either numeric or as a numeric string.
func parityPositive(v any) bool {
	if s, ok := v.(string); ok && s == "1" {
		return true
	}
	f, ok := toFloat(v)
	return ok && f > 0
}

// parityZero reports an explicit parity of zero (numeric 0 or the string "0").
// An absent parity is not considered zero.
func parityZero(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s == "0"
	}
	f, ok := toFloat(v)
	return ok && f == 0
}

// parseBloodPressure parses a "systolic/diastolic" string, falling back to
// 115/70 when the value is absent or malformed.
func parseBloodPressure(bp *string) (systolic, diastolic float64) {
	systolic, diastolic = defaultSystolic, defaultDiastolic
	if bp == nil {
		return
	}
	parts := strings.SplitN(strings.TrimSpace(*bp), "/", 2)
	if len(parts) != 2 {
		return
	}
	sys, okSys := toFloat(parts[0])
	dia, okDia := toFloat(parts[1])
	if !okSys || !okDia || sys <= 0 || dia <= 0 {
		return
	}
	return sys, dia
}
