package prediction

import "math"

// Baseline values used when the latest visit lacks a measurement. Blood
// pressure and fetal heart rate defaults come from the clinical rule set;
// weight and hemoglobin are mid-range maternal baselines.
const (
	defaultBaseWeight     = 60.0
	defaultBaseHemoglobin = 11.0
	defaultFetalHeartRate = 145.0

	hemoglobinFloor = 9.5

	fetalHeartRateMin = 120.0
	fetalHeartRateMax = 160.0
)

// synthesize projects the six physiological signals week by week from the
// current gestational week through currentWeek+weeks. Week 0 carries the
// latest visit's observed values; subsequent weeks blend the historical
// trend with clinical drift constants and bounded jitter.
//
// sorted must be non-empty and ascending by gestational age; weeks must be
// positive (the caller falls back otherwise).
func (e *Engine) synthesize(sorted []Visit, weeks int) Progression {
	first, latest := sorted[0], sorted[len(sorted)-1]
	currentWeek := int(latest.GestationalAge)
	historySpan := float64(currentWeek) - first.GestationalAge

	weightTrend := weeklyTrend(sorted, func(v Visit) *float64 { return v.Weight })
	hbTrend := weeklyTrend(sorted, func(v Visit) *float64 { return v.Hemoglobin })

	baseWeight := valueOr(latest.Weight, defaultBaseWeight)
	baseHb := valueOr(latest.Hemoglobin, defaultBaseHemoglobin)
	baseFundal := valueOr(latest.FundalHeight, latest.GestationalAge)
	baseFHR := valueOr(latest.FetalHeartRate, defaultFetalHeartRate)
	baseSys, baseDia := parseBloodPressure(latest.BloodPressure)

	prog := Progression{
		Weight:    make([]Point, 0, weeks+1),
		Fundal:    make([]Point, 0, weeks+1),
		Hb:        make([]Point, 0, weeks+1),
		Systolic:  make([]Point, 0, weeks+1),
		Diastolic: make([]Point, 0, weeks+1),
		FetalHR:   make([]Point, 0, weeks+1),
	}

	// Week 0: the latest visit's values, flagged as observed.
	prog.Weight = append(prog.Weight, Point{Week: currentWeek, Value: round1(baseWeight), IsActual: true})
	prog.Fundal = append(prog.Fundal, Point{Week: currentWeek, Value: round1(baseFundal), IsActual: true})
	prog.Hb = append(prog.Hb, Point{Week: currentWeek, Value: round1(baseHb), IsActual: true})
	prog.Systolic = append(prog.Systolic, Point{Week: currentWeek, Value: math.Round(baseSys), IsActual: true})
	prog.Diastolic = append(prog.Diastolic, Point{Week: currentWeek, Value: math.Round(baseDia), IsActual: true})
	prog.FetalHR = append(prog.FetalHR, Point{Week: currentWeek, Value: math.Round(baseFHR), IsActual: true})

	for i := 1; i <= weeks; i++ {
		week := currentWeek + i
		// Measured from the earliest visit, so the drift accumulates across
		// the whole history window, not just the projection.
		weeksSinceFirst := historySpan + float64(i)

		weight := baseWeight + weeksSinceFirst*(0.3+weightTrend*0.1)
		prog.Weight = append(prog.Weight, Point{Week: week, Value: round1(weight)})

		// Fundal height tracks gestational age in cm.
		fundal := float64(week) + e.jitter(1)
		prog.Fundal = append(prog.Fundal, Point{Week: week, Value: round1(fundal)})

		hb := baseHb - weeksSinceFirst*(0.05+hbTrend*0.02)
		if hb < hemoglobinFloor {
			hb = hemoglobinFloor
		}
		prog.Hb = append(prog.Hb, Point{Week: week, Value: round1(hb)})

		sys := baseSys + 0.25*float64(i) + e.jitter(1)
		dia := baseDia + 0.15*float64(i) + e.jitter(1)
		prog.Systolic = append(prog.Systolic, Point{Week: week, Value: math.Round(sys)})
		prog.Diastolic = append(prog.Diastolic, Point{Week: week, Value: math.Round(dia)})

		fhr := baseFHR + 2*math.Sin(float64(i)/3) + e.jitter(1.5)
		if fhr < fetalHeartRateMin {
			fhr = fetalHeartRateMin
		}
		if fhr > fetalHeartRateMax {
			fhr = fetalHeartRateMax
		}
		prog.FetalHR = append(prog.FetalHR, Point{Week: week, Value: math.Round(fhr)})
	}

	return prog
}

// jitter returns a uniform random value in [-amplitude, +amplitude].
func (e *Engine) jitter(amplitude float64) float64 {
	return (e.rand.Float64()*2 - 1) * amplitude
}

func valueOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
