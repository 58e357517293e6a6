package prediction

import (
	"sort"
	"strconv"
	"strings"
)

// NormalizeVisits validates and projects raw visit records into Visit values.
// Records without a positive gestational age are discarded. The relative
// order of the surviving records is preserved; callers that need
// chronological order sort separately.
//
// Field coercion is deliberately falsy: absent, nil, zero, and empty-string
// values all normalize to nil. A genuine zero measurement is therefore
// treated as missing; this matches the upstream warehouse export contract
// and must not be "fixed" here.
func NormalizeVisits(raw []Record) []Visit {
	if len(raw) == 0 {
		return nil
	}

	visits := make([]Visit, 0, len(raw))
	for _, rec := range raw {
		if rec == nil {
			continue
		}
		ga := numField(rec, FieldGestationalAge)
		if ga == nil || *ga <= 0 {
			continue
		}
		visits = append(visits, Visit{
			GestationalAge: *ga,
			Weight:         numField(rec, FieldMaternalWeight),
			FundalHeight:   numField(rec, FieldFundalHeight),
			Hemoglobin:     numField(rec, FieldHemoglobin),
			BloodPressure:  strField(rec, FieldBloodPressure),
			FetalHeartRate: numField(rec, FieldFetalHeartRate),
			Complications:  strField(rec, FieldComplications),
			VisitDate:      strField(rec, FieldVisitDate),
		})
	}
	return visits
}

// sortByGestationalAge returns a copy of visits sorted ascending by
// gestational age. The sort is stable so same-week visits keep their
// original relative order.
func sortByGestationalAge(visits []Visit) []Visit {
	sorted := make([]Visit, len(visits))
	copy(sorted, visits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GestationalAge < sorted[j].GestationalAge
	})
	return sorted
}

// numField extracts a numeric field, returning nil for absent, zero, or
// unparseable values.
func numField(rec Record, key string) *float64 {
	v, ok := rec[key]
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok || f == 0 {
		return nil
	}
	return &f
}

// strField extracts a string field, returning nil for absent or empty values.
func strField(rec Record, key string) *string {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// toFloat coerces the numeric types a warehouse row can carry. String values
// are parsed; anything else reports false.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
