package prediction

// weeklyTrend computes the linear per-week trend of a numeric field across
// the visit history: (last − first) / week span, over visits sorted by
// gestational age. It returns 0 when fewer than two visits exist, when the
// week span is zero, or when either endpoint value is missing.
func weeklyTrend(sorted []Visit, field func(Visit) *float64) float64 {
	if len(sorted) < 2 {
		return 0
	}

	first, last := sorted[0], sorted[len(sorted)-1]
	firstVal, lastVal := field(first), field(last)
	if firstVal == nil || lastVal == nil {
		return 0
	}

	span := last.GestationalAge - first.GestationalAge
	if span == 0 {
		return 0
	}
	return (*lastVal - *firstVal) / span
}
