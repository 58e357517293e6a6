package prediction

import (
	"strings"
	"testing"
)

func TestComposeSummaryBuckets(t *testing.T) {
	dist := DeliveryType{Matured: 0.62, Premature: 0.27, MortalityRisk: 0.11}

	high := composeSummary(RiskScores{Hypertension: 0.9}, dist)
	if !strings.HasPrefix(high, "High-risk") || !strings.Contains(high, "hypertension") {
		t.Errorf("high bucket summary = %q", high)
	}
	if !strings.Contains(high, "27%") {
		t.Errorf("high bucket should cite the premature likelihood, got %q", high)
	}

	moderate := composeSummary(RiskScores{Anemia: 0.5}, dist)
	if !strings.HasPrefix(moderate, "Moderate risk") || !strings.Contains(moderate, "anemia") {
		t.Errorf("moderate bucket summary = %q", moderate)
	}
	if !strings.Contains(moderate, "62%") {
		t.Errorf("moderate bucket should cite the full-term likelihood, got %q", moderate)
	}

	low := composeSummary(RiskScores{BMIRisk: 0.1}, dist)
	if !strings.HasPrefix(low, "Low-risk") || !strings.Contains(low, "BMI-related") {
		t.Errorf("low bucket summary = %q", low)
	}
}

func TestComposeSummaryBucketBoundaries(t *testing.T) {
	dist := DeliveryType{Matured: 0.80, Premature: 0.15, MortalityRisk: 0.05}

	// Exactly 0.7 is moderate, exactly 0.4 is low.
	if got := composeSummary(RiskScores{Anemia: 0.7}, dist); !strings.HasPrefix(got, "Moderate risk") {
		t.Errorf("score 0.7 should bucket as moderate, got %q", got)
	}
	if got := composeSummary(RiskScores{Anemia: 0.4}, dist); !strings.HasPrefix(got, "Low-risk") {
		t.Errorf("score 0.4 should bucket as low, got %q", got)
	}
}

func TestDominantFactor(t *testing.T) {
	name, score := dominantFactor(RiskScores{
		Anemia:            0.2,
		GrowthRestriction: 0.8,
		PretermRisk:       0.6,
	})
	if name != "fetal growth restriction" || score != 0.8 {
		t.Errorf("dominant = %q (%v), want fetal growth restriction (0.8)", name, score)
	}

	// Ties break in enumeration order.
	name, _ = dominantFactor(RiskScores{Anemia: 0.5, Hypertension: 0.5})
	if name != "anemia" {
		t.Errorf("tie broke to %q, want anemia", name)
	}

	name, _ = dominantFactor(RiskScores{})
	if name != "anemia" {
		t.Errorf("all-zero scores broke to %q, want anemia", name)
	}
}
