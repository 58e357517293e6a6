// Package prediction implements the rule-based obstetric outcome engine: it
// normalizes raw visit records, scores clinical risk factors, derives
// delivery-type and delivery-mode probability distributions, and projects
// weekly vital-sign trajectories up to gestational week 40. The engine is
// pure computation, with no storage, transport, or caching, and every
// invocation is independent and reentrant.
package prediction

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	termWeek        = 40
	maxProjectWeeks = 12

	sourceRuleEngine = "rule-engine"
	sourceFallback   = "fallback"
)

// fallbackSummary is returned whenever a personalized prediction cannot be
// computed.
const fallbackSummary = "Insufficient visit history for a personalized prediction; population baseline estimates are shown."

// Jitter supplies the bounded randomness used by the progression
// synthesizer. Tests inject a fixed source for deterministic output.
type Jitter interface {
	Float64() float64
}

// globalRand delegates to math/rand's process-wide source, which is safe for
// concurrent use.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Engine computes obstetric outcome predictions. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	rand Jitter
	now  func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithJitter replaces the progression jitter source.
func WithJitter(j Jitter) Option {
	return func(e *Engine) { e.rand = j }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a prediction engine with the default randomness and
// clock sources.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rand: globalRand{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Predict produces a complete prediction from raw visit records and a
// patient profile. It never fails: malformed fields degrade to rule
// defaults, an empty or exhausted visit history yields the fixed fallback
// result, and an internal fault is recovered into the fallback result with a
// diagnostic attached.
func (e *Engine) Predict(visits []Record, patient Record) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = e.fallback(0, 0)
			result.Diagnostic = fmt.Sprintf("prediction fault: %v", r)
		}
	}()

	normalized := NormalizeVisits(visits)
	if len(normalized) == 0 {
		return e.fallback(0, 0)
	}

	sorted := sortByGestationalAge(normalized)
	latest := sorted[len(sorted)-1]
	currentWeek := int(latest.GestationalAge)

	weeks := termWeek - currentWeek
	if weeks > maxProjectWeeks {
		weeks = maxProjectWeeks
	}
	if weeks <= 0 {
		return e.fallback(currentWeek, len(normalized))
	}

	scores := ScoreRisks(latest, patient, sorted)
	deliveryType := deliveryTypeDistribution(scores)
	deliveryMode := deliveryModeDistribution(scores, patient)

	return &Result{
		DeliveryType: deliveryType,
		DeliveryMode: deliveryMode,
		Progression:  e.synthesize(sorted, weeks),
		Summary:      composeSummary(scores, deliveryType),
		Metadata: Metadata{
			CurrentGestationalAge: currentWeek,
			WeeksProjected:        weeks,
			VisitCount:            len(normalized),
			RiskScores:            scores,
			GeneratedAt:           e.now().UTC(),
			Source:                sourceRuleEngine,
		},
	}
}

// fallback builds the fixed, data-independent result used when no
// personalized prediction is possible.
func (e *Engine) fallback(currentWeek, visitCount int) *Result {
	return &Result{
		DeliveryType: DeliveryType{Matured: 0.80, Premature: 0.15, MortalityRisk: 0.05},
		DeliveryMode: DeliveryMode{Normal: 0.70, CSection: 0.30},
		Progression: Progression{
			Weight:    []Point{},
			Fundal:    []Point{},
			Hb:        []Point{},
			Systolic:  []Point{},
			Diastolic: []Point{},
			FetalHR:   []Point{},
		},
		Summary: fallbackSummary,
		Metadata: Metadata{
			CurrentGestationalAge: currentWeek,
			WeeksProjected:        0,
			VisitCount:            visitCount,
			GeneratedAt:           e.now().UTC(),
			Source:                sourceFallback,
		},
		IsFallback: true,
	}
}
