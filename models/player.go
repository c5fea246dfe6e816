package models

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Personality archetypes derived from trait thresholds.
const (
	PersonalityClutchPerformer    = "clutch_performer"
	PersonalityAggressiveSlugger  = "aggressive_slugger"
	PersonalityCerebralTactician  = "cerebral_tactician"
	PersonalitySteadyVeteran      = "steady_veteran"
	PersonalityBalancedCompetitor = "balanced_competitor"
)

// Traits holds a player's five psychological scalars, each in [0,1].
// Traits are fixed at creation and never mutated afterwards; everything
// that changes during a game lives in SessionState.
type Traits struct {
	MentalToughness  float64 `json:"mental_toughness"`
	KillerInstinct   float64 `json:"killer_instinct"`
	NeuralEfficiency float64 `json:"neural_efficiency"`
	FocusIntensity   float64 `json:"focus_intensity"`
	PressureResponse float64 `json:"pressure_response"`
}

// BattingPatterns holds the pitch-recognition and clutch scalars that the
// adaptation rule nudges after every resolved at-bat.
type BattingPatterns struct {
	FastballTendency    float64 `json:"fastball_tendency"`
	OffspeedTendency    float64 `json:"offspeed_tendency"`
	PressurePerformance float64 `json:"pressure_performance"`
	ClutchFactor        float64 `json:"clutch_factor"`
}

// SessionState is the mutable half of a player: it is only ever replaced
// wholesale by the adaptation reducer, never written in place by callers.
type SessionState struct {
	CurrentForm float64         `json:"current_form"`
	Confidence  float64         `json:"confidence"`
	Fatigue     float64         `json:"fatigue"`
	Momentum    float64         `json:"momentum"`
	Patterns    BattingPatterns `json:"patterns"`
}

// PlayerProfile is created once per player at session setup. Traits and the
// derived personality tag are immutable; State mutates after every at-bat.
type PlayerProfile struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Position    string       `json:"position"`
	SkillLevel  float64      `json:"skill_level"`
	Traits      Traits       `json:"traits"`
	Personality string       `json:"personality"`
	State       SessionState `json:"state"`
}

// championValue draws a single trait scalar from the champion-effect curve:
// a power-skewed uniform that piles weight toward the extremes, with a ~5%
// elite band in [0.85, 1.0].
func championValue(rng *rand.Rand) float64 {
	if rng.Float64() < 0.05 {
		return 0.85 + rng.Float64()*0.15
	}

	u := rng.Float64()
	v := math.Pow(u, 0.75)
	if rng.Float64() < 0.5 {
		// Mirror half the draws so the skew pushes both tails, not just the top.
		v = 1.0 - math.Pow(u, 0.75)*0.9
	}
	return clamp01(v)
}

// GenerateTraits produces a fresh trait set from the champion-effect
// distribution. Every scalar is guaranteed to land in [0,1].
func GenerateTraits(rng *rand.Rand) Traits {
	return Traits{
		MentalToughness:  championValue(rng),
		KillerInstinct:   championValue(rng),
		NeuralEfficiency: championValue(rng),
		FocusIntensity:   championValue(rng),
		PressureResponse: championValue(rng),
	}
}

// ClassifyPersonality matches trait thresholds to one of five archetypes.
// Evaluated top-down, first match wins; balanced competitor is the default.
func ClassifyPersonality(t Traits) string {
	switch {
	case t.PressureResponse >= 0.8 && t.MentalToughness >= 0.7:
		return PersonalityClutchPerformer
	case t.KillerInstinct >= 0.8:
		return PersonalityAggressiveSlugger
	case t.NeuralEfficiency >= 0.8 && t.FocusIntensity >= 0.7:
		return PersonalityCerebralTactician
	case t.MentalToughness >= 0.75:
		return PersonalitySteadyVeteran
	default:
		return PersonalityBalancedCompetitor
	}
}

// NewPlayerProfile creates a player with generated traits and a session
// state initialized from those traits.
func NewPlayerProfile(name, position string, rng *rand.Rand) *PlayerProfile {
	traits := GenerateTraits(rng)

	return &PlayerProfile{
		ID:          uuid.New().String(),
		Name:        name,
		Position:    position,
		SkillLevel:  clampRange(0.40+championValue(rng)*0.55, 0.40, 0.95),
		Traits:      traits,
		Personality: ClassifyPersonality(traits),
		State:       NewSessionState(traits),
	}
}

// NewSessionState seeds the mutable state from a player's traits.
func NewSessionState(t Traits) SessionState {
	return SessionState{
		CurrentForm: 0.5,
		Confidence:  0.5 + t.MentalToughness*0.2,
		Fatigue:     0.0,
		Momentum:    0.5,
		Patterns: BattingPatterns{
			FastballTendency:    0.55 + t.KillerInstinct*0.15,
			OffspeedTendency:    0.35 + t.NeuralEfficiency*0.15,
			PressurePerformance: t.PressureResponse,
			ClutchFactor:        0.4 + t.PressureResponse*0.3,
		},
	}
}

// Clamped returns a copy of the state with every scalar pulled back into its
// documented range. The adaptation reducer calls this after each update.
func (s SessionState) Clamped() SessionState {
	s.CurrentForm = clamp01(s.CurrentForm)
	s.Confidence = clamp01(s.Confidence)
	s.Fatigue = clamp01(s.Fatigue)
	s.Momentum = clamp01(s.Momentum)
	s.Patterns.FastballTendency = clamp01(s.Patterns.FastballTendency)
	s.Patterns.OffspeedTendency = clamp01(s.Patterns.OffspeedTendency)
	s.Patterns.PressurePerformance = clamp01(s.Patterns.PressurePerformance)
	s.Patterns.ClutchFactor = clamp01(s.Patterns.ClutchFactor)
	return s
}

// Describe returns a short scouting line for logs and the session summary.
func (p *PlayerProfile) Describe() string {
	return fmt.Sprintf("%s (%s) skill=%.2f personality=%s",
		p.Name, p.Position, p.SkillLevel, p.Personality)
}

func clamp01(v float64) float64 {
	return clampRange(v, 0.0, 1.0)
}

func clampRange(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
