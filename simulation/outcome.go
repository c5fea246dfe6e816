package simulation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/blaze-intelligence/sim-engine/models"
)

// hitTier maps a quality threshold to an outcome. Tiers are evaluated from
// the highest threshold down and the first match wins, so a quality exactly
// at a boundary resolves to the better outcome.
type hitTier struct {
	threshold float64
	outcome   models.OutcomeType
	power     float64 // scales exit velocity for this tier
}

var hitTiers = []hitTier{
	{0.9, models.OutcomeHomerun, 1.25},
	{0.8, models.OutcomeTriple, 1.10},
	{0.6, models.OutcomeDouble, 1.00},
	{0.3, models.OutcomeSingle, 0.85},
	{0.0, models.OutcomeGroundout, 0.65},
}

// swingTypeOffset adjusts hit quality for the chosen swing style.
func swingTypeOffset(st models.SwingType) float64 {
	switch st {
	case models.SwingAggressive:
		return 0.2
	case models.SwingContact:
		return -0.1
	case models.SwingDefensive:
		return -0.15
	default:
		return 0.0
	}
}

// ResolveSwing turns a decision into a discrete at-bat result. A take is
// always a neutral no-event (never a called ball or strike); a swing either
// misses or produces a hit-quality roll against the fixed tier table.
func ResolveSwing(d models.Decision, p *models.PlayerProfile, ctx models.GameContext, rng *rand.Rand) models.Outcome {
	if d.Action == models.ActionTake {
		return models.Outcome{
			Type:        models.OutcomeTake,
			Description: "takes the pitch",
			MentalState: d.MentalState,
			Biometrics:  d.Biometrics,
		}
	}

	if rng.Float64() >= d.ContactProbability {
		return models.Outcome{
			Type:        models.OutcomeMiss,
			Description: "swings through it",
			MentalState: d.MentalState,
			Biometrics:  d.Biometrics,
		}
	}

	quality := d.ContactProbability +
		swingTypeOffset(d.SwingType) +
		p.State.Patterns.ClutchFactor*d.Pressure*0.1
	quality = math.Max(0.1, math.Min(0.95, quality))

	// Aggressive swings trade contact for raw power.
	adjusted := quality
	if d.SwingType == models.SwingAggressive {
		adjusted = quality * 1.3
	}

	tier := resolveTier(adjusted)

	outcome := models.Outcome{
		Type:         tier.outcome,
		IsHit:        tier.outcome.IsHit(),
		Bases:        tier.outcome.Bases(),
		HitQuality:   adjusted,
		ExitVelocity: 80.0 + adjusted*tier.power*35.0,
		// Launch angle is a plain uniform draw, decoupled from quality.
		// Inherited behavior, kept deliberately.
		LaunchAngle: 5.0 + rng.Float64()*35.0,
		MentalState: d.MentalState,
		Biometrics:  d.Biometrics,
	}
	outcome.Description = describeOutcome(outcome)

	return outcome
}

// resolveTier walks the tier table from the top; first match wins.
func resolveTier(quality float64) hitTier {
	for _, tier := range hitTiers {
		if quality >= tier.threshold {
			return tier
		}
	}
	return hitTiers[len(hitTiers)-1]
}

func describeOutcome(o models.Outcome) string {
	switch o.Type {
	case models.OutcomeHomerun:
		return fmt.Sprintf("crushes it over the wall, %.0f mph off the bat", o.ExitVelocity)
	case models.OutcomeTriple:
		return fmt.Sprintf("drives one into the gap for a triple, %.0f mph", o.ExitVelocity)
	case models.OutcomeDouble:
		return fmt.Sprintf("laces a double, %.0f mph", o.ExitVelocity)
	case models.OutcomeSingle:
		return fmt.Sprintf("lines a single, %.0f mph", o.ExitVelocity)
	case models.OutcomeGroundout:
		return "rolls over on it, groundout"
	default:
		return string(o.Type)
	}
}
