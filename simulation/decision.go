package simulation

import (
	"math"
	"math/rand"

	"github.com/blaze-intelligence/sim-engine/models"
)

// Decide runs the full per-pitch decision model for one batter: pressure,
// pitch prediction, swing/take, contact probability, swing type, and the
// display-only mental/biometric readouts. All inputs are defaulted; there
// are no failure conditions.
func Decide(p *models.PlayerProfile, ctx models.GameContext, rng *rand.Rand) models.Decision {
	pressure := PressureScore(ctx)
	prediction := PredictPitch(ctx, p.Traits, rng)

	tendency := swingTendency(p, prediction, pressure)

	action := models.ActionTake
	if rng.Float64() < tendency {
		action = models.ActionSwing
	}

	return models.Decision{
		Action:             action,
		Confidence:         tendency,
		ContactProbability: contactProbability(p, prediction, pressure),
		SwingType:          chooseSwingType(p.Traits, pressure, rng),
		Pressure:           pressure,
		Prediction:         prediction,
		MentalState:        mentalReadout(p, pressure),
		Biometrics:         biometricReadout(p.Traits, pressure),
	}
}

// swingTendency computes the probability the batter offers at this pitch,
// clamped to [0.1, 0.9] so nobody swings always or never.
func swingTendency(p *models.PlayerProfile, pred models.PitchPrediction, pressure float64) float64 {
	t := p.State.Patterns.FastballTendency

	if p.Traits.PressureResponse > 0.5 {
		t -= pressure * 0.1
	} else {
		t += pressure * p.State.Patterns.ClutchFactor * 0.1
	}

	t += 0.2 * pred.Confidence

	if pressure > 0.6 {
		t += p.Traits.KillerInstinct * 0.25
	}

	return math.Max(0.1, math.Min(0.9, t))
}

// effectiveNeural discounts neural efficiency for accumulated fatigue.
func effectiveNeural(t models.Traits, state models.SessionState) float64 {
	return t.NeuralEfficiency * (1.0 - state.Fatigue*0.3)
}

// effectiveFocus decays focus exponentially as the situation tightens.
func effectiveFocus(t models.Traits, pressure float64) float64 {
	return t.FocusIntensity * math.Exp(-pressure*0.5)
}

// contactProbability blends raw skill, the pitch read, processing traits,
// and current form, clamped to [0.1, 0.95].
func contactProbability(p *models.PlayerProfile, pred models.PitchPrediction, pressure float64) float64 {
	raw := rawContactProbability(p, pred, pressure)
	return math.Max(0.1, math.Min(0.95, raw))
}

func rawContactProbability(p *models.PlayerProfile, pred models.PitchPrediction, pressure float64) float64 {
	return p.SkillLevel*0.7 +
		pred.Confidence*0.2 +
		0.15*(effectiveNeural(p.Traits, p.State)+effectiveFocus(p.Traits, pressure)) +
		0.2*(p.State.CurrentForm-0.5)
}

// chooseSwingType picks a swing style by weighted random draw. Killers load
// up, focused hitters shorten up, and pressure pushes everyone defensive.
func chooseSwingType(t models.Traits, pressure float64, rng *rand.Rand) models.SwingType {
	weights := []struct {
		swing  models.SwingType
		weight float64
	}{
		{models.SwingNormal, 1.0},
		{models.SwingAggressive, t.KillerInstinct * (1.0 - pressure*0.3)},
		{models.SwingContact, t.FocusIntensity * 0.8},
		{models.SwingDefensive, pressure * 0.6},
	}

	total := 0.0
	for _, w := range weights {
		total += w.weight
	}

	roll := rng.Float64() * total
	for _, w := range weights {
		roll -= w.weight
		if roll < 0 {
			return w.swing
		}
	}
	return models.SwingNormal
}

// mentalReadout synthesizes the cosmetic mental-state panel. Deterministic
// in pressure, traits, and session confidence.
func mentalReadout(p *models.PlayerProfile, pressure float64) models.MentalState {
	t := p.Traits
	return models.MentalState{
		Composure:         math.Max(0, t.MentalToughness*(1.0-pressure*0.4)),
		FocusPercent:      effectiveFocus(t, pressure) * 100.0,
		ConfidencePercent: p.State.Confidence * 100.0,
		StressPercent:     pressure * (1.0 - t.MentalToughness*0.5) * 100.0,
	}
}

// biometricReadout synthesizes the cosmetic physiology panel. Deterministic
// in pressure and traits.
func biometricReadout(t models.Traits, pressure float64) models.Biometrics {
	stress := pressure * (1.0 - t.MentalToughness*0.3)
	return models.Biometrics{
		HeartRate:       70.0 + stress*55.0,
		HRV:             80.0 - stress*40.0,
		SkinConductance: 2.0 + stress*8.0,
		PupilDilation:   3.0 + stress*2.5,
		BlinkRate:       14.0 + stress*10.0 - t.FocusIntensity*6.0,
	}
}
