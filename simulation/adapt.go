package simulation

import "github.com/blaze-intelligence/sim-engine/models"

// Adaptation constants. The pattern learning rate is deliberately tiny
// (0.1 * 0.1): pitch recognition shifts over dozens of at-bats, not one.
const (
	patternLearningRate = 0.01
	highPressureBar     = 0.7

	confidenceHitGain  = 0.05
	confidenceOutLoss  = 0.03
	formHitGain        = 0.03
	formOutLoss        = 0.02
	clutchHitGain      = 0.05
	pressurePerfLoss   = 0.03
	fatiguePerAtBat    = 0.01
)

// Adapt is the pure reducer that nudges a player's session state after a
// resolved experience. It never touches traits; it returns a new state with
// every scalar clamped back to its documented range. Exponential-moving-
// average style reinforcement, not a trained model.
func Adapt(state models.SessionState, exp models.Experience, outcome models.Outcome) models.SessionState {
	next := state

	// Successful contact on a correctly predicted pitch reinforces that
	// pitch's tendency.
	if outcome.IsHit {
		switch exp.Decision.Prediction.Predicted {
		case models.PitchFastball:
			next.Patterns.FastballTendency += patternLearningRate
		case models.PitchChangeup, models.PitchCurveball, models.PitchSlider:
			next.Patterns.OffspeedTendency += patternLearningRate
		}
	}

	switch {
	case outcome.IsHit:
		next.Confidence += confidenceHitGain
		next.CurrentForm += formHitGain
		next.Momentum += formHitGain
	case outcome.Type == models.OutcomeMiss || outcome.Type == models.OutcomeGroundout:
		next.Confidence -= confidenceOutLoss
		next.CurrentForm -= formOutLoss
		next.Momentum -= formOutLoss
	}

	if exp.Decision.Pressure > highPressureBar {
		if outcome.IsHit {
			next.Patterns.ClutchFactor += clutchHitGain
		} else if outcome.Type == models.OutcomeMiss {
			next.Patterns.PressurePerformance -= pressurePerfLoss
		}
	}

	next.Fatigue += fatiguePerAtBat

	return next.Clamped()
}
