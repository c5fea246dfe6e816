package simulation

import (
	"math"
	"math/rand"

	"github.com/blaze-intelligence/sim-engine/models"
)

// basePitchDistribution returns the starting pitch-mix guess before count
// and archetype adjustments. Values are weights, not a normalized
// distribution; the arg-max is all the decision maker consumes.
func basePitchDistribution() map[models.PitchType]float64 {
	return map[models.PitchType]float64{
		models.PitchFastball:  0.60,
		models.PitchChangeup:  0.15,
		models.PitchCurveball: 0.15,
		models.PitchSlider:    0.10,
	}
}

// archetypeAdjust leans the distribution toward what this pitcher actually
// throws.
func archetypeAdjust(dist map[models.PitchType]float64, arch models.PitcherArchetype) {
	switch arch {
	case models.PitcherPowerArm:
		dist[models.PitchFastball] += 0.10
	case models.PitcherFinesse:
		dist[models.PitchFastball] -= 0.05
		dist[models.PitchChangeup] += 0.10
	case models.PitcherJunkballer:
		dist[models.PitchFastball] -= 0.15
		dist[models.PitchChangeup] += 0.05
		dist[models.PitchCurveball] += 0.05
		dist[models.PitchSlider] += 0.05
	}
}

// PredictPitch builds the batter's read on the next pitch. Count logic first
// (pitchers pump fastballs behind in the count and bury breaking balls at
// two strikes), then every weight is scaled by the batter's prediction
// accuracy perturbed with noise: accuracy = 0.3 + 0.7*NeuralEfficiency, so a
// sharper batter sees through the noise more often.
func PredictPitch(ctx models.GameContext, traits models.Traits, rng *rand.Rand) models.PitchPrediction {
	dist := basePitchDistribution()
	archetypeAdjust(dist, ctx.PitcherArchetype)

	if ctx.Count.Balls > ctx.Count.Strikes {
		dist[models.PitchFastball] += 0.20
	}
	if ctx.Count.Strikes == 2 {
		dist[models.PitchCurveball] += 0.20
		dist[models.PitchSlider] += 0.15
	}

	accuracy := 0.3 + 0.7*traits.NeuralEfficiency

	predicted := models.PitchFastball
	best := math.Inf(-1)
	for pitch, weight := range dist {
		scaled := weight * (accuracy + rng.Float64()*(1.0-accuracy))
		dist[pitch] = scaled
		if scaled > best || (scaled == best && pitch == models.PitchFastball) {
			best = scaled
			predicted = pitch
		}
	}

	return models.PitchPrediction{
		Probabilities: dist,
		Predicted:     predicted,
		Confidence:    math.Max(0.0, math.Min(1.0, best)),
		Accuracy:      accuracy,
	}
}
