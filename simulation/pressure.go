package simulation

import (
	"math"

	"github.com/blaze-intelligence/sim-engine/models"
)

// Situational pressure weights. The sum can exceed 1.0 in extreme spots
// (ninth inning, one-run game, RISP, full count); the result is clamped.
const (
	pressureLateInning   = 0.3 // inning 8 or later
	pressureFinalInning  = 0.2 // additional from inning 9 on
	pressureOneRunGame   = 0.3 // |score diff| <= 1
	pressureCloseGame    = 0.1 // |score diff| <= 3
	pressureRISP         = 0.2 // runner on second or third
	pressureTwoStrikes   = 0.2
	pressureThreeBalls   = 0.1
)

// PressureScore maps a game situation to a 0-1 intensity value. Defined for
// any input; contrived contexts (inning 99, absurd scores) still clamp.
func PressureScore(ctx models.GameContext) float64 {
	p := 0.0

	if ctx.Inning >= 8 {
		p += pressureLateInning
	}
	if ctx.Inning >= 9 {
		p += pressureFinalInning
	}

	switch diff := ctx.ScoreDiff(); {
	case diff <= 1:
		p += pressureOneRunGame
	case diff <= 3:
		p += pressureCloseGame
	}

	if ctx.RunnerInScoringPosition() {
		p += pressureRISP
	}
	if ctx.Count.Strikes == 2 {
		p += pressureTwoStrikes
	}
	if ctx.Count.Balls == 3 {
		p += pressureThreeBalls
	}

	return math.Max(0.0, math.Min(1.0, p))
}
