package simulation

import "github.com/blaze-intelligence/sim-engine/models"

// BattingLine tracks one player's counting stats for the session.
type BattingLine struct {
	PlateAppearances int     `json:"plate_appearances"`
	AtBats           int     `json:"at_bats"`
	Hits             int     `json:"hits"`
	Singles          int     `json:"singles"`
	Doubles          int     `json:"doubles"`
	Triples          int     `json:"triples"`
	HomeRuns         int     `json:"home_runs"`
	Groundouts       int     `json:"groundouts"`
	Misses           int     `json:"misses"`
	Takes            int     `json:"takes"`
	Average          float64 `json:"average"`
	HitStreak        int     `json:"hit_streak"` // consecutive hits, resets on any out
}

// Record folds one outcome into the line. Takes count as a plate appearance
// only; this model never converts takes into balls or strikes.
func (bl *BattingLine) Record(outcome models.Outcome) {
	bl.PlateAppearances++

	switch outcome.Type {
	case models.OutcomeTake:
		bl.Takes++
		return
	case models.OutcomeMiss:
		bl.Misses++
		return
	}

	bl.AtBats++

	switch outcome.Type {
	case models.OutcomeSingle:
		bl.Singles++
	case models.OutcomeDouble:
		bl.Doubles++
	case models.OutcomeTriple:
		bl.Triples++
	case models.OutcomeHomerun:
		bl.HomeRuns++
	case models.OutcomeGroundout:
		bl.Groundouts++
	}

	if outcome.IsHit {
		bl.Hits++
		bl.HitStreak++
	} else {
		bl.HitStreak = 0
	}

	if bl.AtBats > 0 {
		bl.Average = float64(bl.Hits) / float64(bl.AtBats)
	}
}
