package models

// Side identifies which team acted or is batting.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// Base identifies an occupied base.
type Base string

const (
	BaseFirst  Base = "first"
	BaseSecond Base = "second"
	BaseThird  Base = "third"
)

// PitcherArchetype biases the pitch predictor's base distribution.
type PitcherArchetype string

const (
	PitcherPowerArm   PitcherArchetype = "power"
	PitcherFinesse    PitcherArchetype = "finesse"
	PitcherJunkballer PitcherArchetype = "junkballer"
	PitcherBalanced   PitcherArchetype = "balanced"
)

// Count represents balls and strikes.
type Count struct {
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

// GameContext is the read-only situation snapshot fed to every decision
// call. It is constructed fresh per pitch and never persisted; decision
// functions must not retain or mutate it.
type GameContext struct {
	Inning           int              `json:"inning"`
	Half             string           `json:"half"` // "top" or "bottom"
	Outs             int              `json:"outs"`
	Count            Count            `json:"count"`
	HomeScore        int              `json:"home_score"`
	AwayScore        int              `json:"away_score"`
	RunnersOn        []Base           `json:"runners_on"`
	BattingTeam      Side             `json:"batting_team"`
	PitcherArchetype PitcherArchetype `json:"pitcher_archetype"`
	ConsecutiveHits  int              `json:"consecutive_hits"`
}

// ScoreDiff returns the absolute score gap.
func (c GameContext) ScoreDiff() int {
	d := c.HomeScore - c.AwayScore
	if d < 0 {
		return -d
	}
	return d
}

// RunnerInScoringPosition reports a runner on second or third.
func (c GameContext) RunnerInScoringPosition() bool {
	for _, b := range c.RunnersOn {
		if b == BaseSecond || b == BaseThird {
			return true
		}
	}
	return false
}

// BasesLoaded reports runners on all three bases.
func (c GameContext) BasesLoaded() bool {
	var first, second, third bool
	for _, b := range c.RunnersOn {
		switch b {
		case BaseFirst:
			first = true
		case BaseSecond:
			second = true
		case BaseThird:
			third = true
		}
	}
	return first && second && third
}
