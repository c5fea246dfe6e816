package models

import "testing"

func TestScoreDiff(t *testing.T) {
	tests := []struct {
		home, away, want int
	}{
		{3, 2, 1},
		{2, 3, 1},
		{5, 5, 0},
		{0, 10, 10},
	}

	for _, tt := range tests {
		ctx := GameContext{HomeScore: tt.home, AwayScore: tt.away}
		if got := ctx.ScoreDiff(); got != tt.want {
			t.Errorf("ScoreDiff(%d-%d) = %d, want %d", tt.home, tt.away, got, tt.want)
		}
	}
}

func TestRunnerInScoringPosition(t *testing.T) {
	tests := []struct {
		name    string
		runners []Base
		want    bool
	}{
		{"empty", nil, false},
		{"first only", []Base{BaseFirst}, false},
		{"second", []Base{BaseSecond}, true},
		{"third", []Base{BaseThird}, true},
		{"first and third", []Base{BaseFirst, BaseThird}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := GameContext{RunnersOn: tt.runners}
			if got := ctx.RunnerInScoringPosition(); got != tt.want {
				t.Errorf("RunnerInScoringPosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBasesLoaded(t *testing.T) {
	loaded := GameContext{RunnersOn: []Base{BaseFirst, BaseSecond, BaseThird}}
	if !loaded.BasesLoaded() {
		t.Error("expected bases loaded")
	}

	partial := GameContext{RunnersOn: []Base{BaseFirst, BaseThird}}
	if partial.BasesLoaded() {
		t.Error("first and third is not bases loaded")
	}
}

func TestSideOpponent(t *testing.T) {
	if SideHome.Opponent() != SideAway {
		t.Error("home opponent should be away")
	}
	if SideAway.Opponent() != SideHome {
		t.Error("away opponent should be home")
	}
}

func TestOutcomeTypeHelpers(t *testing.T) {
	tests := []struct {
		outcome OutcomeType
		isHit   bool
		bases   int
	}{
		{OutcomeHomerun, true, 4},
		{OutcomeTriple, true, 3},
		{OutcomeDouble, true, 2},
		{OutcomeSingle, true, 1},
		{OutcomeGroundout, false, 0},
		{OutcomeMiss, false, 0},
		{OutcomeTake, false, 0},
	}

	for _, tt := range tests {
		if got := tt.outcome.IsHit(); got != tt.isHit {
			t.Errorf("%s.IsHit() = %v, want %v", tt.outcome, got, tt.isHit)
		}
		if got := tt.outcome.Bases(); got != tt.bases {
			t.Errorf("%s.Bases() = %d, want %d", tt.outcome, got, tt.bases)
		}
	}
}
