package simulation

import (
	"testing"

	"github.com/blaze-intelligence/sim-engine/models"
)

func TestBattingLineRecord(t *testing.T) {
	var line BattingLine

	record := func(typ models.OutcomeType) {
		line.Record(models.Outcome{Type: typ, IsHit: typ.IsHit()})
	}

	record(models.OutcomeSingle)
	record(models.OutcomeHomerun)
	record(models.OutcomeTake)
	record(models.OutcomeMiss)
	record(models.OutcomeGroundout)
	record(models.OutcomeDouble)

	if line.PlateAppearances != 6 {
		t.Errorf("PlateAppearances = %d, want 6", line.PlateAppearances)
	}
	// Takes and misses never count as at-bats in this model.
	if line.AtBats != 4 {
		t.Errorf("AtBats = %d, want 4", line.AtBats)
	}
	if line.Hits != 3 {
		t.Errorf("Hits = %d, want 3", line.Hits)
	}
	if line.Takes != 1 || line.Misses != 1 || line.Groundouts != 1 {
		t.Errorf("takes/misses/groundouts = %d/%d/%d, want 1/1/1",
			line.Takes, line.Misses, line.Groundouts)
	}
	if want := 0.75; line.Average != want {
		t.Errorf("Average = %f, want %f", line.Average, want)
	}
}

func TestBattingLineHitStreak(t *testing.T) {
	var line BattingLine

	line.Record(models.Outcome{Type: models.OutcomeSingle, IsHit: true})
	line.Record(models.Outcome{Type: models.OutcomeDouble, IsHit: true})
	if line.HitStreak != 2 {
		t.Fatalf("HitStreak = %d, want 2", line.HitStreak)
	}

	// Misses and takes do not touch the streak.
	line.Record(models.Outcome{Type: models.OutcomeMiss})
	line.Record(models.Outcome{Type: models.OutcomeTake})
	if line.HitStreak != 2 {
		t.Fatalf("HitStreak after miss/take = %d, want 2", line.HitStreak)
	}

	// A ball in play for an out resets it.
	line.Record(models.Outcome{Type: models.OutcomeGroundout})
	if line.HitStreak != 0 {
		t.Fatalf("HitStreak after groundout = %d, want 0", line.HitStreak)
	}
}
