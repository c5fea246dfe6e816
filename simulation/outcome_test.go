package simulation

import (
	"math/rand"
	"testing"

	"github.com/blaze-intelligence/sim-engine/models"
)

func TestResolveTierBoundaries(t *testing.T) {
	tests := []struct {
		quality float64
		want    models.OutcomeType
	}{
		{0.95, models.OutcomeHomerun},
		{0.90, models.OutcomeHomerun}, // boundary resolves up
		{0.89, models.OutcomeTriple},
		{0.80, models.OutcomeTriple},
		{0.79, models.OutcomeDouble},
		{0.60, models.OutcomeDouble},
		{0.59, models.OutcomeSingle},
		{0.30, models.OutcomeSingle},
		{0.29, models.OutcomeGroundout},
		{0.00, models.OutcomeGroundout},
		{1.20, models.OutcomeHomerun}, // aggressive multiplier can exceed 1.0
	}

	for _, tt := range tests {
		if got := resolveTier(tt.quality).outcome; got != tt.want {
			t.Errorf("resolveTier(%f) = %s, want %s", tt.quality, got, tt.want)
		}
	}
}

func TestResolveSwingTake(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := testPlayer(0.7, models.Traits{})
	d := models.Decision{Action: models.ActionTake}

	o := ResolveSwing(d, p, models.GameContext{}, rng)
	if o.Type != models.OutcomeTake {
		t.Fatalf("take resolved to %s", o.Type)
	}
	if o.IsHit || o.Bases != 0 || o.ExitVelocity != 0 {
		t.Error("take must be a neutral no-event")
	}
}

func TestResolveSwingGuaranteedMiss(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := testPlayer(0.7, models.Traits{})
	d := models.Decision{Action: models.ActionSwing, ContactProbability: 0.0}

	for i := 0; i < 100; i++ {
		o := ResolveSwing(d, p, models.GameContext{}, rng)
		if o.Type != models.OutcomeMiss {
			t.Fatalf("zero contact probability produced %s", o.Type)
		}
	}
}

func TestResolveSwingGuaranteedContact(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := testPlayer(0.7, models.Traits{})
	p.State.Patterns.ClutchFactor = 0.0
	d := models.Decision{
		Action:             models.ActionSwing,
		ContactProbability: 1.0,
		SwingType:          models.SwingNormal,
	}

	for i := 0; i < 100; i++ {
		o := ResolveSwing(d, p, models.GameContext{}, rng)
		if o.Type == models.OutcomeMiss || o.Type == models.OutcomeTake {
			t.Fatalf("certain contact produced %s", o.Type)
		}
		if o.LaunchAngle < 5.0 || o.LaunchAngle >= 40.0 {
			t.Fatalf("launch angle %f outside [5, 40)", o.LaunchAngle)
		}
		if o.ExitVelocity < 80.0 {
			t.Fatalf("exit velocity %f below the 80 mph floor", o.ExitVelocity)
		}
		if o.Description == "" {
			t.Fatal("expected an outcome description")
		}
	}
}

func TestResolveSwingAggressiveMultiplier(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	p := testPlayer(0.7, models.Traits{})
	p.State.Patterns.ClutchFactor = 0.0

	// Contact 0.95 + aggressive offset 0.2 clamps quality at 0.95; the 1.3x
	// power multiplier then lands every ball in play in the homerun tier.
	d := models.Decision{
		Action:             models.ActionSwing,
		ContactProbability: 0.95,
		SwingType:          models.SwingAggressive,
	}

	sawContact := false
	for i := 0; i < 200; i++ {
		o := ResolveSwing(d, p, models.GameContext{}, rng)
		if o.Type == models.OutcomeMiss {
			continue
		}
		sawContact = true
		if o.Type != models.OutcomeHomerun {
			t.Fatalf("max-quality aggressive swing produced %s", o.Type)
		}
		if o.HitQuality < 1.2 {
			t.Fatalf("adjusted quality = %f, want >= 1.2", o.HitQuality)
		}
	}
	if !sawContact {
		t.Fatal("expected at least one ball in play")
	}
}

func TestSwingTypeOffset(t *testing.T) {
	tests := []struct {
		swing models.SwingType
		want  float64
	}{
		{models.SwingAggressive, 0.2},
		{models.SwingContact, -0.1},
		{models.SwingDefensive, -0.15},
		{models.SwingNormal, 0.0},
	}

	for _, tt := range tests {
		if got := swingTypeOffset(tt.swing); got != tt.want {
			t.Errorf("swingTypeOffset(%s) = %f, want %f", tt.swing, got, tt.want)
		}
	}
}
