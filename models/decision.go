package models

import "time"

// PitchType enumerates the pitch mix the predictor reasons over.
type PitchType string

const (
	PitchFastball  PitchType = "fastball"
	PitchChangeup  PitchType = "changeup"
	PitchCurveball PitchType = "curveball"
	PitchSlider    PitchType = "slider"
)

// SwingType selects the contact/power tradeoff for a swing.
type SwingType string

const (
	SwingNormal     SwingType = "normal"
	SwingAggressive SwingType = "aggressive"
	SwingContact    SwingType = "contact"
	SwingDefensive  SwingType = "defensive"
)

// Action is the batter's choice on one pitch.
type Action string

const (
	ActionSwing Action = "swing"
	ActionTake  Action = "take"
)

// OutcomeType enumerates at-bat results. Hit tiers are resolved from fixed
// quality thresholds; a take never produces a called ball or strike in this
// model.
type OutcomeType string

const (
	OutcomeHomerun   OutcomeType = "homerun"
	OutcomeTriple    OutcomeType = "triple"
	OutcomeDouble    OutcomeType = "double"
	OutcomeSingle    OutcomeType = "single"
	OutcomeGroundout OutcomeType = "groundout"
	OutcomeMiss      OutcomeType = "miss"
	OutcomeTake      OutcomeType = "take"
)

// IsHit reports whether the outcome put the ball in play for a base hit.
func (o OutcomeType) IsHit() bool {
	switch o {
	case OutcomeHomerun, OutcomeTriple, OutcomeDouble, OutcomeSingle:
		return true
	}
	return false
}

// Bases returns bases gained by the batter for this outcome.
func (o OutcomeType) Bases() int {
	switch o {
	case OutcomeHomerun:
		return 4
	case OutcomeTriple:
		return 3
	case OutcomeDouble:
		return 2
	case OutcomeSingle:
		return 1
	default:
		return 0
	}
}

// PitchPrediction is the predictor's read on the next pitch. Probabilities
// are accuracy-scaled and deliberately left unnormalized; Predicted is the
// arg-max of the scaled distribution.
type PitchPrediction struct {
	Probabilities map[PitchType]float64 `json:"probabilities"`
	Predicted     PitchType             `json:"predicted"`
	Confidence    float64               `json:"confidence"`
	Accuracy      float64               `json:"accuracy"`
}

// MentalState is a display-only readout derived from pressure and traits.
// It is never fed back into decisions.
type MentalState struct {
	Composure         float64 `json:"composure"`
	FocusPercent      float64 `json:"focus_percent"`
	ConfidencePercent float64 `json:"confidence_percent"`
	StressPercent     float64 `json:"stress_percent"`
}

// Biometrics is a synthesized physiological readout, also display-only.
type Biometrics struct {
	HeartRate       float64 `json:"heart_rate"`
	HRV             float64 `json:"hrv"`
	SkinConductance float64 `json:"skin_conductance"`
	PupilDilation   float64 `json:"pupil_dilation"`
	BlinkRate       float64 `json:"blink_rate"`
}

// Decision is the output of one decision call. It is ephemeral: the outcome
// resolver and logging consume it immediately.
type Decision struct {
	Action             Action          `json:"action"`
	Confidence         float64         `json:"confidence"`
	ContactProbability float64         `json:"contact_probability"`
	SwingType          SwingType       `json:"swing_type"`
	Pressure           float64         `json:"pressure"`
	Prediction         PitchPrediction `json:"prediction"`
	MentalState        MentalState     `json:"mental_state"`
	Biometrics         Biometrics      `json:"biometrics"`
}

// Outcome is the resolved result of one pitch.
type Outcome struct {
	Type         OutcomeType `json:"type"`
	IsHit        bool        `json:"is_hit"`
	Bases        int         `json:"bases"`
	HitQuality   float64     `json:"hit_quality,omitempty"`
	ExitVelocity float64     `json:"exit_velocity,omitempty"` // mph
	LaunchAngle  float64     `json:"launch_angle,omitempty"`  // degrees
	Description  string      `json:"description"`
	MentalState  MentalState `json:"mental_state"`
	Biometrics   Biometrics  `json:"biometrics"`
}

// Experience records one decision and its eventual outcome. Outcome stays
// nil until the resolver closes it out; only the adaptation rule reads these.
type Experience struct {
	Context   GameContext `json:"context"`
	Decision  Decision    `json:"decision"`
	Timestamp time.Time   `json:"timestamp"`
	Outcome   *Outcome    `json:"outcome,omitempty"`
}
