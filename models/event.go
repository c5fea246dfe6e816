package models

// GameEvent is the closed set of things that can happen on one pitch.
// Consumers switch exhaustively on the concrete type; the unexported method
// keeps the set sealed to this package.
type GameEvent interface {
	gameEvent()
}

// PitchEvent records a pitch thrown with no swing result attached.
type PitchEvent struct {
	Pitch PitchType `json:"pitch"`
	Count Count     `json:"count"`
}

// SwingEvent records a swing and its resolved outcome.
type SwingEvent struct {
	Outcome      OutcomeType `json:"outcome"`
	SwingType    SwingType   `json:"swing_type"`
	ExitVelocity float64     `json:"exit_velocity,omitempty"`
}

// OutEvent records an out being made.
type OutEvent struct {
	DoublePlay bool `json:"double_play,omitempty"`
}

// WalkEvent records a free pass.
type WalkEvent struct{}

// RunEvent records runs crossing the plate.
type RunEvent struct {
	Runs int `json:"runs"`
}

func (PitchEvent) gameEvent() {}
func (SwingEvent) gameEvent() {}
func (OutEvent) gameEvent()   {}
func (WalkEvent) gameEvent()  {}
func (RunEvent) gameEvent()   {}
