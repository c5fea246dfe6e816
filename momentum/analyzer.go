// Package momentum maintains a two-team 0-100 game-control pair, updated per
// event through a fixed point table, contextual multipliers, smoothing toward
// the 50/50 baseline, and renormalization so the pair always sums to 100.
package momentum

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Side identifies the team an event is credited to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// EventKind enumerates momentum-relevant game events.
type EventKind string

const (
	EventHomerun          EventKind = "homerun"
	EventTriple           EventKind = "triple"
	EventDouble           EventKind = "double"
	EventSingle           EventKind = "single"
	EventWalk             EventKind = "walk"
	EventRunScored        EventKind = "run_scored"
	EventStolenBase       EventKind = "stolen_base"
	EventStrikeout        EventKind = "strikeout"
	EventGroundout        EventKind = "groundout"
	EventFlyout           EventKind = "flyout"
	EventDoublePlay       EventKind = "double_play"
	EventCaughtStealing   EventKind = "caught_stealing"
	EventError            EventKind = "error"
	EventRunnerLeftOnBase EventKind = "runner_left_on_base"
)

// baseShifts is the fixed point table: a positive value raises the acting
// team's momentum, a negative value drains it.
var baseShifts = map[EventKind]float64{
	EventHomerun:          25,
	EventTriple:           15,
	EventDouble:           10,
	EventSingle:           6,
	EventWalk:             3,
	EventRunScored:        12,
	EventStolenBase:       5,
	EventError:            8,
	EventStrikeout:        -6,
	EventGroundout:        -3,
	EventFlyout:           -3,
	EventDoublePlay:       -8,
	EventCaughtStealing:   -5,
	EventRunnerLeftOnBase: -2,
}

// Event carries the context the multipliers key off. ScoreDiff is the
// absolute gap at the time of the event.
type Event struct {
	Kind            EventKind `json:"kind"`
	Team            Side      `json:"team"`
	Inning          int       `json:"inning"`
	ScoreDiff       int       `json:"score_diff"`
	BasesLoaded     bool      `json:"bases_loaded"`
	TwoOuts         bool      `json:"two_outs"`
	ConsecutiveHits int       `json:"consecutive_hits"`
}

// Config tunes smoothing, decay, significance, and history retention.
type Config struct {
	SmoothingFactor           float64
	DecayRate                 float64
	SignificantShiftThreshold float64
	HistoryLimit              int
}

// DefaultConfig returns the shipped calibration. The significance threshold
// is a very high bar against this point table; only stacked-multiplier
// events clear it.
func DefaultConfig() Config {
	return Config{
		SmoothingFactor:           0.15,
		DecayRate:                 0.05,
		SignificantShiftThreshold: 0.4,
		HistoryLimit:              1000,
	}
}

// Swing is the result of processing one event.
type Swing struct {
	Home          float64 `json:"home"`
	Away          float64 `json:"away"`
	Shift         float64 `json:"shift"`
	IsSignificant bool    `json:"is_significant"`
	Description   string  `json:"description"`
}

// Entry is one row of the momentum history log.
type Entry struct {
	Timestamp   time.Time `json:"timestamp"`
	Inning      int       `json:"inning"`
	Kind        EventKind `json:"kind"`
	Team        Side      `json:"team"`
	Shift       float64   `json:"shift"`
	Home        float64   `json:"home"`
	Away        float64   `json:"away"`
	Description string    `json:"description"`
}

// State is the serializable form of an analyzer, used by snapshots.
type State struct {
	Home    float64 `json:"home"`
	Away    float64 `json:"away"`
	History []Entry `json:"history"`
}

// Analyzer holds the momentum pair and its history. Safe for concurrent use.
type Analyzer struct {
	cfg     Config
	mu      sync.Mutex
	home    float64
	away    float64
	history []Entry
}

// NewAnalyzer creates an analyzer at the 50/50 baseline.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultConfig().HistoryLimit
	}
	return &Analyzer{
		cfg:  cfg,
		home: 50,
		away: 50,
	}
}

// ProcessEvent applies one event: base shift, independent multiplicative
// context multipliers, acting team +shift / opponent -shift/2, smoothing
// toward 50, and exact renormalization to a 100 sum. Significance is judged
// on the raw pre-smoothing delta.
func (a *Analyzer) ProcessEvent(ev Event) Swing {
	a.mu.Lock()
	defer a.mu.Unlock()

	shift := baseShifts[ev.Kind]

	if ev.Inning >= 9 {
		shift *= 1.5
	}
	if ev.ScoreDiff <= 2 {
		shift *= 1.3
	}
	if ev.BasesLoaded {
		shift *= 1.4
	}
	if ev.TwoOuts {
		shift *= 1.2
	}
	if ev.ConsecutiveHits > 2 {
		shift *= 1.0 + 0.1*float64(ev.ConsecutiveHits)
	}

	preHome, preAway := a.home, a.away

	if ev.Team == SideHome {
		a.home = clamp(a.home+shift, 0, 100)
		a.away = clamp(a.away-shift/2, 0, 100)
	} else {
		a.away = clamp(a.away+shift, 0, 100)
		a.home = clamp(a.home-shift/2, 0, 100)
	}

	rawDelta := math.Max(math.Abs(a.home-preHome), math.Abs(a.away-preAway))

	a.smooth()
	a.normalize()

	desc := fmt.Sprintf("%s %s: momentum shift %+.1f (now %.1f-%.1f)",
		ev.Team, ev.Kind, shift, a.home, a.away)

	a.appendEntry(Entry{
		Timestamp:   time.Now().UTC(),
		Inning:      ev.Inning,
		Kind:        ev.Kind,
		Team:        ev.Team,
		Shift:       shift,
		Home:        a.home,
		Away:        a.away,
		Description: desc,
	})

	return Swing{
		Home:          a.home,
		Away:          a.away,
		Shift:         shift,
		IsSignificant: rawDelta > a.cfg.SignificantShiftThreshold*100,
		Description:   desc,
	}
}

// ApplyDecay pulls both values DecayRate of the way back toward 50. Called
// by the engine on every recorded out, never automatically.
func (a *Analyzer) ApplyDecay() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.home += (50 - a.home) * a.cfg.DecayRate
	a.away += (50 - a.away) * a.cfg.DecayRate
	a.normalize()
}

// Reset restores the 50/50 baseline and clears the history.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.home, a.away = 50, 50
	a.history = nil
}

// Momentum returns the current pair.
func (a *Analyzer) Momentum() (home, away float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.home, a.away
}

// History returns up to limit of the most recent entries, oldest first.
// limit <= 0 returns everything retained.
func (a *Analyzer) History(limit int) []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, n)
	copy(out, a.history[len(a.history)-n:])
	return out
}

// State exports the analyzer for snapshotting.
func (a *Analyzer) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	hist := make([]Entry, len(a.history))
	copy(hist, a.history)
	return State{Home: a.home, Away: a.away, History: hist}
}

// RestoreState replaces the analyzer contents from a snapshot.
func (a *Analyzer) RestoreState(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.home, a.away = s.Home, s.Away
	a.history = make([]Entry, len(s.History))
	copy(a.history, s.History)
	a.trimHistory()
	a.normalize()
}

// smooth blends both values toward the 50/50 baseline.
func (a *Analyzer) smooth() {
	a.home += (50 - a.home) * a.cfg.SmoothingFactor
	a.away += (50 - a.away) * a.cfg.SmoothingFactor
}

// normalize rescales the pair so home+away == 100 exactly.
func (a *Analyzer) normalize() {
	total := a.home + a.away
	if total <= 0 {
		a.home, a.away = 50, 50
		return
	}
	a.home = a.home / total * 100
	a.away = 100 - a.home
}

func (a *Analyzer) appendEntry(e Entry) {
	a.history = append(a.history, e)
	a.trimHistory()
}

// trimHistory drops the oldest rows past the retention cap. The source kept
// this log unbounded; bounding it is a deliberate change.
func (a *Analyzer) trimHistory() {
	if over := len(a.history) - a.cfg.HistoryLimit; over > 0 {
		a.history = append(a.history[:0], a.history[over:]...)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
