package simulation

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/blaze-intelligence/sim-engine/models"
	"github.com/blaze-intelligence/sim-engine/momentum"
)

// ErrSessionNotFound is returned when a session ID is unknown.
var ErrSessionNotFound = fmt.Errorf("session not found")

// ErrPlayerNotFound is returned when a player ID is unknown in a session.
var ErrPlayerNotFound = fmt.Errorf("player not found")

// Engine owns all live game sessions. Every mutation goes through engine or
// session methods; there are no package-level singletons.
type Engine struct {
	logger      *logrus.Logger
	momentumCfg momentum.Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewEngine creates an engine with the given momentum calibration.
func NewEngine(momentumCfg momentum.Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		logger:      logger,
		momentumCfg: momentumCfg,
		sessions:    make(map[string]*Session),
	}
}

// Session is one live game: two generated rosters, per-player experience
// buffers and batting lines, and a single momentum analyzer. All fields are
// guarded by mu; callers hold sessions only through the engine.
type Session struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	CreatedAt time.Time `json:"created_at"`

	mu          sync.Mutex
	players     map[string]*models.PlayerProfile
	order       []string // stable player listing order
	experiences map[string]*ExperienceBuffer
	lines       map[string]*BattingLine
	analyzer    *momentum.Analyzer
	rng         *rand.Rand
	atBatSeq    uint64
}

// AtBatResult is the payload returned for one simulated pitch: the external
// simulateAtBat contract plus the momentum swing it produced.
type AtBatResult struct {
	PlayerID    string             `json:"player_id"`
	Decision    models.Decision    `json:"decision"`
	Outcome     models.Outcome     `json:"outcome"`
	Description string             `json:"description"`
	MentalState models.MentalState `json:"mental_state"`
	Biometrics  models.Biometrics  `json:"biometrics"`
	Momentum    *momentum.Swing    `json:"momentum,omitempty"`
}

// PlayerAnalysis is the detailed per-player readout. It is a pure function
// of current state: calling it twice without an intervening at-bat returns
// identical values.
type PlayerAnalysis struct {
	Player          models.PlayerProfile `json:"player"`
	Line            BattingLine          `json:"line"`
	Experiences     int                  `json:"experiences"`
	SwingRate       float64              `json:"swing_rate"`
	HitRate         float64              `json:"hit_rate"`
	LastMentalState models.MentalState   `json:"last_mental_state"`
	LastBiometrics  models.Biometrics    `json:"last_biometrics"`
}

// rosterNames seeds generated rosters; the demo never had real rosters.
var rosterNames = []string{
	"Ace Delgado", "Marcus Webb", "Tommy Nakamura", "Ruben Ortiz",
	"Jake Caldwell", "Devon Price", "Carlos Mendez", "Sam Whitaker",
	"Leo Fontaine",
}

var rosterPositions = []string{"CF", "SS", "1B", "3B", "LF", "RF", "2B", "C", "DH"}

// CreateSession builds a new session with generated rosters. seed == 0 uses
// a time-based seed; a fixed seed makes the whole session deterministic.
func (e *Engine) CreateSession(homeTeam, awayTeam string, rosterSize int, seed int64) *Session {
	if rosterSize <= 0 || rosterSize > len(rosterNames) {
		rosterSize = len(rosterNames)
	}
	rng := newSessionRand()
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	s := &Session{
		ID:          uuid.New().String(),
		HomeTeam:    homeTeam,
		AwayTeam:    awayTeam,
		CreatedAt:   time.Now().UTC(),
		players:     make(map[string]*models.PlayerProfile),
		experiences: make(map[string]*ExperienceBuffer),
		lines:       make(map[string]*BattingLine),
		analyzer:    momentum.NewAnalyzer(e.momentumCfg),
		rng:         rng,
	}

	for i := 0; i < rosterSize; i++ {
		p := models.NewPlayerProfile(rosterNames[i], rosterPositions[i%len(rosterPositions)], rng)
		s.addPlayer(p)
	}

	e.mu.Lock()
	e.sessions[s.ID] = s
	e.mu.Unlock()

	e.logger.WithFields(logrus.Fields{
		"session_id": s.ID,
		"home_team":  homeTeam,
		"away_team":  awayTeam,
		"roster":     rosterSize,
	}).Info("session created")

	return s
}

func newSessionRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Session looks up a live session by ID.
func (e *Engine) Session(id string) (*Session, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, ok := e.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// SessionCount returns the number of live sessions.
func (e *Engine) SessionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

func (s *Session) addPlayer(p *models.PlayerProfile) {
	s.players[p.ID] = p
	s.order = append(s.order, p.ID)
	s.experiences[p.ID] = NewExperienceBuffer(DefaultExperienceDepth)
	s.lines[p.ID] = &BattingLine{}
}

// Players returns the roster in creation order.
func (s *Session) Players() []models.PlayerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PlayerProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.players[id])
	}
	return out
}

// SimulateAtBat runs one full pitch for the given batter: decide, resolve,
// record the experience, adapt session state, fold the outcome into the
// stats line, and translate it into a momentum event. Outs also apply
// momentum decay, per the analyzer's contract.
func (s *Session) SimulateAtBat(playerID string, ctx models.GameContext) (*AtBatResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	decision := Decide(player, ctx, s.rng)
	outcome := ResolveSwing(decision, player, ctx, s.rng)

	exp := models.Experience{
		Context:   ctx,
		Decision:  decision,
		Timestamp: time.Now().UTC(),
	}
	buf := s.experiences[playerID]
	buf.Append(exp)
	buf.CloseLatest(outcome)

	player.State = Adapt(player.State, exp, outcome)
	s.lines[playerID].Record(outcome)
	s.atBatSeq++

	result := &AtBatResult{
		PlayerID:    playerID,
		Decision:    decision,
		Outcome:     outcome,
		Description: fmt.Sprintf("%s %s", player.Name, outcome.Description),
		MentalState: outcome.MentalState,
		Biometrics:  outcome.Biometrics,
	}

	if ev, ok := s.momentumEvent(outcome, ctx, playerID); ok {
		swing := s.analyzer.ProcessEvent(ev)
		result.Momentum = &swing
	}
	if outcome.Type == models.OutcomeGroundout {
		s.analyzer.ApplyDecay()
	}

	return result, nil
}

// RecordEvent folds a UI-originated game event into stats and momentum,
// switching exhaustively over the sealed event set.
func (s *Session) RecordEvent(ev models.GameEvent, ctx models.GameContext) *momentum.Swing {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kind momentum.EventKind

	switch e := ev.(type) {
	case models.PitchEvent:
		// Pitches without a result carry no momentum weight.
		return nil
	case models.SwingEvent:
		var ok bool
		kind, ok = outcomeEventKind(e.Outcome)
		if !ok {
			return nil
		}
	case models.OutEvent:
		kind = momentum.EventGroundout
		if e.DoublePlay {
			kind = momentum.EventDoublePlay
		}
	case models.WalkEvent:
		kind = momentum.EventWalk
	case models.RunEvent:
		kind = momentum.EventRunScored
	default:
		return nil
	}

	swing := s.analyzer.ProcessEvent(momentum.Event{
		Kind:            kind,
		Team:            momentum.Side(ctx.BattingTeam),
		Inning:          ctx.Inning,
		ScoreDiff:       ctx.ScoreDiff(),
		BasesLoaded:     ctx.BasesLoaded(),
		TwoOuts:         ctx.Outs == 2,
		ConsecutiveHits: ctx.ConsecutiveHits,
	})
	s.atBatSeq++
	return &swing
}

// momentumEvent translates an at-bat outcome into a momentum event. The
// consecutive-hit count comes from the batter's live streak, not the caller.
func (s *Session) momentumEvent(outcome models.Outcome, ctx models.GameContext, playerID string) (momentum.Event, bool) {
	kind, ok := outcomeEventKind(outcome.Type)
	if !ok {
		return momentum.Event{}, false
	}

	return momentum.Event{
		Kind:            kind,
		Team:            momentum.Side(ctx.BattingTeam),
		Inning:          ctx.Inning,
		ScoreDiff:       ctx.ScoreDiff(),
		BasesLoaded:     ctx.BasesLoaded(),
		TwoOuts:         ctx.Outs == 2,
		ConsecutiveHits: s.lines[playerID].HitStreak,
	}, true
}

// outcomeEventKind maps at-bat outcomes onto the momentum point table.
// Misses and takes are pitch-level non-events.
func outcomeEventKind(t models.OutcomeType) (momentum.EventKind, bool) {
	switch t {
	case models.OutcomeHomerun:
		return momentum.EventHomerun, true
	case models.OutcomeTriple:
		return momentum.EventTriple, true
	case models.OutcomeDouble:
		return momentum.EventDouble, true
	case models.OutcomeSingle:
		return momentum.EventSingle, true
	case models.OutcomeGroundout:
		return momentum.EventGroundout, true
	case models.OutcomeMiss, models.OutcomeTake:
		return "", false
	default:
		return "", false
	}
}

// Momentum exposes the session's analyzer readout.
func (s *Session) Momentum() (home, away float64) {
	return s.analyzer.Momentum()
}

// MomentumHistory returns up to limit recent momentum entries.
func (s *Session) MomentumHistory(limit int) []momentum.Entry {
	return s.analyzer.History(limit)
}

// ApplyMomentumDecay forwards to the analyzer; exposed for the API layer,
// which calls it per recorded out.
func (s *Session) ApplyMomentumDecay() {
	s.analyzer.ApplyDecay()
}

// ResetMomentum restores the 50/50 baseline.
func (s *Session) ResetMomentum() {
	s.analyzer.Reset()
}

// Line returns a copy of one player's batting line.
func (s *Session) Line(playerID string) (BattingLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[playerID]
	if !ok {
		return BattingLine{}, ErrPlayerNotFound
	}
	return *line, nil
}

// Lines returns every batting line keyed by player ID.
func (s *Session) Lines() map[string]BattingLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]BattingLine, len(s.lines))
	for id, line := range s.lines {
		out[id] = *line
	}
	return out
}

// AtBatSeq returns a counter that advances on every recorded at-bat or
// event; the API layer uses it to invalidate cached analyses.
func (s *Session) AtBatSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.atBatSeq
}

// DetailedAnalysis builds the idempotent per-player readout.
func (s *Session) DetailedAnalysis(playerID string) (*PlayerAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	line := *s.lines[playerID]
	exps := s.experiences[playerID].Snapshot()

	swings := 0
	for _, e := range exps {
		if e.Decision.Action == models.ActionSwing {
			swings++
		}
	}

	analysis := &PlayerAnalysis{
		Player:      *player,
		Line:        line,
		Experiences: len(exps),
	}
	if len(exps) > 0 {
		analysis.SwingRate = float64(swings) / float64(len(exps))
		latest := exps[len(exps)-1]
		analysis.LastMentalState = latest.Decision.MentalState
		analysis.LastBiometrics = latest.Decision.Biometrics
	}
	if line.AtBats > 0 {
		analysis.HitRate = float64(line.Hits) / float64(line.AtBats)
	}

	return analysis, nil
}
