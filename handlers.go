package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/blaze-intelligence/sim-engine/models"
	"github.com/blaze-intelligence/sim-engine/simulation"
)

// routes builds the full HTTP surface.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.healthHandler).Methods("GET")
	r.HandleFunc("/metrics", s.metricsHandler).Methods("GET")

	r.HandleFunc("/sessions", s.createSessionHandler).Methods("POST")
	r.HandleFunc("/sessions/{id}", s.sessionHandler).Methods("GET")
	r.HandleFunc("/sessions/{id}/atbat", s.atBatHandler).Methods("POST")
	r.HandleFunc("/sessions/{id}/players", s.playersHandler).Methods("GET")
	r.HandleFunc("/sessions/{id}/players/{pid}/analysis", s.analysisHandler).Methods("GET")
	r.HandleFunc("/sessions/{id}/stats", s.statsHandler).Methods("GET")

	r.HandleFunc("/sessions/{id}/momentum", s.momentumHandler).Methods("GET")
	r.HandleFunc("/sessions/{id}/momentum/event", s.momentumEventHandler).Methods("POST")
	r.HandleFunc("/sessions/{id}/momentum/decay", s.momentumDecayHandler).Methods("POST")
	r.HandleFunc("/sessions/{id}/momentum/reset", s.momentumResetHandler).Methods("POST")

	r.HandleFunc("/sessions/{id}/save", s.saveHandler).Methods("POST")
	r.HandleFunc("/sessions/{id}/restore", s.restoreHandler).Methods("POST")

	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":   "healthy",
		"time":     time.Now().UTC(),
		"sessions": s.engine.SessionCount(),
		"database": "disabled",
	}

	if s.db != nil {
		health["database"] = "connected"
		ctx, cancel := timeoutContext(r, 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			health["database"] = "disconnected"
			health["status"] = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, health)
}

// CreateSessionRequest configures a new game session. Seed is optional;
// fixing it makes the whole session deterministic.
type CreateSessionRequest struct {
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	RosterSize int    `json:"roster_size,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

type SessionResponse struct {
	ID        string                 `json:"id"`
	HomeTeam  string                 `json:"home_team"`
	AwayTeam  string                 `json:"away_team"`
	CreatedAt time.Time              `json:"created_at"`
	Players   []models.PlayerProfile `json:"players"`
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.HomeTeam == "" {
		req.HomeTeam = "Home"
	}
	if req.AwayTeam == "" {
		req.AwayTeam = "Away"
	}

	session := s.engine.CreateSession(req.HomeTeam, req.AwayTeam, req.RosterSize, req.Seed)
	writeJSON(w, http.StatusCreated, sessionResponse(session))
}

func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(session))
}

func sessionResponse(session *simulation.Session) SessionResponse {
	return SessionResponse{
		ID:        session.ID,
		HomeTeam:  session.HomeTeam,
		AwayTeam:  session.AwayTeam,
		CreatedAt: session.CreatedAt,
		Players:   session.Players(),
	}
}

// AtBatRequest is one pitch: which batter, and the full game situation.
type AtBatRequest struct {
	PlayerID string             `json:"player_id"`
	Context  models.GameContext `json:"context"`
}

func (s *Server) atBatHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req AtBatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Context.BattingTeam == "" {
		req.Context.BattingTeam = models.SideHome
	}

	result, err := session.SimulateAtBat(req.PlayerID, req.Context)
	if errors.Is(err, simulation.ErrPlayerNotFound) {
		s.writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("at-bat simulation failed")
		s.writeError(w, http.StatusInternalServerError, "simulation failed")
		return
	}

	// Any at-bat invalidates cached analyses for this session.
	s.cache.InvalidateSession(session.ID)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) playersHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Players())
}

func (s *Server) analysisHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	playerID := mux.Vars(r)["pid"]

	cacheKey := analysisCacheKey(session.ID, playerID, session.AtBatSeq())
	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.IncrementCacheHit()
		writeJSON(w, http.StatusOK, cached)
		return
	}
	s.metrics.IncrementCacheMiss()

	analysis, err := session.DetailedAnalysis(playerID)
	if errors.Is(err, simulation.ErrPlayerNotFound) {
		s.writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	s.cache.Set(cacheKey, session.ID, analysis, s.config.AnalysisCacheTTL)
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Lines())
}

type MomentumResponse struct {
	Home    float64     `json:"home"`
	Away    float64     `json:"away"`
	History interface{} `json:"history,omitempty"`
}

func (s *Server) momentumHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	limit := 20
	if v := r.URL.Query().Get("history"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}

	home, away := session.Momentum()
	resp := MomentumResponse{Home: home, Away: away}
	if limit > 0 {
		resp.History = session.MomentumHistory(limit)
	}
	writeJSON(w, http.StatusOK, resp)
}

// MomentumEventRequest surfaces UI-originated events (walks, double plays,
// runs) that do not flow through the at-bat endpoint.
type MomentumEventRequest struct {
	Kind    string             `json:"kind"` // pitch|swing|out|walk|run
	Outcome models.OutcomeType `json:"outcome,omitempty"`
	Double  bool               `json:"double_play,omitempty"`
	Runs    int                `json:"runs,omitempty"`
	Context models.GameContext `json:"context"`
}

func (s *Server) momentumEventHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req MomentumEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var ev models.GameEvent
	switch req.Kind {
	case "pitch":
		ev = models.PitchEvent{Count: req.Context.Count}
	case "swing":
		ev = models.SwingEvent{Outcome: req.Outcome}
	case "out":
		ev = models.OutEvent{DoublePlay: req.Double}
	case "walk":
		ev = models.WalkEvent{}
	case "run":
		ev = models.RunEvent{Runs: req.Runs}
	default:
		s.writeError(w, http.StatusBadRequest, "unknown event kind")
		return
	}

	swing := session.RecordEvent(ev, req.Context)
	s.cache.InvalidateSession(session.ID)

	if swing == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "no momentum effect"})
		return
	}
	writeJSON(w, http.StatusOK, swing)
}

func (s *Server) momentumDecayHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	session.ApplyMomentumDecay()
	home, away := session.Momentum()
	writeJSON(w, http.StatusOK, MomentumResponse{Home: home, Away: away})
}

func (s *Server) momentumResetHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	session.ResetMomentum()
	home, away := session.Momentum()
	writeJSON(w, http.StatusOK, MomentumResponse{Home: home, Away: away})
}

func (s *Server) saveHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeoutContext(r, 5*time.Second)
	defer cancel()

	id, err := s.store.Save(ctx, session.Snapshot())
	if err != nil {
		s.logger.WithError(err).Error("failed to save snapshot")
		s.writeError(w, http.StatusInternalServerError, "failed to save snapshot")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"snapshot_id": id,
		"session_id":  session.ID,
	})
}

func (s *Server) restoreHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	sessionID := mux.Vars(r)["id"]

	ctx, cancel := timeoutContext(r, 5*time.Second)
	defer cancel()

	snap, err := s.store.LoadLatest(ctx, sessionID)
	if errors.Is(err, simulation.ErrSnapshotNotFound) {
		s.writeError(w, http.StatusNotFound, "no snapshot for session")
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to load snapshot")
		s.writeError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	session := s.engine.RestoreSession(snap)
	s.cache.InvalidateSession(session.ID)
	writeJSON(w, http.StatusOK, sessionResponse(session))
}

// lookupSession resolves the {id} path variable, writing a 404 on miss.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*simulation.Session, bool) {
	session, err := s.engine.Session(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return session, true
}
