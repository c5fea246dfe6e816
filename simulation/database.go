package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/blaze-intelligence/sim-engine/models"
	"github.com/blaze-intelligence/sim-engine/momentum"
)

// SnapshotSchemaVersion tags every persisted snapshot. Loading dispatches on
// this value; unknown versions are an error, never a silent fallback.
const SnapshotSchemaVersion = 1

// ErrSnapshotNotFound is returned when no snapshot exists for a session.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the versioned serialized form of one session.
type Snapshot struct {
	SchemaVersion int                          `json:"schema_version"`
	SessionID     string                       `json:"session_id"`
	HomeTeam      string                       `json:"home_team"`
	AwayTeam      string                       `json:"away_team"`
	Players       []models.PlayerProfile       `json:"players"`
	Experiences   map[string][]models.Experience `json:"experiences"`
	Lines         map[string]BattingLine       `json:"lines"`
	Momentum      momentum.State               `json:"momentum"`
	CreatedAt     time.Time                    `json:"created_at"`
}

// SnapshotStore persists session snapshots to Postgres as versioned JSONB
// blobs.
type SnapshotStore struct {
	db     *pgxpool.Pool
	logger *logrus.Logger
}

// NewSnapshotStore wraps a connection pool.
func NewSnapshotStore(db *pgxpool.Pool, logger *logrus.Logger) *SnapshotStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &SnapshotStore{db: db, logger: logger}
}

// EnsureSchema creates the snapshot table when missing.
func (st *SnapshotStore) EnsureSchema(ctx context.Context) error {
	_, err := st.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS session_snapshots (
			id             UUID PRIMARY KEY,
			session_id     UUID NOT NULL,
			schema_version INT NOT NULL,
			snapshot       JSONB NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create snapshot table: %w", err)
	}

	_, err = st.db.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_session_snapshots_session
		ON session_snapshots (session_id, created_at DESC)
	`)
	if err != nil {
		return fmt.Errorf("failed to create snapshot index: %w", err)
	}

	return nil
}

// Save writes one snapshot and returns its ID.
func (st *SnapshotStore) Save(ctx context.Context, snap *Snapshot) (string, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	id := uuid.New().String()
	_, err = st.db.Exec(ctx, `
		INSERT INTO session_snapshots (id, session_id, schema_version, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, snap.SessionID, snap.SchemaVersion, raw, snap.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to store snapshot: %w", err)
	}

	st.logger.WithFields(logrus.Fields{
		"snapshot_id": id,
		"session_id":  snap.SessionID,
		"bytes":       len(raw),
	}).Debug("snapshot saved")

	return id, nil
}

// LoadLatest returns the most recent snapshot for a session.
func (st *SnapshotStore) LoadLatest(ctx context.Context, sessionID string) (*Snapshot, error) {
	var raw []byte
	err := st.db.QueryRow(ctx, `
		SELECT snapshot FROM session_snapshots
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, sessionID).Scan(&raw)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return DecodeSnapshot(raw)
}

// DecodeSnapshot parses a serialized snapshot, dispatching on its schema
// version. This is the explicit migration point: new versions get a case
// here with an upgrade path, unknown versions fail loudly.
func DecodeSnapshot(raw []byte) (*Snapshot, error) {
	var probe struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot envelope: %w", err)
	}

	switch probe.SchemaVersion {
	case SnapshotSchemaVersion:
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse v%d snapshot: %w", SnapshotSchemaVersion, err)
		}
		return &snap, nil
	default:
		return nil, fmt.Errorf("unknown snapshot schema version %d", probe.SchemaVersion)
	}
}

// Snapshot exports a session into its serializable form.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]models.PlayerProfile, 0, len(s.order))
	experiences := make(map[string][]models.Experience, len(s.order))
	lines := make(map[string]BattingLine, len(s.order))
	for _, id := range s.order {
		players = append(players, *s.players[id])
		experiences[id] = s.experiences[id].Snapshot()
		lines[id] = *s.lines[id]
	}

	return &Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		SessionID:     s.ID,
		HomeTeam:      s.HomeTeam,
		AwayTeam:      s.AwayTeam,
		Players:       players,
		Experiences:   experiences,
		Lines:         lines,
		Momentum:      s.analyzer.State(),
		CreatedAt:     time.Now().UTC(),
	}
}

// RestoreSession rebuilds a live session from a snapshot and registers it,
// replacing any live session with the same ID.
func (e *Engine) RestoreSession(snap *Snapshot) *Session {
	s := &Session{
		ID:          snap.SessionID,
		HomeTeam:    snap.HomeTeam,
		AwayTeam:    snap.AwayTeam,
		CreatedAt:   snap.CreatedAt,
		players:     make(map[string]*models.PlayerProfile),
		experiences: make(map[string]*ExperienceBuffer),
		lines:       make(map[string]*BattingLine),
		analyzer:    momentum.NewAnalyzer(e.momentumCfg),
		rng:         newSessionRand(),
	}

	for i := range snap.Players {
		p := snap.Players[i]
		s.addPlayer(&p)
		if exps, ok := snap.Experiences[p.ID]; ok {
			s.experiences[p.ID].Restore(exps)
		}
		if line, ok := snap.Lines[p.ID]; ok {
			*s.lines[p.ID] = line
		}
	}
	s.analyzer.RestoreState(snap.Momentum)

	e.mu.Lock()
	e.sessions[s.ID] = s
	e.mu.Unlock()

	e.logger.WithFields(logrus.Fields{
		"session_id": s.ID,
		"players":    len(snap.Players),
	}).Info("session restored from snapshot")

	return s
}
