package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/blaze-intelligence/sim-engine/momentum"
	"github.com/blaze-intelligence/sim-engine/simulation"
)

// Server wires the simulation engine, the optional snapshot store, and the
// HTTP surface together. No globals: everything hangs off this struct.
type Server struct {
	db         *pgxpool.Pool
	store      *simulation.SnapshotStore
	engine     *simulation.Engine
	httpServer *http.Server
	config     *Config
	logger     *logrus.Logger
	cache      *AnalysisCache
	metrics    *Metrics
}

// Config holds all runtime settings, bound from the environment.
type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SmoothingFactor           float64
	DecayRate                 float64
	SignificantShiftThreshold float64
	HistoryLimit              int

	AnalysisCacheTTL time.Duration
	LogLevel         string
	Development      bool
}

// NewConfig reads settings from the environment with local-dev defaults.
func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8081")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "blaze_user")
	v.SetDefault("DB_PASSWORD", "blaze_pass")
	v.SetDefault("DB_NAME", "blaze_sim")
	v.SetDefault("SMOOTHING_FACTOR", 0.15)
	v.SetDefault("DECAY_RATE", 0.05)
	v.SetDefault("SIGNIFICANT_SHIFT_THRESHOLD", 0.4)
	v.SetDefault("HISTORY_LIMIT", 1000)
	v.SetDefault("ANALYSIS_CACHE_TTL", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEVELOPMENT", false)

	return &Config{
		Port:       v.GetString("PORT"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),

		SmoothingFactor:           v.GetFloat64("SMOOTHING_FACTOR"),
		DecayRate:                 v.GetFloat64("DECAY_RATE"),
		SignificantShiftThreshold: v.GetFloat64("SIGNIFICANT_SHIFT_THRESHOLD"),
		HistoryLimit:              v.GetInt("HISTORY_LIMIT"),

		AnalysisCacheTTL: v.GetDuration("ANALYSIS_CACHE_TTL"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		Development:      v.GetBool("DEVELOPMENT"),
	}
}

// newLogger builds the structured logger: JSON in prod, text in dev.
func newLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
		logger.SetLevel(level)
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.WithField("invalid_level", cfg.LogLevel).Warn("invalid LOG_LEVEL, using info")
	}

	if cfg.Development {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// NewServer assembles the service. The snapshot store is optional: when the
// database is unreachable the engine runs in-memory and save/restore return
// 503, logged once here.
func NewServer(cfg *Config) (*Server, error) {
	logger := newLogger(cfg)

	momentumCfg := momentum.Config{
		SmoothingFactor:           cfg.SmoothingFactor,
		DecayRate:                 cfg.DecayRate,
		SignificantShiftThreshold: cfg.SignificantShiftThreshold,
		HistoryLimit:              cfg.HistoryLimit,
	}

	s := &Server{
		config:  cfg,
		logger:  logger,
		engine:  simulation.NewEngine(momentumCfg, logger),
		cache:   NewAnalysisCache(),
		metrics: NewMetrics(),
	}

	db, err := connectDatabase(cfg)
	if err != nil {
		logger.WithError(err).Warn("database unavailable, running without persistence")
	} else {
		s.db = db
		s.store = simulation.NewSnapshotStore(db, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare snapshot schema: %w", err)
		}
	}

	return s, nil
}

func connectDatabase(cfg *Config) (*pgxpool.Pool, error) {
	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	dbConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}

	dbConfig.MaxConns = 8
	dbConfig.MaxConnLifetime = time.Hour
	dbConfig.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Start runs the HTTP server until shutdown.
func (s *Server) Start() error {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      c.Handler(s.routes()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.WithField("port", s.config.Port).Info("starting Blaze sim engine")
	return s.httpServer.ListenAndServe()
}

// Shutdown closes the database pool and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down sim engine")

	if s.db != nil {
		s.db.Close()
	}
	return s.httpServer.Shutdown(ctx)
}

func main() {
	cfg := NewConfig()

	server, err := NewServer(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create server")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.logger.WithError(err).Fatal("server shutdown failed")
		}
		server.logger.Info("server shutdown complete")
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		server.logger.WithError(err).Fatal("server failed to start")
	}
}
