// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/sim.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// League registry — per-league model calibration
// --------------------------------------------------------------------------

// LeagueConfig carries the fixed calibration constants for one league.
// These are deliberately constants rather than values recomputed from data,
// so strength estimates stay stable across small samples.
type LeagueConfig struct {
	ID              string
	Name            string
	FeedCode        string // football-data.co.uk division code
	Teams           int
	BaseHomeGoals   float64 // league average goals for the home side
	BaseAwayGoals   float64 // league average goals for the away side
	AvgGoalsPerTeam float64 // league average goals per team per match
	CurrentSeason   string
}

// Rounds returns the number of rounds in a full double round-robin.
func (l LeagueConfig) Rounds() int {
	return 2 * (l.Teams - 1)
}

var LeagueRegistry = map[string]LeagueConfig{
	"L1": {ID: "L1", Name: "Ligue 1", FeedCode: "F1", Teams: 18, BaseHomeGoals: 1.45, BaseAwayGoals: 1.25, AvgGoalsPerTeam: 1.35, CurrentSeason: "2025-2026"},
	"PL": {ID: "PL", Name: "Premier League", FeedCode: "E0", Teams: 20, BaseHomeGoals: 1.50, BaseAwayGoals: 1.25, AvgGoalsPerTeam: 1.40, CurrentSeason: "2025-2026"},
	"BL": {ID: "BL", Name: "Bundesliga", FeedCode: "D1", Teams: 18, BaseHomeGoals: 1.60, BaseAwayGoals: 1.35, AvgGoalsPerTeam: 1.50, CurrentSeason: "2025-2026"},
}

// League returns the registry entry for a league code, or an error listing
// the valid codes.
func League(code string) (LeagueConfig, error) {
	if l, ok := LeagueRegistry[code]; ok {
		return l, nil
	}
	codes := make([]string, 0, len(LeagueRegistry))
	for c := range LeagueRegistry {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return LeagueConfig{}, fmt.Errorf("unknown league %q (valid: %s)", code, strings.Join(codes, ", "))
}

// --------------------------------------------------------------------------
// Table names — single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	MatchesTable  = "matches"
	CalendarTable = "calendar_entries"
	ExportsTable  = "season_exports"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Engine
	League          string // league registry code
	PredictStrategy string // "grid" or "montecarlo"
	PredictTrials   int    // montecarlo trial count
	PredictSeed     int64  // montecarlo seed; 0 = time-based
	PredictWorkers  int    // parallel prediction workers
	RefreshInterval time.Duration

	// Results feed
	ResultsFeedURL string
	ResultsFeedRPM int

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("FIXTURECAST_DATABASE_URL", envOr("DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("FIXTURECAST_DATABASE_URL or DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:4321",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		League:          envOr("LEAGUE", "L1"),
		PredictStrategy: envOr("PREDICT_STRATEGY", "grid"),
		PredictTrials:   envInt("PREDICT_TRIALS", 500),
		PredictSeed:     int64(envInt("PREDICT_SEED", 0)),
		PredictWorkers:  envInt("PREDICT_WORKERS", 4),
		RefreshInterval: time.Duration(envInt("REFRESH_INTERVAL_MINUTES", 30)) * time.Minute,

		ResultsFeedURL: envOr("RESULTS_FEED_URL", "https://www.football-data.co.uk"),
		ResultsFeedRPM: envInt("RESULTS_FEED_RPM", 30),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
