// Package refresh keeps the API's season export current. The engine is a
// batch computation, so the server rebuilds the export from the store on a
// fixed interval instead of recomputing per request.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixturecast/fixturecast/internal/config"
	"github.com/fixturecast/fixturecast/internal/season"
	"github.com/fixturecast/fixturecast/internal/store"
)

// Holder is the shared, read-mostly slot for the latest export.
type Holder struct {
	mu      sync.RWMutex
	export  *season.Export
	builtAt time.Time
}

// Get returns the latest export and its build time. The export is nil until
// the first successful build.
func (h *Holder) Get() (*season.Export, time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.export, h.builtAt
}

// Set stores a freshly built export.
func (h *Holder) Set(export *season.Export) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.export = export
	h.builtAt = time.Now()
}

// Start builds the export immediately, then rebuilds on every tick until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, holder *Holder, assembler *season.Assembler, cfg *config.Config, logger *slog.Logger) {
	build := func() {
		if err := Build(ctx, pool, holder, assembler, cfg, logger); err != nil {
			logger.Error("Season refresh failed", "error", err)
		}
	}

	build()

	interval := cfg.RefreshInterval
	if interval <= 0 {
		logger.Info("Season refresh ticker disabled")
		return
	}

	logger.Info("Season refresh ticker started", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			build()
		case <-ctx.Done():
			logger.Info("Season refresh ticker stopped")
			return
		}
	}
}

// LoadInput loads the assembler inputs for a league from the store: the
// prior season as the strength base, the current season's results, and the
// imported calendar.
func LoadInput(ctx context.Context, pool *pgxpool.Pool, league config.LeagueConfig) (season.Input, error) {
	base, err := baseSeasonResults(ctx, pool, league)
	if err != nil {
		return season.Input{}, err
	}

	current, err := store.LoadResults(ctx, pool, league.ID, league.CurrentSeason)
	if err != nil {
		return season.Input{}, err
	}

	calendar, err := store.LoadCalendar(ctx, pool, league.ID, league.CurrentSeason)
	if err != nil {
		return season.Input{}, err
	}

	return season.Input{
		BaseResults:    base,
		CurrentResults: current,
		Calendar:       calendar,
	}, nil
}

// Build loads the engine inputs from the store, assembles the season, and
// publishes it to the holder.
func Build(ctx context.Context, pool *pgxpool.Pool, holder *Holder, assembler *season.Assembler, cfg *config.Config, logger *slog.Logger) error {
	league := assembler.League

	in, err := LoadInput(ctx, pool, league)
	if err != nil {
		return err
	}

	export, result := assembler.Build(in)
	for _, e := range result.Errors {
		logger.Warn("Assembly issue", "issue", e)
	}

	holder.Set(export)
	logger.Info("Season export refreshed",
		"league", league.ID, "season", league.CurrentSeason,
		"summary", result.Summary())
	return nil
}

// baseSeasonResults returns the most recent stored season before the current
// one, used as the strength reference period. An empty result is fine: the
// engine degrades to neutral profiles.
func baseSeasonResults(ctx context.Context, pool *pgxpool.Pool, league config.LeagueConfig) ([]store.MatchRecord, error) {
	seasons, err := store.Seasons(ctx, pool, league.ID)
	if err != nil {
		return nil, err
	}

	base := ""
	for _, s := range seasons {
		if s < league.CurrentSeason && s > base {
			base = s
		}
	}
	if base == "" {
		return nil, nil
	}
	return store.LoadResults(ctx, pool, league.ID, base)
}
