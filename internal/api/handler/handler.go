// Package handler provides HTTP handlers for all API endpoints. The season
// export is assembled in the background by the refresh loop; handlers serve
// slices of the latest build and never touch the database on the hot path.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixturecast/fixturecast/internal/api/respond"
	"github.com/fixturecast/fixturecast/internal/cache"
	"github.com/fixturecast/fixturecast/internal/config"
	"github.com/fixturecast/fixturecast/internal/predict"
	"github.com/fixturecast/fixturecast/internal/refresh"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool   *pgxpool.Pool
	cache  *cache.Cache
	cfg    *config.Config
	holder *refresh.Holder
	model  *predict.Model
}

// New creates a Handler with shared dependencies.
func New(pool *pgxpool.Pool, c *cache.Cache, cfg *config.Config, holder *refresh.Holder, model *predict.Model) *Handler {
	return &Handler{
		pool:   pool,
		cache:  c,
		cfg:    cfg,
		holder: holder,
		model:  model,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "FixtureCast API",
		"version": "1.0.0",
		"status":  "running",
		"league":  h.cfg.League,
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"cache":  h.cache.Stats(),
	})
}

// GetSeason serves the full assembled season export.
// @Summary Assembled season export
// @Description Full season dataset: schedule, standings, strengths, stats.
// @Tags season
// @Produce json
// @Success 200 {object} season.Export
// @Failure 503 {object} respond.ErrorResponse
// @Router /season [get]
func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	h.serveExportView(w, r, "season:full", func(e interface{}) interface{} { return e })
}

// GetSchedule serves the full schedule only.
// @Summary Full season schedule
// @Tags season
// @Produce json
// @Success 200 {array} season.Match
// @Failure 503 {object} respond.ErrorResponse
// @Router /season/schedule [get]
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	export, _ := h.holder.Get()
	if export == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "Season export not built yet")
		return
	}
	h.serveCached(w, r, "season:schedule", export.FullSchedule)
}

// GetStandings serves the current standings table.
// @Summary Standings with projection
// @Tags season
// @Produce json
// @Success 200 {array} standings.Row
// @Failure 503 {object} respond.ErrorResponse
// @Router /season/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	export, _ := h.holder.Get()
	if export == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "Season export not built yet")
		return
	}
	h.serveCached(w, r, "season:standings", export.Standings)
}

// GetStrengths serves the per-team strength profiles.
// @Summary Team strength profiles
// @Tags season
// @Produce json
// @Success 200 {object} strength.Profiles
// @Failure 503 {object} respond.ErrorResponse
// @Router /season/strengths [get]
func (h *Handler) GetStrengths(w http.ResponseWriter, r *http.Request) {
	export, _ := h.holder.Get()
	if export == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "Season export not built yet")
		return
	}
	h.serveCached(w, r, "season:strengths", export.TeamStrengths)
}

// GetPrediction predicts a single pairing on demand.
// @Summary Predict one fixture
// @Description Prediction for an arbitrary home/away pairing using current strengths. Unknown teams get neutral profiles.
// @Tags predict
// @Produce json
// @Param home path string true "Home team"
// @Param away path string true "Away team"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /predict/{home}/{away} [get]
func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	home := chi.URLParam(r, "home")
	away := chi.URLParam(r, "away")
	if home == "" || away == "" || home == away {
		respond.WriteError(w, http.StatusBadRequest, "BAD_PAIRING", "home and away must be two distinct teams")
		return
	}

	export, _ := h.holder.Get()
	if export == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "Season export not built yet")
		return
	}

	key := "predict:" + home + ":" + away
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLPrediction, true)
		return
	}

	pred := h.model.Predict(home, away, export.TeamStrengths)
	odds := predict.DisplayOdds(pred.Probs)

	data, err := json.Marshal(map[string]interface{}{
		"home_team":  home,
		"away_team":  away,
		"prediction": pred,
		"odds":       odds,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode prediction")
		return
	}

	etag := h.cache.Set(key, data, cache.TTLPrediction)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLPrediction, false)
}

// serveExportView serves the whole export through the cache.
func (h *Handler) serveExportView(w http.ResponseWriter, r *http.Request, key string, view func(interface{}) interface{}) {
	export, _ := h.holder.Get()
	if export == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "Season export not built yet")
		return
	}
	h.serveCached(w, r, key, view(export))
}

// serveCached marshals v through the response cache with ETag revalidation.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, v interface{}) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLSeason, true)
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, cache.TTLSeason)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLSeason, false)
}
