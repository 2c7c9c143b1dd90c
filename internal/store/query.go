package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadResults returns all completed matches for a league-season, ordered by
// date. Uses the results_by_season prepared statement.
func LoadResults(ctx context.Context, pool *pgxpool.Pool, league, season string) ([]MatchRecord, error) {
	rows, err := pool.Query(ctx, "results_by_season", league, season)
	if err != nil {
		return nil, fmt.Errorf("load results %s/%s: %w", league, season, err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var date time.Time
		if err := rows.Scan(&date, &m.Season, &m.HomeTeam, &m.AwayTeam, &m.HomeGoals, &m.AwayGoals); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Date = date.Format("2006-01-02")
		records = append(records, m)
	}
	return records, rows.Err()
}

// LoadCalendar returns the imported calendar entries for a league-season,
// ordered by week.
func LoadCalendar(ctx context.Context, pool *pgxpool.Pool, league, season string) ([]CalendarEntry, error) {
	rows, err := pool.Query(ctx, "calendar_by_season", league, season)
	if err != nil {
		return nil, fmt.Errorf("load calendar %s/%s: %w", league, season, err)
	}
	defer rows.Close()

	var entries []CalendarEntry
	for rows.Next() {
		var e CalendarEntry
		if err := rows.Scan(&e.HomeTeam, &e.AwayTeam, &e.Week); err != nil {
			return nil, fmt.Errorf("scan calendar entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Seasons returns the distinct seasons stored for a league.
func Seasons(ctx context.Context, pool *pgxpool.Pool, league string) ([]string, error) {
	rows, err := pool.Query(ctx, "seasons_for_league", league)
	if err != nil {
		return nil, fmt.Errorf("load seasons for %s: %w", league, err)
	}
	defer rows.Close()

	var seasons []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// LatestExport returns the most recent season export payload, or nil when
// none has been stored yet.
func LatestExport(ctx context.Context, pool *pgxpool.Pool, league, season string) ([]byte, error) {
	var payload []byte
	err := pool.QueryRow(ctx, "latest_export", league, season).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load export %s/%s: %w", league, season, err)
	}
	return payload, nil
}
