package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UpsertResults writes completed matches, keyed on (league, season, ordered
// home/away pair). Invalid records are skipped and recorded in the Result;
// one bad record never aborts the batch.
func UpsertResults(ctx context.Context, pool *pgxpool.Pool, league string, records []MatchRecord, logger *slog.Logger) Result {
	var result Result

	for _, m := range records {
		if err := ValidateRecord(m); err != nil {
			result.Skipped++
			result.AddErrorf("skip %s vs %s: %v", m.HomeTeam, m.AwayTeam, err)
			continue
		}

		date, err := time.Parse("2006-01-02", m.Date)
		if err != nil {
			result.Skipped++
			result.AddErrorf("skip %s vs %s: bad date %q", m.HomeTeam, m.AwayTeam, m.Date)
			continue
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO matches (league, season, match_date, home_team, away_team, home_goals, away_goals, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			ON CONFLICT (league, season, home_team, away_team)
			DO UPDATE SET match_date = EXCLUDED.match_date,
				home_goals = EXCLUDED.home_goals,
				away_goals = EXCLUDED.away_goals,
				updated_at = NOW()`,
			league, m.Season, date, m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals)
		if err != nil {
			result.AddErrorf("upsert %s vs %s: %v", m.HomeTeam, m.AwayTeam, err)
			continue
		}
		result.Upserted++
	}

	logger.Info("Results upserted", "league", league, "summary", result.Summary())
	return result
}

// UpsertCalendar writes externally imported future fixtures.
func UpsertCalendar(ctx context.Context, pool *pgxpool.Pool, league, season string, entries []CalendarEntry, logger *slog.Logger) Result {
	var result Result

	for _, e := range entries {
		if err := ValidateEntry(e); err != nil {
			result.Skipped++
			result.AddErrorf("skip %s vs %s: %v", e.HomeTeam, e.AwayTeam, err)
			continue
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO calendar_entries (league, season, home_team, away_team, week, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			ON CONFLICT (league, season, home_team, away_team)
			DO UPDATE SET week = EXCLUDED.week, updated_at = NOW()`,
			league, season, e.HomeTeam, e.AwayTeam, e.Week)
		if err != nil {
			result.AddErrorf("upsert %s vs %s: %v", e.HomeTeam, e.AwayTeam, err)
			continue
		}
		result.Upserted++
	}

	logger.Info("Calendar upserted", "league", league, "season", season, "summary", result.Summary())
	return result
}

// SaveExport stores an assembled season export payload.
func SaveExport(ctx context.Context, pool *pgxpool.Pool, league, season string, payload []byte) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO season_exports (league, season, payload, created_at)
		VALUES ($1, $2, $3, NOW())`,
		league, season, payload)
	return err
}
