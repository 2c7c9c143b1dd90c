// Command sim is the FixtureCast engine CLI.
//
// Usage:
//
//	fixturecast-sim import results --fetch --season 2024-2025
//	fixturecast-sim import results --file results.json --season 2025-2026
//	fixturecast-sim import calendar --file calendar.json --season 2025-2026
//	fixturecast-sim run --out app_data.json --save
//	fixturecast-sim predict --home PSG --away Marseille --strategy montecarlo --trials 50000 --seed 42
//	fixturecast-sim schedule
//	fixturecast-sim standings
//	fixturecast-sim export
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fixturecast/fixturecast/internal/config"
	"github.com/fixturecast/fixturecast/internal/db"
	"github.com/fixturecast/fixturecast/internal/predict"
	"github.com/fixturecast/fixturecast/internal/provider/footballdata"
	"github.com/fixturecast/fixturecast/internal/refresh"
	"github.com/fixturecast/fixturecast/internal/season"
	"github.com/fixturecast/fixturecast/internal/store"
	"github.com/fixturecast/fixturecast/internal/strength"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "fixturecast-sim",
		Short: "FixtureCast season simulation CLI",
	}

	root.AddCommand(importCmd())
	root.AddCommand(runCmd())
	root.AddCommand(predictCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(standingsCmd())
	root.AddCommand(exportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import results or calendar data into the store",
	}
	cmd.AddCommand(importResultsCmd())
	cmd.AddCommand(importCalendarCmd())
	return cmd
}

func importResultsCmd() *cobra.Command {
	var (
		file        string
		fetch       bool
		seasonLabel string
	)
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Import completed match results from a JSON file or the results feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && !fetch {
				return fmt.Errorf("either --file or --fetch is required")
			}
			return runEngine(func(ctx context.Context, cfg *config.Config, league config.LeagueConfig, pool *db.Pool) error {
				if seasonLabel == "" {
					seasonLabel = league.CurrentSeason
				}

				var records []store.MatchRecord
				if fetch {
					client := footballdata.NewClient(cfg.ResultsFeedURL, cfg.ResultsFeedRPM, logger)
					fetched, err := client.FetchSeason(ctx, league.FeedCode, seasonLabel)
					if err != nil {
						return fmt.Errorf("fetch results: %w", err)
					}
					for i := range fetched {
						fetched[i].Season = seasonLabel
					}
					records = fetched
				} else {
					loaded, result, err := store.ReadResultsFile(file)
					if err != nil {
						return err
					}
					logResult("Results file read", result)
					for i := range loaded {
						if loaded[i].Season == "" {
							loaded[i].Season = seasonLabel
						}
					}
					records = loaded
				}

				result := store.UpsertResults(ctx, pool.Pool, league.ID, records, logger)
				logResult("Results import finished", result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file of match records")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "Download from the results feed instead of a file")
	cmd.Flags().StringVar(&seasonLabel, "season", "", "Season label (defaults to the league's current season)")
	return cmd
}

func importCalendarCmd() *cobra.Command {
	var (
		file        string
		seasonLabel string
	)
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Import externally known future fixtures with weeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			return runEngine(func(ctx context.Context, cfg *config.Config, league config.LeagueConfig, pool *db.Pool) error {
				if seasonLabel == "" {
					seasonLabel = league.CurrentSeason
				}
				entries, readResult, err := store.ReadCalendarFile(file)
				if err != nil {
					return err
				}
				logResult("Calendar file read", readResult)

				result := store.UpsertCalendar(ctx, pool.Pool, league.ID, seasonLabel, entries, logger)
				logResult("Calendar import finished", result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file of calendar entries")
	cmd.Flags().StringVar(&seasonLabel, "season", "", "Season label (defaults to the league's current season)")
	return cmd
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var (
		out  string
		save bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Assemble the full projected season and export it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(func(ctx context.Context, cfg *config.Config, league config.LeagueConfig, pool *db.Pool) error {
				in, err := refresh.LoadInput(ctx, pool.Pool, league)
				if err != nil {
					return err
				}

				assembler := newAssembler(cfg, league)
				start := time.Now()
				export, result := assembler.Build(in)
				logger.Info("Season run finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("assembly error", "error", e)
				}

				payload, err := json.MarshalIndent(export, "", "  ")
				if err != nil {
					return fmt.Errorf("encode export: %w", err)
				}

				if out != "" {
					if err := os.WriteFile(out, payload, 0o644); err != nil {
						return fmt.Errorf("write export: %w", err)
					}
					logger.Info("Export written", "path", out, "bytes", len(payload))
				}
				if save {
					if err := store.SaveExport(ctx, pool.Pool, league.ID, league.CurrentSeason, payload); err != nil {
						return fmt.Errorf("save export: %w", err)
					}
					logger.Info("Export saved to store", "league", league.ID, "season", league.CurrentSeason)
				}
				if out == "" && !save {
					fmt.Println(string(payload))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the export JSON to this path")
	cmd.Flags().BoolVar(&save, "save", false, "Save the export to the store")
	return cmd
}

// --------------------------------------------------------------------------
// predict command
// --------------------------------------------------------------------------

func predictCmd() *cobra.Command {
	var (
		home, away string
		strategy   string
		trials     int
		seed       int64
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a single fixture using current strengths",
		RunE: func(cmd *cobra.Command, args []string) error {
			if home == "" || away == "" {
				return fmt.Errorf("--home and --away are required")
			}
			return runEngine(func(ctx context.Context, cfg *config.Config, league config.LeagueConfig, pool *db.Pool) error {
				in, err := refresh.LoadInput(ctx, pool.Pool, league)
				if err != nil {
					return err
				}
				profiles := strength.Estimate(in.BaseResults, league.AvgGoalsPerTeam)

				if strategy == "" {
					strategy = cfg.PredictStrategy
				}
				if trials == 0 {
					trials = cfg.PredictTrials
				}
				model := predict.NewModel(league.BaseHomeGoals, league.BaseAwayGoals, strategyFor(strategy, trials, seed))
				pred := model.Predict(home, away, profiles)
				odds := predict.DisplayOdds(pred.Probs)

				payload, err := json.MarshalIndent(map[string]interface{}{
					"home_team":  home,
					"away_team":  away,
					"prediction": pred,
					"odds":       odds,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("encode prediction: %w", err)
				}
				fmt.Println(string(payload))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&home, "home", "", "Home team")
	cmd.Flags().StringVar(&away, "away", "", "Away team")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Distribution strategy: grid or montecarlo (defaults to config)")
	cmd.Flags().IntVar(&trials, "trials", 0, "Monte Carlo trial count")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Monte Carlo seed (0 = time-based)")
	return cmd
}

// --------------------------------------------------------------------------
// schedule command
// --------------------------------------------------------------------------

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate the remaining fixture calendar and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(func(ctx context.Context, cfg *config.Config, league config.LeagueConfig, pool *db.Pool) error {
				in, err := refresh.LoadInput(ctx, pool.Pool, league)
				if err != nil {
					return err
				}

				assembler := newAssembler(cfg, league)
				export, result := assembler.Build(in)
				logger.Info("Schedule generated", "summary", result.Summary())

				for _, m := range export.FullSchedule {
					marker := " "
					if m.Status == season.StatusPlayed {
						marker = "*"
					}
					fmt.Printf("%sJ%02d  %s vs %s\n", marker, m.Week, m.HomeTeam, m.AwayTeam)
				}
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// standings command
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print the current standings with projections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(func(ctx context.Context, cfg *config.Config, league config.LeagueConfig, pool *db.Pool) error {
				in, err := refresh.LoadInput(ctx, pool.Pool, league)
				if err != nil {
					return err
				}

				assembler := newAssembler(cfg, league)
				export, _ := assembler.Build(in)

				fmt.Printf("%-20s %3s %3s %3s %3s %4s %5s\n", "Team", "P", "W", "D", "L", "Pts", "Proj")
				for _, row := range export.Standings {
					fmt.Printf("%-20s %3d %3d %3d %3d %4d %5d\n",
						row.Team, row.Played, row.Wins, row.Draws, row.Losses,
						row.Points, row.ProjectedPoints)
				}
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// export command
// --------------------------------------------------------------------------

func exportCmd() *cobra.Command {
	var seasonLabel string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the most recently saved season export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(func(ctx context.Context, cfg *config.Config, league config.LeagueConfig, pool *db.Pool) error {
				if seasonLabel == "" {
					seasonLabel = league.CurrentSeason
				}
				payload, err := store.LatestExport(ctx, pool.Pool, league.ID, seasonLabel)
				if err != nil {
					return err
				}
				if payload == nil {
					return fmt.Errorf("no export saved for %s/%s", league.ID, seasonLabel)
				}
				fmt.Println(string(payload))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&seasonLabel, "season", "", "Season label (defaults to the league's current season)")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runEngine handles config loading, league resolution, DB connection, and
// context cancellation.
func runEngine(fn func(ctx context.Context, cfg *config.Config, league config.LeagueConfig, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	league, err := config.League(cfg.League)
	if err != nil {
		return err
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, league, pool)
}

func newAssembler(cfg *config.Config, league config.LeagueConfig) *season.Assembler {
	model := predict.NewModel(league.BaseHomeGoals, league.BaseAwayGoals,
		strategyFor(cfg.PredictStrategy, cfg.PredictTrials, cfg.PredictSeed))
	return season.New(league, model, cfg.PredictWorkers, logger)
}

func strategyFor(name string, trials int, seed int64) predict.Strategy {
	if name == "montecarlo" {
		return predict.NewMonteCarloStrategy(trials, seed)
	}
	return predict.GridStrategy{}
}

func logResult(msg string, r store.Result) {
	logger.Info(msg, "summary", r.Summary())
	for _, e := range r.Errors {
		logger.Warn("record error", "error", e)
	}
}
