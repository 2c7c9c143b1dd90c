// Package footballdata downloads season result CSVs from football-data.co.uk
// and parses them into match records.
//
// The feed publishes one CSV per league-season at /mmz4281/{code}/{div}.csv
// with no auth. Rate limiting is handled via a token bucket limiter.
package footballdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fixturecast/fixturecast/internal/store"
)

// Client is the HTTP client for the results feed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a feed client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// FetchSeason downloads and parses one league-season of results.
//
// season is the label "2025-2026"; the feed encodes it as "2526" in the URL.
// feedCode is the feed's division code (F1 = Ligue 1, E0 = Premier League).
// Malformed rows are skipped with a warning; the rest of the file continues.
func (c *Client) FetchSeason(ctx context.Context, feedCode, season string) ([]store.MatchRecord, error) {
	code, err := seasonCode(season)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/mmz4281/%s/%s.csv", c.baseURL, code, feedCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned %d", url, resp.StatusCode)
	}

	records, err := c.parseCSV(resp.Body, season)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	c.logger.Info("Fetched season results", "code", feedCode, "season", season, "matches", len(records))
	return records, nil
}

// parseCSV reads the feed's CSV format. Only the columns the engine needs
// are extracted: Date, HomeTeam, AwayTeam, FTHG, FTAG (full-time goals).
func (c *Client) parseCSV(r io.Reader, season string) ([]store.MatchRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // feed rows vary in trailing odds columns

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Date", "HomeTeam", "AwayTeam", "FTHG", "FTAG"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var records []store.MatchRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.logger.Warn("Skipping unreadable CSV row", "error", err)
			continue
		}

		m, err := rowToRecord(row, cols, season)
		if err != nil {
			c.logger.Warn("Skipping malformed CSV row", "error", err)
			continue
		}
		records = append(records, m)
	}
	return records, nil
}

func rowToRecord(row []string, cols map[string]int, season string) (store.MatchRecord, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := parseFeedDate(field("Date"))
	if err != nil {
		return store.MatchRecord{}, err
	}

	hg, err := strconv.Atoi(field("FTHG"))
	if err != nil {
		return store.MatchRecord{}, fmt.Errorf("home goals %q: %w", field("FTHG"), err)
	}
	ag, err := strconv.Atoi(field("FTAG"))
	if err != nil {
		return store.MatchRecord{}, fmt.Errorf("away goals %q: %w", field("FTAG"), err)
	}

	m := store.MatchRecord{
		Date:      date,
		Season:    season,
		HomeTeam:  field("HomeTeam"),
		AwayTeam:  field("AwayTeam"),
		HomeGoals: hg,
		AwayGoals: ag,
	}
	if err := store.ValidateRecord(m); err != nil {
		return store.MatchRecord{}, err
	}
	return m, nil
}

// parseFeedDate handles the feed's day-first formats (two- and four-digit
// years) and normalizes to YYYY-MM-DD.
func parseFeedDate(s string) (string, error) {
	for _, layout := range []string{"02/01/2006", "02/01/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", s)
}

// seasonCode converts a "2025-2026" label into the feed's "2526" URL code.
func seasonCode(season string) (string, error) {
	parts := strings.Split(season, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return "", fmt.Errorf("invalid season label %q (want YYYY-YYYY)", season)
	}
	return parts[0][2:] + parts[1][2:], nil
}
