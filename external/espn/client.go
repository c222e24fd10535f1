package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const (
	defaultBaseURL      = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	maxResponseBodySize = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apikey=[^&\s"']+`)
var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the scoreboard API and adapts its payloads to the
// sync flow's provider contract.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.ScheduleProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchSchedule returns every scheduled game of the season with its
// week number. Rows the provider sends without a date or without both
// sides resolved are dropped here rather than downstream.
func (c *Client) FetchSchedule(ctx context.Context, seasonID string) ([]usecase.ExternalEvent, error) {
	season, err := normalizeSeasonID(seasonID)
	if err != nil {
		return nil, err
	}

	path := "/seasons/" + url.PathEscape(season) + "/schedule"
	var envelope scheduleEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch schedule season=%s: %w", season, err)
	}

	out := make([]usecase.ExternalEvent, 0, 64)
	for _, week := range envelope.Weeks {
		if week.Number <= 0 {
			continue
		}
		for _, item := range week.Events {
			mapped, ok := mapScheduleEvent(week.Number, item)
			if !ok {
				continue
			}
			out = append(out, mapped)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ExternalID < out[j].ExternalID
	})

	return out, nil
}

// FetchScores returns the current scoreboard. Final is only set once
// the provider marks the game completed; in-progress scores pass
// through with Final=false and are ignored by the sync flow.
func (c *Client) FetchScores(ctx context.Context, seasonID string) ([]usecase.ExternalScore, error) {
	season, err := normalizeSeasonID(seasonID)
	if err != nil {
		return nil, err
	}

	path := "/seasons/" + url.PathEscape(season) + "/scoreboard"
	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scores season=%s: %w", season, err)
	}

	out := make([]usecase.ExternalScore, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		mapped, ok := mapScoreboardEvent(item)
		if !ok {
			continue
		}
		out = append(out, mapped)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].EventExternalID < out[j].EventExternalID })
	return out, nil
}

// FetchOdds returns the current point spreads. The provider quotes the
// home team's line; the away side is the mirror.
func (c *Client) FetchOdds(ctx context.Context, seasonID string) ([]usecase.ExternalOdds, error) {
	season, err := normalizeSeasonID(seasonID)
	if err != nil {
		return nil, err
	}

	path := "/seasons/" + url.PathEscape(season) + "/odds"
	var envelope oddsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch odds season=%s: %w", season, err)
	}

	out := make([]usecase.ExternalOdds, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		eventID := strings.TrimSpace(item.EventID)
		if eventID == "" {
			continue
		}
		out = append(out, usecase.ExternalOdds{
			EventExternalID: eventID,
			SpreadHome:      item.Spread,
			SpreadAway:      -item.Spread,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].EventExternalID < out[j].EventExternalID })
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	if c.apiKey != "" {
		values.Set("apikey", c.apiKey)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isESPNCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errESPNTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					lastErr = fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
					return nil, lastErr
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func mapScheduleEvent(week int, item eventItem) (usecase.ExternalEvent, bool) {
	externalID := strings.TrimSpace(item.ID)
	if externalID == "" {
		return usecase.ExternalEvent{}, false
	}
	startAt := parseProviderDateTime(item.Date)
	if startAt == nil {
		return usecase.ExternalEvent{}, false
	}
	homeTeam, awayTeam := resolveEventSides(item)
	if homeTeam == "" || awayTeam == "" {
		return usecase.ExternalEvent{}, false
	}

	return usecase.ExternalEvent{
		ExternalID: externalID,
		Week:       week,
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		StartAt:    *startAt,
	}, true
}

func mapScoreboardEvent(item eventItem) (usecase.ExternalScore, bool) {
	externalID := strings.TrimSpace(item.ID)
	if externalID == "" || len(item.Competitions) == 0 {
		return usecase.ExternalScore{}, false
	}

	competition := item.Competitions[0]
	var homeScore, awayScore int
	var homeSeen, awaySeen bool
	for _, competitor := range competition.Competitors {
		value, err := strconv.Atoi(strings.TrimSpace(competitor.Score))
		if err != nil {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(competitor.HomeAway)) {
		case "home":
			homeScore = value
			homeSeen = true
		case "away":
			awayScore = value
			awaySeen = true
		}
	}
	if !homeSeen || !awaySeen {
		return usecase.ExternalScore{}, false
	}

	return usecase.ExternalScore{
		EventExternalID: externalID,
		HomeScore:       homeScore,
		AwayScore:       awayScore,
		Final:           competition.Status.Type.Completed,
	}, true
}

func resolveEventSides(item eventItem) (string, string) {
	var homeTeam, awayTeam string
	for _, competition := range item.Competitions {
		for _, competitor := range competition.Competitors {
			team := strings.ToUpper(strings.TrimSpace(competitor.Team.Abbreviation))
			if team == "" {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(competitor.HomeAway)) {
			case "home":
				homeTeam = team
			case "away":
				awayTeam = team
			}
		}
	}
	return homeTeam, awayTeam
}

func normalizeSeasonID(seasonID string) (string, error) {
	season := strings.TrimSpace(seasonID)
	if season == "" {
		return "", fmt.Errorf("season id is required")
	}
	return season, nil
}

func parseProviderDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		"2006-01-02T15:04Z07:00",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	value = apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
	return value
}

func redactAPIURL(fullURL string) string {
	return apiKeyParamRegex.ReplaceAllString(fullURL, "apikey=REDACTED")
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 512 {
		return text[:512] + "...(truncated)"
	}
	return text
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func isESPNCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errESPNTransient)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
