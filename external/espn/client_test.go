package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:        server.URL,
		Timeout:        2 * time.Second,
		MaxRetries:     0,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClientFetchScheduleMapsWeeksAndDropsIncompleteRows(t *testing.T) {
	t.Parallel()

	payload := `{
		"season": {"year": 2025, "slug": "2025-regular"},
		"weeks": [
			{
				"number": 2,
				"events": [
					{
						"id": "401772921",
						"date": "2025-09-14T17:00Z",
						"competitions": [{
							"competitors": [
								{"homeAway": "home", "team": {"id": "12", "abbreviation": "kc"}},
								{"homeAway": "away", "team": {"id": "20", "abbreviation": "phi"}}
							]
						}]
					}
				]
			},
			{
				"number": 1,
				"events": [
					{
						"id": "401772810",
						"date": "2025-09-07T17:00Z",
						"competitions": [{
							"competitors": [
								{"homeAway": "home", "team": {"abbreviation": "DAL"}},
								{"homeAway": "away", "team": {"abbreviation": "NYG"}}
							]
						}]
					},
					{
						"id": "",
						"date": "2025-09-07T20:25Z",
						"competitions": [{
							"competitors": [
								{"homeAway": "home", "team": {"abbreviation": "SEA"}},
								{"homeAway": "away", "team": {"abbreviation": "SF"}}
							]
						}]
					},
					{
						"id": "401772811",
						"date": "not-a-date",
						"competitions": [{
							"competitors": [
								{"homeAway": "home", "team": {"abbreviation": "DEN"}},
								{"homeAway": "away", "team": {"abbreviation": "LV"}}
							]
						}]
					},
					{
						"id": "401772812",
						"date": "2025-09-07T20:25Z",
						"competitions": [{
							"competitors": [
								{"homeAway": "home", "team": {"abbreviation": "MIA"}}
							]
						}]
					}
				]
			}
		]
	}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/seasons/2025/schedule" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(payload))
	}, resilience.CircuitBreakerConfig{})

	items, err := client.FetchSchedule(context.Background(), "2025")
	if err != nil {
		t.Fatalf("fetch schedule failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 usable events, got %d", len(items))
	}

	first := items[0]
	if first.ExternalID != "401772810" || first.Week != 1 {
		t.Fatalf("unexpected first event %+v", first)
	}
	if first.HomeTeamID != "DAL" || first.AwayTeamID != "NYG" {
		t.Fatalf("unexpected sides %+v", first)
	}
	wantStart := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	if !first.StartAt.Equal(wantStart) {
		t.Fatalf("expected start %s, got %s", wantStart, first.StartAt)
	}

	second := items[1]
	if second.ExternalID != "401772921" || second.Week != 2 {
		t.Fatalf("unexpected second event %+v", second)
	}
	if second.HomeTeamID != "KC" || second.AwayTeamID != "PHI" {
		t.Fatalf("expected abbreviations upper-cased, got %+v", second)
	}
}

func TestClientFetchScoresParsesFinals(t *testing.T) {
	t.Parallel()

	payload := `{
		"events": [
			{
				"id": "401772810",
				"competitions": [{
					"status": {"type": {"state": "post", "completed": true}},
					"competitors": [
						{"homeAway": "home", "score": "24", "team": {"abbreviation": "DAL"}},
						{"homeAway": "away", "score": "17", "team": {"abbreviation": "NYG"}}
					]
				}]
			},
			{
				"id": "401772811",
				"competitions": [{
					"status": {"type": {"state": "in", "completed": false}},
					"competitors": [
						{"homeAway": "home", "score": "7", "team": {"abbreviation": "DEN"}},
						{"homeAway": "away", "score": "3", "team": {"abbreviation": "LV"}}
					]
				}]
			},
			{
				"id": "401772812",
				"competitions": [{
					"status": {"type": {"state": "pre", "completed": false}},
					"competitors": [
						{"homeAway": "home", "score": "", "team": {"abbreviation": "MIA"}},
						{"homeAway": "away", "score": "", "team": {"abbreviation": "BUF"}}
					]
				}]
			}
		]
	}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}, resilience.CircuitBreakerConfig{})

	items, err := client.FetchScores(context.Background(), "2025")
	if err != nil {
		t.Fatalf("fetch scores failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 score rows, got %d", len(items))
	}

	final := items[0]
	if final.EventExternalID != "401772810" || !final.Final {
		t.Fatalf("unexpected final row %+v", final)
	}
	if final.HomeScore != 24 || final.AwayScore != 17 {
		t.Fatalf("unexpected scores %+v", final)
	}

	live := items[1]
	if live.EventExternalID != "401772811" || live.Final {
		t.Fatalf("in-progress game must not be final: %+v", live)
	}
}

func TestClientFetchOddsMirrorsHomeLine(t *testing.T) {
	t.Parallel()

	payload := `{
		"items": [
			{"eventId": "401772810", "details": "DAL -3.5", "spread": -3.5},
			{"eventId": "", "spread": -7},
			{"eventId": "401772811", "details": "LV +7", "spread": 7}
		]
	}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}, resilience.CircuitBreakerConfig{})

	items, err := client.FetchOdds(context.Background(), "2025")
	if err != nil {
		t.Fatalf("fetch odds failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 odds rows, got %d", len(items))
	}
	if items[0].SpreadHome != -3.5 || items[0].SpreadAway != 3.5 {
		t.Fatalf("unexpected spread %+v", items[0])
	}
	if items[1].SpreadHome != 7 || items[1].SpreadAway != -7 {
		t.Fatalf("unexpected spread %+v", items[1])
	}
}

func TestClientNonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var requests int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.Error(w, "not found", http.StatusNotFound)
	}, resilience.CircuitBreakerConfig{})
	client.maxRetries = 3

	if _, err := client.FetchSchedule(context.Background(), "2025"); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Fatalf("expected a single request for a non-retryable status, got %d", got)
	}
}

func TestClientCircuitOpensAfterServerErrors(t *testing.T) {
	t.Parallel()

	var requests int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	_, err := client.FetchScores(context.Background(), "2025")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("first failure must surface the provider error, got %v", err)
	}

	_, err = client.FetchScores(context.Background(), "2025")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable once the circuit opened, got %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Fatalf("open circuit must not reach the server, got %d requests", got)
	}
}
