package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/event"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/phase"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type stubProvider struct {
	schedule []ExternalEvent
	scores   []ExternalScore
	odds     []ExternalOdds

	scheduleErr error
}

func (p *stubProvider) FetchSchedule(_ context.Context, _ string) ([]ExternalEvent, error) {
	return p.schedule, p.scheduleErr
}

func (p *stubProvider) FetchScores(_ context.Context, _ string) ([]ExternalScore, error) {
	return p.scores, nil
}

func (p *stubProvider) FetchOdds(_ context.Context, _ string) ([]ExternalOdds, error) {
	return p.odds, nil
}

type syncFixture struct {
	svc      *SyncService
	phases   *stubPhaseRepo
	events   *stubEventRepo
	outcomes *stubOutcomeRepo
	quotes   *stubOddsRepo
}

func newSyncFixture(provider *stubProvider) *syncFixture {
	fx := &syncFixture{
		phases:   &stubPhaseRepo{},
		events:   &stubEventRepo{},
		outcomes: &stubOutcomeRepo{},
		quotes:   &stubOddsRepo{},
	}
	fx.svc = NewSyncService(provider, stubTx{}, fx.phases, fx.events, fx.outcomes, fx.quotes, SyncConfig{Enabled: true}, logging.NewNop())
	return fx
}

func TestSyncScheduleGroupsWeeksIntoPhases(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, 9, 7, 18, 0, 0, 0, time.UTC)
	provider := &stubProvider{schedule: []ExternalEvent{
		{ExternalID: "401", Week: 1, HomeTeamID: "kc", AwayTeamID: "buf", StartAt: kickoff.Add(3 * time.Hour)},
		{ExternalID: "402", Week: 1, HomeTeamID: "phi", AwayTeamID: "dal", StartAt: kickoff},
		{ExternalID: "403", Week: 2, HomeTeamID: "sf", AwayTeamID: "sea", StartAt: kickoff.AddDate(0, 0, 7)},
		// Unusable rows are dropped.
		{ExternalID: "", Week: 1, HomeTeamID: "x", AwayTeamID: "y", StartAt: kickoff},
		{ExternalID: "404", Week: 0, HomeTeamID: "x", AwayTeamID: "y", StartAt: kickoff},
	}}

	fx := newSyncFixture(provider)
	lg := league.League{ID: "lg-1", SeasonID: "2025"}

	count, err := fx.svc.SyncSchedule(context.Background(), lg)
	if err != nil {
		t.Fatalf("SyncSchedule: %v", err)
	}
	if count != 3 {
		t.Fatalf("synced %d events, want 3", count)
	}

	if len(fx.phases.upserted) != 2 {
		t.Fatalf("upserted %d phases, want 2", len(fx.phases.upserted))
	}
	week1 := fx.phases.upserted[0]
	if week1.Name != "Week 1" || week1.LeagueID != "lg-1" || week1.SeasonID != "2025" {
		t.Fatalf("unexpected week 1 phase: %+v", week1)
	}
	// The phase lock is the earliest kickoff of the week.
	if !week1.PickLockAt.Equal(kickoff) {
		t.Fatalf("week 1 lock = %v, want %v", week1.PickLockAt, kickoff)
	}

	seen := make(map[string]event.Event)
	for _, ev := range fx.events.events {
		seen[ev.ID] = ev
	}
	ev, ok := seen["lg-1-event-401"]
	if !ok {
		t.Fatalf("event lg-1-event-401 missing, have %v", fx.events.events)
	}
	if ev.PhaseID != "lg-1-week-1" || ev.HomeTeamID != "kc" || ev.AwayTeamID != "buf" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestSyncScoresUpsertsFinalOutcomesOnly(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{scores: []ExternalScore{
		{EventExternalID: "401", HomeScore: 24, AwayScore: 21, Final: true},
		{EventExternalID: "402", HomeScore: 14, AwayScore: 10, Final: false},
		{EventExternalID: "999", HomeScore: 7, AwayScore: 3, Final: true}, // not in phase
	}}

	fx := newSyncFixture(provider)
	fx.phases.current = &phase.Phase{ID: "lg-1-week-1", LeagueID: "lg-1", SeasonID: "2025"}
	fx.events.events = []event.Event{
		{ID: "lg-1-event-401", PhaseID: "lg-1-week-1", HomeTeamID: "kc", AwayTeamID: "buf"},
		{ID: "lg-1-event-402", PhaseID: "lg-1-week-1", HomeTeamID: "phi", AwayTeamID: "dal"},
	}

	count, err := fx.svc.SyncScores(context.Background(), league.League{ID: "lg-1", SeasonID: "2025"})
	if err != nil {
		t.Fatalf("SyncScores: %v", err)
	}
	if count != 1 {
		t.Fatalf("synced %d outcomes, want 1", count)
	}

	row, ok := fx.outcomes.byEvent["lg-1-event-401"]
	if !ok {
		t.Fatal("final outcome was not stored")
	}
	if row.HomeScore != 24 || row.AwayScore != 21 {
		t.Fatalf("outcome = %+v, want 24-21", row)
	}
	if _, ok := fx.outcomes.byEvent["lg-1-event-402"]; ok {
		t.Fatal("in-progress score must not be stored")
	}
}

func TestSyncOddsOnlyForSpreadLeagues(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{odds: []ExternalOdds{
		{EventExternalID: "401", SpreadHome: -3.5, SpreadAway: 3.5},
	}}

	fx := newSyncFixture(provider)
	fx.phases.open = &phase.Phase{ID: "lg-1-week-1", LeagueID: "lg-1"}
	fx.events.events = []event.Event{
		{ID: "lg-1-event-401", PhaseID: "lg-1-week-1", HomeTeamID: "kc", AwayTeamID: "buf"},
	}

	count, err := fx.svc.SyncOdds(context.Background(), league.League{ID: "lg-1", SeasonID: "2025", PickType: league.PickTypeSpread})
	if err != nil {
		t.Fatalf("SyncOdds: %v", err)
	}
	if count != 1 {
		t.Fatalf("synced %d quotes, want 1", count)
	}
	row, ok := fx.quotes.byEvent["lg-1-event-401"]
	if !ok || row.SpreadHome != -3.5 || row.SpreadAway != 3.5 {
		t.Fatalf("stored quote = %+v", row)
	}

	// Straight-up leagues never store quotes.
	fx2 := newSyncFixture(provider)
	count, err = fx2.svc.SyncOdds(context.Background(), league.League{ID: "lg-1", SeasonID: "2025", PickType: league.PickTypeStraightUp})
	if err != nil {
		t.Fatalf("SyncOdds straight-up: %v", err)
	}
	if count != 0 || len(fx2.quotes.byEvent) != 0 {
		t.Fatalf("straight-up league stored %d quotes", len(fx2.quotes.byEvent))
	}
}

func TestSyncDisabledIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	fx := &syncFixture{phases: &stubPhaseRepo{}, events: &stubEventRepo{}, outcomes: &stubOutcomeRepo{}, quotes: &stubOddsRepo{}}
	fx.svc = NewSyncService(&stubProvider{}, stubTx{}, fx.phases, fx.events, fx.outcomes, fx.quotes, SyncConfig{Enabled: false}, logging.NewNop())

	_, err := fx.svc.SyncSchedule(context.Background(), league.League{ID: "lg-1", SeasonID: "2025"})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("disabled sync error = %v, want ErrDependencyUnavailable", err)
	}
}

func TestResyncRunsTasksPerLeagueAndKind(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, 9, 7, 18, 0, 0, 0, time.UTC)
	provider := &stubProvider{schedule: []ExternalEvent{
		{ExternalID: "401", Week: 1, HomeTeamID: "kc", AwayTeamID: "buf", StartAt: kickoff},
	}}

	fx := newSyncFixture(provider)
	leagues := &stubLeagueRepo{leagues: []league.League{
		{ID: "lg-1", SeasonID: "2025"},
		{ID: "lg-2", SeasonID: "2025"},
	}}

	// Single worker keeps the unsynchronized stubs race-free.
	got, err := fx.svc.Resync(context.Background(), leagues, ResyncInput{
		SyncData:   []string{"schedule", "scores"},
		MaxWorkers: 1,
	})
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}

	if got.LeagueCount != 2 || got.TaskCount != 4 {
		t.Fatalf("result = %+v, want 2 leagues and 4 tasks", got)
	}
	if got.SuccessCount+got.FailedCount+got.SkippedCount != got.TaskCount {
		t.Fatalf("status counts do not add up: %+v", got)
	}
	// Schedule tasks succeed; score tasks skip because nothing is final.
	if got.SuccessCount != 2 || got.SkippedCount != 2 {
		t.Fatalf("got %d success and %d skipped, want 2 and 2", got.SuccessCount, got.SkippedCount)
	}
	if len(got.Tasks) != 4 {
		t.Fatalf("got %d task rows, want 4", len(got.Tasks))
	}
}

func TestResyncRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	fx := newSyncFixture(&stubProvider{})
	leagues := &stubLeagueRepo{leagues: []league.League{{ID: "lg-1", SeasonID: "2025"}}}

	_, err := fx.svc.Resync(context.Background(), leagues, ResyncInput{SyncData: []string{"rosters"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown kind error = %v, want ErrInvalidInput", err)
	}
}
