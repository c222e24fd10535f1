package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/pickem-league/internal/domain/event"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/membership"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/outcome"
	"github.com/riskibarqy/pickem-league/internal/domain/phase"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

// stubTx runs the callback directly; tests exercise service logic, not
// transaction plumbing.
type stubTx struct{}

func (stubTx) WithinTx(ctx context.Context, fn func(ctx context.Context, q database.Querier) error) error {
	return fn(ctx, nil)
}

func (stubTx) Querier() database.Querier { return nil }

type stubLeagueRepo struct {
	leagues []league.League
	listErr error
}

func (r *stubLeagueRepo) GetByID(_ context.Context, _ database.Querier, leagueID string) (league.League, bool, error) {
	for _, item := range r.leagues {
		if item.ID == leagueID {
			return item, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *stubLeagueRepo) GetByInviteCode(_ context.Context, _ database.Querier, inviteCode string) (league.League, bool, error) {
	for _, item := range r.leagues {
		if item.InviteCode == inviteCode {
			return item, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *stubLeagueRepo) List(_ context.Context, _ database.Querier, limit, offset int) ([]league.League, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if offset >= len(r.leagues) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.leagues) {
		end = len(r.leagues)
	}
	return append([]league.League(nil), r.leagues[offset:end]...), nil
}

func (r *stubLeagueRepo) Insert(_ context.Context, _ database.Querier, item league.League) error {
	r.leagues = append(r.leagues, item)
	return nil
}

type stubMemberRepo struct {
	members   []membership.Member
	insertErr error
}

func (r *stubMemberRepo) Get(_ context.Context, _ database.Querier, leagueID, userID string) (membership.Member, bool, error) {
	for _, item := range r.members {
		if item.LeagueID == leagueID && item.UserID == userID {
			return item, true, nil
		}
	}
	return membership.Member{}, false, nil
}

func (r *stubMemberRepo) ListByLeague(_ context.Context, _ database.Querier, leagueID string) ([]membership.Member, error) {
	var out []membership.Member
	for _, item := range r.members {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubMemberRepo) CountByLeague(_ context.Context, _ database.Querier, leagueID string) (int, error) {
	count := 0
	for _, item := range r.members {
		if item.LeagueID == leagueID {
			count++
		}
	}
	return count, nil
}

func (r *stubMemberRepo) Insert(_ context.Context, _ database.Querier, item membership.Member) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.members = append(r.members, item)
	return nil
}

type stubPhaseRepo struct {
	open     *phase.Phase
	current  *phase.Phase
	upserted []phase.Phase
}

func (r *stubPhaseRepo) CurrentOpen(_ context.Context, _ database.Querier, _ string) (phase.Phase, bool, error) {
	if r.open == nil {
		return phase.Phase{}, false, nil
	}
	return *r.open, true, nil
}

func (r *stubPhaseRepo) Current(_ context.Context, _ database.Querier, _ string) (phase.Phase, bool, error) {
	if r.current == nil {
		return phase.Phase{}, false, nil
	}
	return *r.current, true, nil
}

func (r *stubPhaseRepo) Upsert(_ context.Context, _ database.Querier, item phase.Phase) error {
	r.upserted = append(r.upserted, item)
	r.current = &item
	return nil
}

type stubEventRepo struct {
	events []event.Event
}

func (r *stubEventRepo) ListByPhase(_ context.Context, _ database.Querier, phaseID string) ([]event.Event, error) {
	var out []event.Event
	for _, item := range r.events {
		if item.PhaseID == phaseID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubEventRepo) Upsert(_ context.Context, _ database.Querier, item event.Event) error {
	r.events = append(r.events, item)
	return nil
}

type stubOddsRepo struct {
	byEvent map[string]odds.Odds
}

func (r *stubOddsRepo) GetByEvent(_ context.Context, _ database.Querier, eventID string) (odds.Odds, bool, error) {
	item, ok := r.byEvent[eventID]
	return item, ok, nil
}

func (r *stubOddsRepo) Upsert(_ context.Context, _ database.Querier, item odds.Odds) error {
	if r.byEvent == nil {
		r.byEvent = make(map[string]odds.Odds)
	}
	r.byEvent[item.EventID] = item
	return nil
}

// stubPickRepo joins picks against its event and outcome tables the way
// the postgres repository does, so grading passes behave like production
// reads.
type stubPickRepo struct {
	picks    []pick.Pick
	events   map[string]event.Event
	outcomes map[string]outcome.Outcome

	unassessedErrByLeague map[string]error
	updateResultErr       error
	insertErr             error
}

func (r *stubPickRepo) ListByUserAndEvents(_ context.Context, _ database.Querier, leagueID, userID string, eventIDs []string) ([]pick.Pick, error) {
	wanted := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	var out []pick.Pick
	for _, item := range r.picks {
		if item.LeagueID != leagueID || item.UserID != userID {
			continue
		}
		if _, ok := wanted[item.EventID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubPickRepo) ListByUserAndLeague(_ context.Context, _ database.Querier, leagueID, userID string) ([]pick.Pick, error) {
	var out []pick.Pick
	for _, item := range r.picks {
		if item.LeagueID == leagueID && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubPickRepo) ListUnassessedByLeague(_ context.Context, _ database.Querier, leagueID string) ([]pick.Unassessed, error) {
	if err := r.unassessedErrByLeague[leagueID]; err != nil {
		return nil, err
	}
	var out []pick.Unassessed
	for _, item := range r.picks {
		if item.LeagueID != leagueID || item.Result != pick.ResultUngraded {
			continue
		}
		final, ok := r.outcomes[item.EventID]
		if !ok {
			continue
		}
		out = append(out, pick.Unassessed{
			Pick:    item,
			Event:   r.events[item.EventID],
			Outcome: final,
		})
	}
	return out, nil
}

func (r *stubPickRepo) ListGradedByLeagueSeason(_ context.Context, _ database.Querier, leagueID, seasonID string) ([]pick.Pick, error) {
	var out []pick.Pick
	for _, item := range r.picks {
		if item.LeagueID == leagueID && item.SeasonID == seasonID && item.Result.Graded() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubPickRepo) Insert(_ context.Context, _ database.Querier, item pick.Pick) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.picks = append(r.picks, item)
	return nil
}

func (r *stubPickRepo) UpdateResult(_ context.Context, _ database.Querier, pickID string, result pick.Result) error {
	if r.updateResultErr != nil {
		return r.updateResultErr
	}
	for i := range r.picks {
		if r.picks[i].ID == pickID {
			r.picks[i].Result = result
			return nil
		}
	}
	return fmt.Errorf("pick %s not found", pickID)
}

type stubStandingRepo struct {
	rows        []standings.Standing
	upsertCalls int
	rankCalls   int
}

func (r *stubStandingRepo) ListByLeagueSeason(_ context.Context, _ database.Querier, leagueID, seasonID string) ([]standings.Standing, error) {
	var out []standings.Standing
	for _, item := range r.rows {
		if item.LeagueID == leagueID && item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *stubStandingRepo) Upsert(_ context.Context, _ database.Querier, item standings.Standing) error {
	r.upsertCalls++
	for i := range r.rows {
		if r.rows[i].LeagueID == item.LeagueID && r.rows[i].SeasonID == item.SeasonID && r.rows[i].UserID == item.UserID {
			item.Rank = r.rows[i].Rank
			r.rows[i] = item
			return nil
		}
	}
	r.rows = append(r.rows, item)
	return nil
}

func (r *stubStandingRepo) UpdateRank(_ context.Context, _ database.Querier, leagueID, seasonID, userID string, rank int) error {
	r.rankCalls++
	for i := range r.rows {
		if r.rows[i].LeagueID == leagueID && r.rows[i].SeasonID == seasonID && r.rows[i].UserID == userID {
			r.rows[i].Rank = rank
			return nil
		}
	}
	return fmt.Errorf("standing for user %s not found", userID)
}

func (r *stubStandingRepo) get(leagueID, seasonID, userID string) (standings.Standing, bool) {
	for _, item := range r.rows {
		if item.LeagueID == leagueID && item.SeasonID == seasonID && item.UserID == userID {
			return item, true
		}
	}
	return standings.Standing{}, false
}

type stubOutcomeRepo struct {
	byEvent map[string]outcome.Outcome
}

func (r *stubOutcomeRepo) GetByEvent(_ context.Context, _ database.Querier, eventID string) (outcome.Outcome, bool, error) {
	item, ok := r.byEvent[eventID]
	return item, ok, nil
}

func (r *stubOutcomeRepo) Upsert(_ context.Context, _ database.Querier, item outcome.Outcome) error {
	if r.byEvent == nil {
		r.byEvent = make(map[string]outcome.Outcome)
	}
	r.byEvent[item.EventID] = item
	return nil
}

type stubIDGenerator struct {
	next int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}
