package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/membership"
)

func newLeagueFixture() (*LeagueService, *stubLeagueRepo, *stubMemberRepo) {
	leagues := &stubLeagueRepo{}
	members := &stubMemberRepo{}
	svc := NewLeagueService(stubTx{}, leagues, members, &stubIDGenerator{})
	svc.now = func() time.Time { return time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC) }
	return svc, leagues, members
}

func TestLeagueServiceCreateEnrollsOwner(t *testing.T) {
	t.Parallel()

	svc, leagues, members := newLeagueFixture()

	created, err := svc.Create(context.Background(), "user-owner", CreateLeagueInput{
		Name:          "office pool",
		SeasonID:      "sn-2025",
		PicksPerPhase: 5,
		PickType:      league.PickTypeSpread,
		MaxMembers:    10,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.InviteCode == "" {
		t.Fatalf("created league missing identifiers: %+v", created)
	}
	if created.InviteCode == created.ID {
		t.Fatal("invite code must not reuse the league id")
	}
	if len(created.InviteCode) > inviteCodeLength {
		t.Fatalf("invite code %q longer than %d characters", created.InviteCode, inviteCodeLength)
	}
	if len(leagues.leagues) != 1 {
		t.Fatalf("stored %d leagues, want 1", len(leagues.leagues))
	}

	_, isMember, err := members.Get(context.Background(), nil, created.ID, "user-owner")
	if err != nil {
		t.Fatalf("membership lookup: %v", err)
	}
	if !isMember {
		t.Fatal("creator was not enrolled as a member")
	}
}

func TestLeagueServiceCreateValidatesSettings(t *testing.T) {
	t.Parallel()

	svc, leagues, _ := newLeagueFixture()

	_, err := svc.Create(context.Background(), "user-owner", CreateLeagueInput{
		Name:          "broken",
		SeasonID:      "sn-2025",
		PicksPerPhase: 0,
		PickType:      league.PickTypeStraightUp,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid settings error = %v, want ErrInvalidInput", err)
	}
	if len(leagues.leagues) != 0 {
		t.Fatalf("rejected create stored %d leagues", len(leagues.leagues))
	}
}

func TestLeagueServiceJoinByInvite(t *testing.T) {
	t.Parallel()

	svc, leagues, members := newLeagueFixture()
	leagues.leagues = []league.League{{ID: "lg-1", InviteCode: "abcd1234", MaxMembers: 2}}
	members.members = []membership.Member{{LeagueID: "lg-1", UserID: "user-owner"}}

	joined, err := svc.JoinByInvite(context.Background(), "user-b", "abcd1234")
	if err != nil {
		t.Fatalf("JoinByInvite: %v", err)
	}
	if joined.ID != "lg-1" {
		t.Fatalf("joined league = %q, want lg-1", joined.ID)
	}

	// Rejoining is a no-op, not an error.
	if _, err := svc.JoinByInvite(context.Background(), "user-b", "abcd1234"); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if len(members.members) != 2 {
		t.Fatalf("rejoin duplicated membership: %d rows", len(members.members))
	}

	// The league is now at capacity.
	if _, err := svc.JoinByInvite(context.Background(), "user-c", "abcd1234"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("full league error = %v, want ErrForbidden", err)
	}

	if _, err := svc.JoinByInvite(context.Background(), "user-c", "wrong000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bad invite error = %v, want ErrNotFound", err)
	}
}

func TestLeagueServiceListMembersRequiresMembership(t *testing.T) {
	t.Parallel()

	svc, leagues, members := newLeagueFixture()
	leagues.leagues = []league.League{{ID: "lg-1", InviteCode: "abcd1234"}}
	members.members = []membership.Member{{LeagueID: "lg-1", UserID: "user-a"}}

	got, err := svc.ListMembers(context.Background(), "lg-1", "user-a")
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d members, want 1", len(got))
	}

	if _, err := svc.ListMembers(context.Background(), "lg-1", "user-outsider"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider error = %v, want ErrForbidden", err)
	}
}
