package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/membership"
	leaguemock "github.com/riskibarqy/pickem-league/internal/mocks/domain/league"
	membershipmock "github.com/riskibarqy/pickem-league/internal/mocks/domain/membership"
	"github.com/stretchr/testify/mock"
)

func TestLeagueService_JoinByInvite_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	memberRepo := membershipmock.NewRepository(t)

	service := NewLeagueService(stubTx{}, leagueRepo, memberRepo, &stubIDGenerator{})
	inviteCode := "abcd1234"
	expected := league.League{ID: "lg-1", InviteCode: inviteCode, MaxMembers: 10}

	leagueRepo.
		On("GetByInviteCode", mock.Anything, mock.Anything, inviteCode).
		Return(expected, true, nil).
		Once()
	memberRepo.
		On("Get", mock.Anything, mock.Anything, "lg-1", "user-b").
		Return(membership.Member{}, false, nil).
		Once()
	memberRepo.
		On("CountByLeague", mock.Anything, mock.Anything, "lg-1").
		Return(3, nil).
		Once()
	memberRepo.
		On("Insert", mock.Anything, mock.Anything, mock.MatchedBy(func(m membership.Member) bool {
			return m.LeagueID == "lg-1" && m.UserID == "user-b"
		})).
		Return(nil).
		Once()

	got, err := service.JoinByInvite(ctx, "user-b", inviteCode)
	if err != nil {
		t.Fatalf("join by invite: %v", err)
	}
	if got.ID != expected.ID {
		t.Fatalf("unexpected league id: got=%s want=%s", got.ID, expected.ID)
	}
}

func TestLeagueService_JoinByInvite_UnknownCodeUsingMockery(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	memberRepo := membershipmock.NewRepository(t)

	service := NewLeagueService(stubTx{}, leagueRepo, memberRepo, &stubIDGenerator{})

	leagueRepo.
		On("GetByInviteCode", mock.Anything, mock.Anything, "nope0000").
		Return(league.League{}, false, nil).
		Once()

	_, err := service.JoinByInvite(context.Background(), "user-b", "nope0000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
