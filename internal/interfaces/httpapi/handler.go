package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/membership"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	pickService      *usecase.PickService
	standingsService *usecase.StandingsService
	syncService      *usecase.SyncService
	leagueRepo       league.Repository
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	pickService *usecase.PickService,
	standingsService *usecase.StandingsService,
	syncService *usecase.SyncService,
	leagueRepo league.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		pickService:      pickService,
		standingsService: standingsService,
		syncService:      syncService,
		leagueRepo:       leagueRepo,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createLeagueRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.Create(ctx, principal.UserID, usecase.CreateLeagueInput{
		Name:          req.Name,
		SeasonID:      req.SeasonID,
		PicksPerPhase: req.PicksPerPhase,
		PickType:      league.PickType(req.PickType),
		MaxMembers:    req.MaxMembers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(item, true))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	limit := queryInt(r, "limit", 25)
	offset := queryInt(r, "offset", 0)

	leagues, err := h.leagueService.List(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l, false))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.Get(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item, false))
}

func (h *Handler) JoinLeagueByInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeagueByInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinLeagueRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.JoinByInvite(ctx, principal.UserID, req.InviteCode)
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item, true))
}

func (h *Handler) ListLeagueMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMembers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	members, err := h.leagueService.ListMembers(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league members failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]memberDTO, 0, len(members))
	for _, m := range members {
		items = append(items, memberToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req submitPicksRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selections := make([]pick.Selection, 0, len(req.Picks))
	for _, item := range req.Picks {
		selections = append(selections, pick.Selection{
			EventID: strings.TrimSpace(item.EventID),
			TeamID:  strings.TrimSpace(item.TeamID),
		})
	}

	if err := h.pickService.SubmitPicks(ctx, principal.UserID, leagueID, selections); err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"league_id": leagueID,
		"submitted": len(selections),
	})
}

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	picks, err := h.pickService.ListMine(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my picks failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))

	rows, err := h.standingsService.ListByLeague(ctx, leagueID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

type createLeagueRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	SeasonID      string `json:"season_id" validate:"required"`
	PicksPerPhase int    `json:"picks_per_phase" validate:"required,min=1,max=20"`
	PickType      string `json:"pick_type" validate:"required,oneof=straight_up spread"`
	MaxMembers    int    `json:"max_members" validate:"min=0,max=500"`
}

type joinLeagueRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

type submitPicksRequest struct {
	Picks []pickSelectionRequest `json:"picks" validate:"required,min=1,dive"`
}

type pickSelectionRequest struct {
	EventID string `json:"event_id" validate:"required"`
	TeamID  string `json:"team_id" validate:"required"`
}

type leagueDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SeasonID      string `json:"season_id"`
	InviteCode    string `json:"invite_code,omitempty"`
	PicksPerPhase int    `json:"picks_per_phase"`
	PickType      string `json:"pick_type"`
	MaxMembers    int    `json:"max_members"`
	CreatedAtUTC  string `json:"created_at_utc"`
}

type memberDTO struct {
	LeagueID    string `json:"league_id"`
	UserID      string `json:"user_id"`
	JoinedAtUTC string `json:"joined_at_utc"`
}

type pickDTO struct {
	ID           string   `json:"id"`
	LeagueID     string   `json:"league_id"`
	SeasonID     string   `json:"season_id"`
	EventID      string   `json:"event_id"`
	TeamID       string   `json:"team_id"`
	Spread       *float64 `json:"spread,omitempty"`
	Result       string   `json:"result,omitempty"`
	CreatedAtUTC string   `json:"created_at_utc"`
}

type standingDTO struct {
	LeagueID        string  `json:"league_id"`
	SeasonID        string  `json:"season_id"`
	UserID          string  `json:"user_id"`
	Points          float64 `json:"points"`
	Rank            int     `json:"rank"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	Pushes          int     `json:"pushes"`
	CalculatedAtUTC string  `json:"calculated_at_utc"`
}

func leagueToDTO(v league.League, withInviteCode bool) leagueDTO {
	out := leagueDTO{
		ID:            v.ID,
		Name:          v.Name,
		SeasonID:      v.SeasonID,
		PicksPerPhase: v.PicksPerPhase,
		PickType:      string(v.PickType),
		MaxMembers:    v.MaxMembers,
		CreatedAtUTC:  v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if withInviteCode {
		out.InviteCode = v.InviteCode
	}
	return out
}

func memberToDTO(v membership.Member) memberDTO {
	return memberDTO{
		LeagueID:    v.LeagueID,
		UserID:      v.UserID,
		JoinedAtUTC: v.JoinedAt.UTC().Format(time.RFC3339),
	}
}

func pickToDTO(v pick.Pick) pickDTO {
	return pickDTO{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		SeasonID:     v.SeasonID,
		EventID:      v.EventID,
		TeamID:       v.TeamID,
		Spread:       v.Spread,
		Result:       string(v.Result),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func standingToDTO(v standings.Standing) standingDTO {
	return standingDTO{
		LeagueID:        v.LeagueID,
		SeasonID:        v.SeasonID,
		UserID:          v.UserID,
		Points:          v.Points,
		Rank:            v.Rank,
		Wins:            v.Wins,
		Losses:          v.Losses,
		Pushes:          v.Pushes,
		CalculatedAtUTC: v.CalculatedAt.UTC().Format(time.RFC3339),
	}
}
