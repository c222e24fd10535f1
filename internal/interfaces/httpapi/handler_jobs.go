package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type calculateStandingsJobRequest struct {
	LeagueIDs []string `json:"league_ids"`
}

type syncJobRequest struct {
	LeagueID string `json:"league_id"`
}

type resyncJobRequest struct {
	LeagueIDs  []string `json:"league_ids"`
	SyncData   []string `json:"sync_data"`
	MaxWorkers int      `json:"max_workers" validate:"min=0,max=64"`
}

// RunCalculateStandingsJob re-grades and re-ranks the requested leagues.
// An empty body (or empty league_ids) recalculates every league.
func (h *Handler) RunCalculateStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCalculateStandingsJob")
	defer span.End()

	var req calculateStandingsJobRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueIDs := compactIDs(req.LeagueIDs)
	if len(leagueIDs) == 0 {
		if err := h.standingsService.CalculateForAllLeagues(ctx); err != nil {
			h.logger.ErrorContext(ctx, "calculate standings job failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, map[string]any{
			"status": "completed",
			"scope":  "all",
		})
		return
	}

	h.standingsService.CalculateForLeagues(ctx, leagueIDs)
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"status":     "completed",
		"scope":      "leagues",
		"league_ids": leagueIDs,
	})
}

func (h *Handler) RunSyncScheduleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncScheduleJob")
	defer span.End()

	h.runSyncJob(ctx, w, r, "schedule", h.syncService.SyncSchedule)
}

func (h *Handler) RunSyncScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncScoresJob")
	defer span.End()

	h.runSyncJob(ctx, w, r, "scores", h.syncService.SyncScores)
}

func (h *Handler) RunSyncOddsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncOddsJob")
	defer span.End()

	h.runSyncJob(ctx, w, r, "odds", h.syncService.SyncOdds)
}

// RunResyncJob fans out provider syncs across leagues with a worker pool.
func (h *Handler) RunResyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResyncJob")
	defer span.End()

	var req resyncJobRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.Resync(ctx, h.leagueRepo, usecase.ResyncInput{
		LeagueIDs:  compactIDs(req.LeagueIDs),
		SyncData:   req.SyncData,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "resync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// runSyncJob handles the single-kind sync jobs. With a league_id the sync
// runs for that league only; without one it fans out to every league via
// the resync pool.
func (h *Handler) runSyncJob(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	sync func(context.Context, league.League) (int, error),
) {
	var req syncJobRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(req.LeagueID)
	if leagueID == "" {
		result, err := h.syncService.Resync(ctx, h.leagueRepo, usecase.ResyncInput{
			SyncData: []string{kind},
		})
		if err != nil {
			h.logger.ErrorContext(ctx, "sync job fan-out failed", "sync_data", kind, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, result)
		return
	}

	lg, err := h.leagueService.Get(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "sync job league lookup failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	records, err := sync(ctx, lg)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync job failed", "sync_data", kind, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"status":    "completed",
		"sync_data": kind,
		"league_id": leagueID,
		"records":   records,
	})
}

func compactIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
