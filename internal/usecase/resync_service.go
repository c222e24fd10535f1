package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
)

type ResyncInput struct {
	LeagueIDs  []string
	SyncData   []string
	MaxWorkers int
}

type ResyncResult struct {
	LeagueCount   int                `json:"league_count"`
	TaskCount     int                `json:"task_count"`
	SuccessCount  int                `json:"success_count"`
	FailedCount   int                `json:"failed_count"`
	SkippedCount  int                `json:"skipped_count"`
	WorkerCount   int                `json:"worker_count"`
	Tasks         []ResyncTaskResult `json:"tasks"`
	RequestedData []string           `json:"requested_data"`
}

type ResyncTaskResult struct {
	LeagueID   string `json:"league_id"`
	SyncData   string `json:"sync_data"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type resyncDataKind string

const (
	resyncStatusSuccess = "success"
	resyncStatusFailed  = "failed"
	resyncStatusSkipped = "skipped"

	resyncDataSchedule resyncDataKind = "schedule"
	resyncDataScores   resyncDataKind = "scores"
	resyncDataOdds     resyncDataKind = "odds"
)

type resyncTask struct {
	league league.League
	kind   resyncDataKind
}

// Resync re-ingests the requested data kinds for the given leagues (or
// every league when none are named) over a bounded worker pool. One task
// is one (league, kind) pair; a failed task never stops the rest.
func (s *SyncService) Resync(ctx context.Context, leagueRepo league.Repository, input ResyncInput) (ResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Resync")
	defer span.End()

	if err := s.ready(); err != nil {
		return ResyncResult{}, err
	}

	kinds, rawKinds, err := normalizeResyncKinds(input.SyncData)
	if err != nil {
		return ResyncResult{}, err
	}

	targets, err := s.resolveResyncTargets(ctx, leagueRepo, input.LeagueIDs)
	if err != nil {
		return ResyncResult{}, err
	}

	tasks := make([]resyncTask, 0, len(targets)*len(kinds))
	for _, target := range targets {
		for _, kind := range kinds {
			tasks = append(tasks, resyncTask{league: target, kind: kind})
		}
	}

	workerCount := normalizeResyncWorkerCount(input.MaxWorkers, len(tasks))
	result := ResyncResult{
		LeagueCount:   len(targets),
		TaskCount:     len(tasks),
		WorkerCount:   workerCount,
		RequestedData: rawKinds,
		Tasks:         make([]ResyncTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	results := make(chan ResyncTaskResult, len(tasks))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := ResyncTaskResult{
				LeagueID: task.league.ID,
				SyncData: string(task.kind),
			}

			records, status, message := s.runResyncTask(ctx, task)
			row.Records = records
			row.Status = status
			row.Message = message
			row.DurationMs = time.Since(start).Milliseconds()

			switch status {
			case resyncStatusSuccess:
				successCount.Add(1)
			case resyncStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return ResyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].LeagueID != result.Tasks[j].LeagueID {
			return result.Tasks[i].LeagueID < result.Tasks[j].LeagueID
		}
		return result.Tasks[i].SyncData < result.Tasks[j].SyncData
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

func (s *SyncService) runResyncTask(ctx context.Context, task resyncTask) (int, string, string) {
	switch task.kind {
	case resyncDataSchedule:
		count, err := s.SyncSchedule(ctx, task.league)
		if err != nil {
			return 0, resyncStatusFailed, err.Error()
		}
		if count == 0 {
			return 0, resyncStatusSkipped, "no events returned by provider"
		}
		return count, resyncStatusSuccess, ""
	case resyncDataScores:
		count, err := s.SyncScores(ctx, task.league)
		if err != nil {
			return 0, resyncStatusFailed, err.Error()
		}
		if count == 0 {
			return 0, resyncStatusSkipped, "no final scores matched current phase"
		}
		return count, resyncStatusSuccess, ""
	case resyncDataOdds:
		count, err := s.SyncOdds(ctx, task.league)
		if err != nil {
			return 0, resyncStatusFailed, err.Error()
		}
		if count == 0 {
			return 0, resyncStatusSkipped, "no quotes matched the open phase"
		}
		return count, resyncStatusSuccess, ""
	default:
		return 0, resyncStatusSkipped, "unsupported sync_data"
	}
}

func (s *SyncService) resolveResyncTargets(ctx context.Context, leagueRepo league.Repository, leagueIDs []string) ([]league.League, error) {
	if len(leagueIDs) > 0 {
		q := s.tx.Querier()
		out := make([]league.League, 0, len(leagueIDs))
		for _, leagueID := range leagueIDs {
			leagueID = strings.TrimSpace(leagueID)
			if leagueID == "" {
				continue
			}
			lg, exists, err := leagueRepo.GetByID(ctx, q, leagueID)
			if err != nil {
				return nil, fmt.Errorf("get league %s: %w", leagueID, err)
			}
			if !exists {
				return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
			}
			out = append(out, lg)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: league_ids is empty", ErrInvalidInput)
		}
		return out, nil
	}

	var out []league.League
	offset := 0
	for {
		batch, err := leagueRepo.List(ctx, s.tx.Querier(), leagueBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list leagues offset=%d: %w", offset, err)
		}
		out = append(out, batch...)
		if len(batch) < leagueBatchSize {
			break
		}
		offset += len(batch)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func normalizeResyncKinds(raw []string) ([]resyncDataKind, []string, error) {
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("%w: sync_data is required", ErrInvalidInput)
	}

	seen := make(map[resyncDataKind]struct{}, len(raw))
	kinds := make([]resyncDataKind, 0, len(raw))
	requested := make([]string, 0, len(raw))
	for _, item := range raw {
		normalized := strings.TrimSpace(strings.ToLower(item))
		if normalized == "" {
			continue
		}
		kind, ok := toResyncDataKind(normalized)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unsupported sync_data=%s", ErrInvalidInput, item)
		}
		if _, exists := seen[kind]; exists {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
		requested = append(requested, string(kind))
	}
	if len(kinds) == 0 {
		return nil, nil, fmt.Errorf("%w: sync_data is required", ErrInvalidInput)
	}
	return kinds, requested, nil
}

func toResyncDataKind(value string) (resyncDataKind, bool) {
	switch value {
	case "schedule", "schedules", "events":
		return resyncDataSchedule, true
	case "scores", "score", "outcomes":
		return resyncDataScores, true
	case "odds", "spreads", "lines":
		return resyncDataOdds, true
	default:
		return "", false
	}
}

func normalizeResyncWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
