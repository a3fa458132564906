package repository

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/pkg/logger"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const viewKeyPrefix = "problem:views:"

// ViewCounter counts problem detail views. With Redis configured, views are
// buffered with INCR and moved into the problems table by Flush; without it
// every view is a direct UPDATE.
type ViewCounter struct {
	rdb      *redis.Client
	problems *ProblemRepository
}

func NewViewCounter(rdb *redis.Client, problems *ProblemRepository) *ViewCounter {
	return &ViewCounter{rdb: rdb, problems: problems}
}

func viewKey(id uint) string {
	return viewKeyPrefix + strconv.FormatUint(uint64(id), 10)
}

// Record counts one view of problem and updates problem.Views to include
// any views still buffered.
func (v *ViewCounter) Record(ctx context.Context, problem *model.Problem) error {
	if v.rdb == nil {
		if err := v.problems.AddViews(ctx, problem.ID, 1); err != nil {
			return fmt.Errorf("record view: %w", err)
		}
		problem.Views++
		return nil
	}

	pending, err := v.rdb.Incr(ctx, viewKey(problem.ID)).Result()
	if err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	problem.Views += pending
	return nil
}

// Flush moves buffered view counts into the database.
func (v *ViewCounter) Flush(ctx context.Context) error {
	if v.rdb == nil {
		return nil
	}

	iter := v.rdb.Scan(ctx, 0, viewKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id, err := strconv.ParseUint(strings.TrimPrefix(key, viewKeyPrefix), 10, 64)
		if err != nil {
			continue
		}

		delta, err := v.rdb.GetSet(ctx, key, 0).Int64()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("flush views %s: %w", key, err)
		}
		if delta == 0 {
			continue
		}

		if err := v.problems.AddViews(ctx, uint(id), delta); err != nil {
			// restore the delta for the next flush
			v.rdb.IncrBy(ctx, key, delta)
			logger.Log.Warn("Failed to persist problem views",
				zap.Uint64("problemID", id),
				zap.Int64("delta", delta),
				zap.Error(err))
		}
	}
	return iter.Err()
}
