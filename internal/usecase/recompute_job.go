package usecase

import (
	"context"
	"fmt"
	"time"

	domrepo "CycleSense/internal/domain/repository"
	"CycleSense/pkg/cache"
	"CycleSense/pkg/queue"
)

const (
	recomputeLockPrefix = "cyclesense:recompute:lock"

	// RecomputeMessageType is the queue message type the recompute job handles.
	RecomputeMessageType = "insights.recompute"
)

// RecomputePayload asks for a user's insights to be recomputed.
type RecomputePayload struct {
	UserID string `json:"userId"`
}

// InsightRecomputeJob rebuilds a user's cached insights after ingestion:
// it drops the stale sections and warms the cache with a fresh summary.
// A short lock collapses bursts of entries into a single recompute.
type InsightRecomputeJob struct {
	agg    *InsightAggregator
	bundle *InsightsBundleUseCase
	locks  cache.Service
}

func NewInsightRecomputeJob(agg *InsightAggregator, bundle *InsightsBundleUseCase, locks cache.Service) *InsightRecomputeJob {
	return &InsightRecomputeJob{agg: agg, bundle: bundle, locks: locks}
}

func (j *InsightRecomputeJob) Name() string { return "insight_recompute" }

func (j *InsightRecomputeJob) Type() string { return RecomputeMessageType }

func (j *InsightRecomputeJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[RecomputePayload](payload)
	if err != nil {
		return fmt.Errorf("recompute payload: %w", err)
	}
	if p.UserID == "" {
		return fmt.Errorf("recompute payload: empty userId")
	}

	if j.locks != nil {
		lockKey := cache.GenerateKey(recomputeLockPrefix, p.UserID)
		ok, err := j.locks.TryLock(ctx, lockKey, 30*time.Second)
		if err == nil && !ok {
			return nil // another worker is already on it
		}
		if err == nil {
			defer func() { _ = j.locks.Unlock(context.WithoutCancel(ctx), lockKey) }()
		}
	}

	if err := j.agg.Invalidate(ctx, p.UserID); err != nil {
		return fmt.Errorf("invalidate insights: %w", err)
	}
	if _, err := j.bundle.GetInsights(ctx, GetInsightsParams{UserID: p.UserID, Window: domrepo.DefaultWindow()}); err != nil {
		return fmt.Errorf("warm insights: %w", err)
	}
	return nil
}

var _ queue.Job = (*InsightRecomputeJob)(nil)
