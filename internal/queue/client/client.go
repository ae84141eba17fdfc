package client

import (
	"context"

	"github.com/cityverse/backend/internal/queue/task"
	"github.com/cityverse/backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/hibiken/asynq"
)

// Scheduler enqueues catalog refresh work onto the queue. Enqueue
// failures are logged, not surfaced: the snapshot was already invalidated
// by the mutation, so the next read self-heals by fetching inline.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client}
}

func (s *Scheduler) ScheduleRefresh(ctx context.Context) {
	t, err := task.NewCatalogRefreshTask()
	if err != nil {
		logger.Error("build catalog refresh task failed", zap.Error(err))
		return
	}

	if _, err := s.client.EnqueueContext(ctx, t); err != nil {
		logger.Error("enqueue catalog refresh task failed", zap.Error(err))
	}
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}
