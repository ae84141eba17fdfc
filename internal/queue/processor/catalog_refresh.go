package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cityverse/backend/internal/queue/task"
	"github.com/cityverse/backend/internal/service"
	"github.com/cityverse/backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/hibiken/asynq"
)

type catalogRefreshProcessor struct {
	services *service.Services
}

func NewCatalogRefreshProcessor(services *service.Services) *catalogRefreshProcessor {
	return &catalogRefreshProcessor{
		services: services,
	}
}

// ProcessTask re-derives the catalog snapshot so the read after a
// mutation hits warm state instead of paying the fetch itself.
func (p *catalogRefreshProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.CatalogRefresh
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("process catalog refresh task json unmarshal failed: %w", err)
	}

	logger.Debug("processing catalog refresh", zap.Time("requested_at", data.RequestedAt))

	if err := p.services.Catalog.Refresh(ctx); err != nil {
		return fmt.Errorf("catalog refresh failed: %w", err)
	}

	return nil
}
