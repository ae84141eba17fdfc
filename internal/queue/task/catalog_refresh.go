package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	CatalogRefreshTaskName  = "catalogRefreshTask"
	CatalogRefreshQueueName = "catalogRefreshQueue"
)

type CatalogRefresh struct {
	RequestedAt time.Time `json:"requested_at"`
}

func NewCatalogRefreshTask() (*asynq.Task, error) {
	var data CatalogRefresh
	data.RequestedAt = time.Now().UTC()

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		CatalogRefreshTaskName,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(CatalogRefreshQueueName),
	), nil
}
