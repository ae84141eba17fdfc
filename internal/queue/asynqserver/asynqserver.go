package asynqserver

import (
	"github.com/hibiken/asynq"

	"github.com/cityverse/backend/internal/cache"
	"github.com/cityverse/backend/internal/config"
	"github.com/cityverse/backend/internal/queue/processor"
	"github.com/cityverse/backend/internal/queue/task"
	"github.com/cityverse/backend/internal/service"
)

func New(cfg config.Cache, services *service.Services) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(services)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address}
	}
	return opts
}

func getQueues(services *service.Services) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.CatalogRefreshTaskName, processor.NewCatalogRefreshProcessor(services))
	queues := map[string]int{
		task.CatalogRefreshQueueName: 1,
	}
	return mux, queues
}
