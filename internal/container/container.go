package container

import (
	"context"

	"ncbi/fetcher/internal/cache"
	"ncbi/fetcher/internal/client"
	"ncbi/fetcher/internal/config"
	"ncbi/fetcher/internal/domain"
	"ncbi/fetcher/internal/executor"
	"ncbi/fetcher/internal/service"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Client   client.Downloader
	Cache    *cache.Cache
	Executor *executor.Executor

	Service *service.Service
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	downloader := client.NewNCBIClient(cfg.Download)
	container.Client = downloader

	container.Cache = cache.New(downloader, cfg.Download.NoCache)

	exec, err := executor.New(downloader, cfg.Download.Parallel)
	if err != nil {
		return nil, err
	}
	container.Executor = exec

	container.Service = service.NewService(cfg, container.Cache, exec)

	return container, nil
}

// Run executes the pipeline and returns its batch summary.
func (c *Container) Run(ctx context.Context) (*domain.Summary, error) {
	return c.Service.Run(ctx)
}
