package service

import (
	"context"
	"fmt"
	"os"

	"ncbi/fetcher/internal/cache"
	"ncbi/fetcher/internal/catalog"
	"ncbi/fetcher/internal/config"
	"ncbi/fetcher/internal/domain"
	"ncbi/fetcher/internal/executor"
	"ncbi/fetcher/internal/plan"
	"ncbi/fetcher/internal/progress"
	"ncbi/fetcher/internal/taxonomy"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// Service runs the selection and fetch pipeline: prime caches, load the
// taxonomy, resolve the descendant set, filter the catalog, derive the fetch
// plan and execute it.
type Service struct {
	cfg      *config.Config
	cache    *cache.Cache
	executor *executor.Executor
}

func NewService(cfg *config.Config, cache *cache.Cache, executor *executor.Executor) *Service {
	return &Service{
		cfg:      cfg,
		cache:    cache,
		executor: executor,
	}
}

// Run executes one pipeline pass and returns the batch summary. The error is
// non-nil only when the pipeline itself cannot complete; individual fetch
// failures are reported in the summary, never as an error.
func (s *Service) Run(ctx context.Context) (*domain.Summary, error) {
	summaryPath, err := s.primeCaches(ctx)
	if err != nil {
		return nil, err
	}

	tree, err := taxonomy.Load(s.cfg.Taxonomy.DumpDir)
	if err != nil {
		return nil, fmt.Errorf("unable to load taxonomy from %s: %w", s.cfg.Taxonomy.DumpDir, err)
	}
	log.Infof("Loaded %d taxa from %s", tree.Len(), s.cfg.Taxonomy.DumpDir)

	resolver := taxonomy.NewResolver(tree)
	root, err := resolver.Root(s.cfg.Taxonomy.TaxID, s.cfg.Taxonomy.TaxName)
	if err != nil {
		return nil, err
	}
	keep, err := resolver.Resolve(s.cfg.Taxonomy.TaxID, s.cfg.Taxonomy.TaxName, !s.cfg.Taxonomy.NoChildren)
	if err != nil {
		return nil, err
	}
	if name := tree.Name(root); name != "" {
		log.Infof("Resolved tax ID %s (%s): %d taxa in scope", root, name, len(keep))
	} else {
		log.Infof("Resolved tax ID %s: %d taxa in scope", root, len(keep))
	}

	filtered, err := catalog.Filter(summaryPath, keep, s.cfg.Catalog.AssemblyLevels)
	if err != nil {
		return nil, err
	}

	fetchPlan := plan.Build(filtered.Records, s.cfg.Format(), s.cfg.Download.OutDir)
	for _, failure := range fetchPlan.Failures {
		log.Errorf("Skipping %q: %s", failure.RemotePath, failure.Reason)
	}

	summary := &domain.Summary{
		RecordsConsidered: filtered.Considered,
		RecordsMatched:    filtered.Matched,
		FetchFailed:       len(fetchPlan.Failures),
		Failures:          fetchPlan.Failures,
	}

	if s.cfg.Download.DryRun {
		log.Infof("Dry run: would fetch %d assemblies in %s format to %s",
			len(fetchPlan.Tasks), s.cfg.Format(), s.cfg.Download.OutDir)
		return summary, nil
	}

	if err := os.MkdirAll(s.cfg.Download.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory %s: %w", s.cfg.Download.OutDir, err)
	}

	log.Infof("Downloading %d assemblies in %s format with %d workers",
		len(fetchPlan.Tasks), s.cfg.Format().GetFormatName(), s.cfg.Download.Parallel)

	agg := progress.NewAggregator(len(fetchPlan.Tasks))
	outcomes := s.executor.Run(ctx, fetchPlan.Tasks, agg)
	agg.Wait()

	summary.FetchAttempted = len(outcomes)
	for _, outcome := range outcomes {
		if outcome.Success {
			summary.FetchSucceeded++
			continue
		}
		summary.FetchFailed++
		summary.Failures = append(summary.Failures, domain.FetchFailure{
			RemotePath: outcome.RemotePath,
			Reason:     outcome.Reason,
		})
	}

	log.Infof("Saved %d assemblies to %s", summary.FetchSucceeded, s.cfg.Download.OutDir)
	return summary, nil
}

// primeCaches materializes the assembly summary and the taxonomy dump,
// fetching both in parallel when neither is cached. Returns the summary path
// to filter.
func (s *Service) primeCaches(ctx context.Context) (string, error) {
	summaryPath := s.cfg.Catalog.SummaryPath

	g, ctx := errgroup.WithContext(ctx)

	if summaryPath == "" {
		source := s.cfg.Source()
		summaryPath = fmt.Sprintf("assembly_summary_%s.txt", source)
		g.Go(func() error {
			return s.cache.EnsureSummary(ctx, source, summaryPath)
		})
	}

	g.Go(func() error {
		return s.cache.EnsureTaxdump(ctx, s.cfg.Taxonomy.DumpDir)
	})

	if err := g.Wait(); err != nil {
		return "", err
	}
	return summaryPath, nil
}
