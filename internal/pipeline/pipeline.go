// Package pipeline drives a full reconciliation run: resolve library folders
// to RetroAchievements systems, hash every ROM, match hashes against the
// remote catalog, and emit the CSV report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"rascan/internal/config"
	"rascan/internal/history"
	"rascan/internal/logging"
	"rascan/internal/match"
	"rascan/internal/platform"
	"rascan/internal/report"
	"rascan/internal/scanner"
	"rascan/internal/services"
	"rascan/internal/services/racatalog"
)

// Catalog is the slice of the RetroAchievements client the pipeline needs.
type Catalog interface {
	ListActivePlatforms(ctx context.Context) ([]racatalog.System, error)
	ListCatalog(ctx context.Context, systemID int) ([]racatalog.Entry, error)
}

// Summary describes one completed run.
type Summary struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	PlatformCount int
	SkippedDirs   []string
	RomCount      int
	MatchedCount  int
	ReportedRows  int
	ReportPath    string
}

// Pipeline wires the scan stages together. All collaborators are injected;
// the pipeline owns sequencing, not construction.
type Pipeline struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog Catalog
	engine  *match.Engine
	store   *history.Store
}

// New builds a pipeline. The history store may be nil; runs then go
// unrecorded but otherwise proceed normally.
func New(cfg *config.Config, logger *slog.Logger, catalog Catalog, engine *match.Engine, store *history.Store) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		engine:  engine,
		store:   store,
	}
}

// Run executes one full scan. Per-ROM failures are recovered and reported as
// unmatched rows; anything that prevents a trustworthy report aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	logger := p.logger.With(logging.String("run_id", summary.RunID))

	lock := flock.New(filepath.Join(p.cfg.Paths.OutputDir, ".rascan.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "lock", "acquire run lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "lock", "another scan is already running", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	resolved, err := p.resolvePlatforms(logger)
	if err != nil {
		return nil, err
	}
	summary.SkippedDirs = resolved.skipped
	summary.PlatformCount = len(resolved.dirs)

	remote, err := p.fetchRemoteSystems(ctx)
	if err != nil {
		return nil, err
	}

	var results []match.Result
	for _, rp := range resolved.dirs {
		sys, ok := remote[rp.system]
		if !ok {
			logger.Warn("system not tracked by RetroAchievements",
				logging.String("system", rp.system),
				logging.String("folder", rp.dir.Name))
			summary.SkippedDirs = append(summary.SkippedDirs, rp.dir.Name)
			summary.PlatformCount--
			continue
		}

		roms, err := scanner.Roms(rp.dir.Path)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "pipeline", "scan", fmt.Sprintf("list roms in %q", rp.dir.Path), err)
		}
		if len(roms) == 0 {
			logger.Debug("platform folder empty", logging.String("folder", rp.dir.Name))
			continue
		}

		logger.Info("scanning platform",
			logging.String("system", rp.system),
			logging.Int("system_id", sys.ID),
			logging.Int("roms", len(roms)))

		entries, err := p.catalog.ListCatalog(ctx, sys.ID)
		if err != nil {
			return nil, err
		}
		idx := match.NewIndex(entries)

		for _, rom := range roms {
			result := p.engine.MatchOne(ctx, sys.ID, rp.system, rom, idx)
			if result.MatchFound {
				summary.MatchedCount++
			}
			summary.RomCount++
			results = append(results, result)
		}
	}

	reported := results
	if p.cfg.Report.MissingOnly {
		reported = match.FilterMissing(results)
	}
	summary.ReportedRows = len(reported)

	reportPath, err := report.WriteFile(p.cfg.Paths.OutputDir, reported)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "report", "write report", err)
	}
	summary.ReportPath = reportPath
	summary.FinishedAt = time.Now().UTC()

	p.recordRun(ctx, logger, summary)

	logger.Info("scan complete",
		logging.Int("platforms", summary.PlatformCount),
		logging.Int("roms", summary.RomCount),
		logging.Int("matched", summary.MatchedCount),
		logging.String("report", summary.ReportPath))
	return summary, nil
}

type resolvedDir struct {
	dir    scanner.Dir
	system string
}

type resolution struct {
	dirs    []resolvedDir
	skipped []string
}

// resolvePlatforms maps library folders to canonical system names. Folders
// with no mapping are skipped silently apart from a log line; a library where
// nothing resolves is an error because the report would be misleadingly empty.
func (p *Pipeline) resolvePlatforms(logger *slog.Logger) (*resolution, error) {
	dirs, err := scanner.PlatformDirs(p.cfg.Paths.LibraryDir)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "scan", "list platform folders", err)
	}

	resolver := platform.NewResolver(platform.FromConfig(p.cfg.Platforms))
	res := &resolution{}
	for _, dir := range dirs {
		system, ok := resolver.Resolve(dir.Name)
		if !ok {
			logger.Debug("folder does not resolve to a platform", logging.String("folder", dir.Name))
			res.skipped = append(res.skipped, dir.Name)
			continue
		}
		res.dirs = append(res.dirs, resolvedDir{dir: dir, system: system})
	}

	if len(res.dirs) == 0 {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "resolve",
			fmt.Sprintf("no folder under %q resolves to a configured platform", p.cfg.Paths.LibraryDir), nil)
	}
	return res, nil
}

// fetchRemoteSystems builds the canonical-name lookup over the live system
// list. Names are compared exactly; the platform table is responsible for
// producing names RetroAchievements recognizes.
func (p *Pipeline) fetchRemoteSystems(ctx context.Context) (map[string]racatalog.System, error) {
	systems, err := p.catalog.ListActivePlatforms(ctx)
	if err != nil {
		return nil, err
	}
	remote := make(map[string]racatalog.System, len(systems))
	for _, sys := range systems {
		remote[sys.Name] = sys
	}
	return remote, nil
}

func (p *Pipeline) recordRun(ctx context.Context, logger *slog.Logger, summary *Summary) {
	if p.store == nil {
		return
	}
	run := history.Run{
		ID:            summary.RunID,
		StartedAt:     summary.StartedAt,
		FinishedAt:    summary.FinishedAt,
		LibraryRoot:   p.cfg.Paths.LibraryDir,
		PlatformCount: summary.PlatformCount,
		RomCount:      summary.RomCount,
		MatchedCount:  summary.MatchedCount,
		MissingOnly:   p.cfg.Report.MissingOnly,
		ReportPath:    summary.ReportPath,
	}
	if err := p.store.Record(ctx, run); err != nil {
		logger.Warn("recording run history failed", logging.Error(err))
	}
}
