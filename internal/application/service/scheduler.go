package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeneeldumasia/mp/internal/config"
	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/domain/repository"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs the periodic report export and idempotency-key cleanup
type Scheduler struct {
	cron     *cron.Cron
	reports  *ReportService
	idemRepo repository.IdempotencyRepository
	cfg      config.ReportConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler; no jobs run until Start
func NewScheduler(reports *ReportService, idemRepo repository.IdempotencyRepository, cfg config.ReportConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		reports:  reports,
		idemRepo: idemRepo,
		cfg:      cfg,
		log:      log.WithComponent("scheduler"),
		now:      time.Now,
	}
}

// Start registers the configured jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if s.cfg.ExportCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.ExportCron, s.runExport); err != nil {
			return fmt.Errorf("invalid REPORT_EXPORT_CRON %q: %w", s.cfg.ExportCron, err)
		}
	}
	if s.cfg.CleanupCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.CleanupCron, s.runCleanup); err != nil {
			return fmt.Errorf("invalid IDEMPOTENCY_CLEANUP_CRON %q: %w", s.cfg.CleanupCron, err)
		}
	}

	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop stops scheduling and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	date := s.now().Format(entity.DateLayout)
	if _, err := s.ExportDay(ctx, date); err != nil {
		s.log.Error("scheduled export failed", "date", date, "error", err)
	}
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.CleanupIdempotencyKeys(ctx); err != nil {
		s.log.Error("idempotency cleanup failed", "error", err)
	}
}

// ExportDay writes REPORT_EXPORT_DIR/sales-<date>.xlsx and returns its path
func (s *Scheduler) ExportDay(ctx context.Context, date string) (string, error) {
	if err := os.MkdirAll(s.cfg.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(s.cfg.ExportDir, "sales-"+date+".xlsx")
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if err := s.reports.ExportDailyXLSX(ctx, date, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("move export file: %w", err)
	}

	s.log.Info("sales exported", "path", path)
	return path, nil
}

// CleanupIdempotencyKeys removes expired keys
func (s *Scheduler) CleanupIdempotencyKeys(ctx context.Context) (int64, error) {
	removed, err := s.idemRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("expired idempotency keys removed", "count", removed)
	}
	return removed, nil
}
