// Package jobs runs periodic maintenance while the server is up.
package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/a3health/a3diet/internal/service"
)

type Scheduler struct {
	cron *cron.Cron
	db   *sql.DB
	log  *zap.Logger
}

func New(db *sql.DB, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{cron: cron.New(), db: db, log: log}
}

// AddDoctor schedules the read-only integrity check. An empty spec disables it.
func (s *Scheduler) AddDoctor(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		s.log.Info("doctor job disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() { _, _ = s.CheckIntegrity() }); err != nil {
		return fmt.Errorf("schedule doctor %q: %w", spec, err)
	}
	s.log.Info("doctor job scheduled", zap.String("schedule", spec))
	return nil
}

// CheckIntegrity runs the doctor once without fixing anything and logs the counts.
func (s *Scheduler) CheckIntegrity() (service.DoctorReport, error) {
	report, err := service.RunDoctor(s.db, false)
	if err != nil {
		s.log.Error("doctor run failed", zap.Error(err))
		return report, err
	}
	fields := []zap.Field{
		zap.Int("invalid_macro_splits", report.InvalidMacroSplits),
		zap.Int("invalid_plan_json", report.InvalidPlanJSON),
		zap.Int("meal_total_mismatch", report.MealTotalMismatch),
		zap.Int("users_with_multiple_active_plans", report.MultipleActive),
	}
	if report.HasIssues() {
		s.log.Warn("doctor found issues", fields...)
	} else {
		s.log.Info("doctor clean", fields...)
	}
	return report, nil
}

// Len reports the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
