// Package jobs holds the scheduled background jobs of service-delivery.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/metrics"
)

// StatsSource provides the aggregate counts published by StatsJob.
type StatsSource interface {
	CountByStatus(ctx context.Context) (map[domain.DeliveryStatus]int64, error)
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// StatsJob periodically refreshes the delivery gauges.
type StatsJob struct {
	source     StatsSource
	gauges     metrics.DeliveryStats
	schedule   string
	staleAfter time.Duration
	timeout    time.Duration
	now        func() time.Time
	cron       *cron.Cron
	logger     logx.Logger
}

// NewStatsJob creates the job. schedule uses the cron syntax, descriptors like "@every 30s" included.
func NewStatsJob(source StatsSource, gauges metrics.DeliveryStats, schedule string, staleAfter time.Duration, logger logx.Logger) *StatsJob {
	if logger == nil {
		logger = logx.Nop()
	}
	return &StatsJob{
		source:     source,
		gauges:     gauges,
		schedule:   schedule,
		staleAfter: staleAfter,
		timeout:    10 * time.Second,
		now:        time.Now,
		cron:       cron.New(),
		logger:     logger.With(logx.String("component", "delivery_stats_job")),
	}
}

// Start registers the job and starts the scheduler.
func (j *StatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		if err := j.Refresh(ctx); err != nil {
			j.logger.Error("delivery stats refresh failed", logx.Err(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	j.logger.Info("delivery stats job started", logx.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running refresh.
func (j *StatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("delivery stats job stopped")
}

// Refresh recomputes the gauges once.
func (j *StatsJob) Refresh(ctx context.Context) error {
	counts, err := j.source.CountByStatus(ctx)
	if err != nil {
		return err
	}
	// статусы без записей тоже публикуем, иначе в графике висит старое значение
	for _, s := range domain.DeliveryStatuses() {
		j.gauges.ByStatus.WithLabelValues(string(s)).Set(float64(counts[s]))
	}

	stale, err := j.source.CountPendingOlderThan(ctx, j.now().Add(-j.staleAfter))
	if err != nil {
		return err
	}
	j.gauges.StalePending.Set(float64(stale))

	j.logger.Debug("delivery stats refreshed", logx.Int64("stale_pending", stale))
	return nil
}
