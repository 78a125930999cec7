package outbound

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/apperr"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/metrics"
)

// RetryConfig describes how a failed task is retried.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Config configures a Dispatcher.
type Config struct {
	Workers        int
	QueueSize      int
	AttemptTimeout time.Duration
	Retry          RetryConfig
}

// Dispatcher runs tasks on background workers with retry and dead-letter logging.
// Tasks sharing a key always land on the same worker and run in order.
type Dispatcher struct {
	cfg       Config
	queues    []chan Task
	logger    logx.Logger
	metrics   metrics.Outbound
	retryable func(error) bool
	sleep     func(context.Context, time.Duration) bool

	// mu guards closed; Enqueue holds it for reading while it sends,
	// so nothing lands in a queue after the final drain.
	mu     sync.RWMutex
	closed bool
}

// New creates a Dispatcher. retryable decides whether a failed attempt is worth repeating;
// nil means nothing is retried.
func New(cfg Config, logger logx.Logger, m metrics.Outbound, retryable func(error) bool) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = 1
	}
	if retryable == nil {
		retryable = func(error) bool { return false }
	}
	queues := make([]chan Task, cfg.Workers)
	for i := range queues {
		queues[i] = make(chan Task, cfg.QueueSize)
	}
	return &Dispatcher{
		cfg:       cfg,
		queues:    queues,
		logger:    logger,
		metrics:   m,
		retryable: retryable,
		sleep:     sleepWithContext,
	}
}

// Enqueue hands t to its worker. It never blocks: when the worker queue is full
// or the dispatcher is shut down the task is dead-lettered and false is returned.
func (d *Dispatcher) Enqueue(t Task) bool {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.deadLetter(t, 0, errors.New("dispatcher stopped"))
		return false
	}
	var sent bool
	select {
	case d.queues[d.shard(t.Key)] <- t:
		sent = true
	default:
	}
	d.mu.RUnlock()

	if !sent {
		d.deadLetter(t, 0, errors.New("queue full"))
	}
	return sent
}

// Run starts the workers and blocks until ctx is done.
// Tasks still queued at that point are dead-lettered.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range d.queues {
		q := d.queues[i]
		g.Go(func() error {
			d.work(gctx, q)
			return nil
		})
	}
	err := g.Wait()

	d.mu.Lock()
	d.closed = true
	d.drain()
	d.mu.Unlock()
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (d *Dispatcher) work(ctx context.Context, q <-chan Task) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-q:
			d.execute(ctx, t)
		}
	}
}

func (d *Dispatcher) drain() {
	for _, q := range d.queues {
		for {
			select {
			case t := <-q:
				d.deadLetter(t, 0, errors.New("dispatcher stopped"))
				continue
			default:
			}
			break
		}
	}
}

// execute runs t until it succeeds, fails for good or ctx ends.
func (d *Dispatcher) execute(ctx context.Context, t Task) {
	var lastErr error
	attempt := 1
	for ; attempt <= d.cfg.Retry.MaxAttempts; attempt++ {
		lastErr = d.attempt(ctx, t)
		if lastErr == nil {
			d.metrics.Sent.WithLabelValues(t.Kind).Inc()
			d.logger.Debug("outbound task sent",
				logx.String("task_id", t.ID),
				logx.String("kind", t.Kind),
				logx.String("key", t.Key),
				logx.Int("attempt", attempt),
			)
			return
		}
		if ctx.Err() != nil || attempt == d.cfg.Retry.MaxAttempts || !d.retryable(lastErr) {
			break
		}

		delay := backoff(d.cfg.Retry.BaseDelay, d.cfg.Retry.MaxDelay, attempt)
		d.metrics.Retries.WithLabelValues(t.Kind).Inc()
		d.logger.Warn("outbound task retry",
			logx.String("task_id", t.ID),
			logx.String("kind", t.Kind),
			logx.String("key", t.Key),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(lastErr),
		)
		if !d.sleep(ctx, delay) {
			break
		}
	}
	d.deadLetter(t, attempt, lastErr)
}

func (d *Dispatcher) attempt(ctx context.Context, t Task) (err error) {
	if t.Run == nil {
		return errors.New("task has no run func")
	}
	if d.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.AttemptTimeout)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			err = errors.New("task panicked")
		}
	}()
	return t.Run(ctx)
}

func (d *Dispatcher) deadLetter(t Task, attempts int, cause error) {
	d.metrics.DeadLettered.WithLabelValues(t.Kind).Inc()
	syncErr := &apperr.SyncError{Kind: t.Kind, Key: t.Key, Attempts: attempts, Err: cause}
	d.logger.Error("outbound task dead-lettered",
		logx.String("event", "sync_failure"),
		logx.String("task_id", t.ID),
		logx.String("kind", t.Kind),
		logx.String("key", t.Key),
		logx.Int("attempts", attempts),
		logx.Err(syncErr),
	)
}

func (d *Dispatcher) shard(key string) int {
	if len(d.queues) == 1 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.queues)))
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d < 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
