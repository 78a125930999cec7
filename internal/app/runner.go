package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/jobs"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/outbound"
)

const shutdownTimeout = 15 * time.Second

// Runner runs one service from its DI container.
type Runner struct {
	name      string
	runFn     func(*dig.Container) error
	logFatalf func(string, ...interface{})
}

// NewRunner returns a Runner for the named service.
func NewRunner(name string) *Runner {
	r := &Runner{name: name, logFatalf: log.Fatalf}
	r.runFn = func(c *dig.Container) error { return run(c, name) }
	return r
}

// MustRun blocks until the service stops. Shutdown by signal is a normal exit.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	logger := loggerFrom(container)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting", logx.String("service", r.name))
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded", logx.String("service", r.name))
	default:
		r.logFatalf("%s: run error: %v", r.name, err)
	}
}

func loggerFrom(container *dig.Container) logx.Logger {
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

type runIn struct {
	dig.In

	Ctx        context.Context
	Server     *http.Server
	Pool       *pgxpool.Pool
	Logger     logx.Logger
	Dispatcher *outbound.Dispatcher
	Jobs       *jobs.JobManager `optional:"true"`
	Redis      *goredis.Client  `optional:"true"`
}

func run(container *dig.Container, name string) error {
	return container.Invoke(func(in runIn) error {
		defer closeResources(in)
		return serve(in, name, shutdownTimeout)
	})
}

// serve runs the HTTP server and the outbound dispatcher until in.Ctx is done.
// The dispatcher outlives the server so tasks enqueued by in-flight requests are not lost.
func serve(in runIn, name string, timeout time.Duration) error {
	if in.Jobs != nil {
		if err := in.Jobs.StartAll(); err != nil {
			return fmt.Errorf("start jobs: %w", err)
		}
		defer in.Jobs.StopAll()
	}

	dispatchCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()

	g, gctx := errgroup.WithContext(in.Ctx)
	g.Go(func() error {
		if err := in.Dispatcher.Run(dispatchCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("outbound dispatcher: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		in.Logger.Info("listening", logx.String("service", name), logx.String("addr", in.Server.Addr))
		if err := in.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		in.Logger.Info("shutting down", logx.String("service", name))
		err := gracefulShutdown(in.Server, timeout)
		stopDispatcher()
		return err
	})
	return g.Wait()
}

func gracefulShutdown(srv *http.Server, timeout time.Duration) error {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func closeResources(in runIn) {
	if in.Redis != nil {
		if err := in.Redis.Close(); err != nil {
			in.Logger.Warn("redis close error", logx.Err(err))
		}
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
