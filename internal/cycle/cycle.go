// Package cycle drives the weekly boundary: every Friday at midnight the
// week is closed, its artifacts are written and the session catalog is
// derived again.
//
// The in-memory roll always completes. Artifact writes are retried, and a
// closing whose artifacts still could not be written is kept and tried again
// at the next boundary and on Stop.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gym-ledger/internal/metrics"
	"gym-ledger/internal/settlement"
	"gym-ledger/pkg/logger"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule fires at 00:00 every Friday.
const DefaultSchedule = "0 0 * * 5"

type State int32

const (
	Active State = iota
	Settling
)

func (s State) String() string {
	if s == Settling {
		return "SETTLING"
	}
	return "ACTIVE"
}

// Week is the part of the engine the controller drives.
type Week interface {
	CloseWeek(runID string) settlement.Closing
	Snapshot(runID string) settlement.Closing
	LastClosed() time.Time
}

type Config struct {
	Schedule      string
	Location      *time.Location
	RetryAttempts uint
	RetryDelay    time.Duration
	RetryMaxDelay time.Duration
	Now           func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Schedule == "" {
		c.Schedule = DefaultSchedule
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = 5
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = time.Minute
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type Controller struct {
	week Week
	sink settlement.Sink
	cfg  Config
	log  *zap.Logger
	cron *cron.Cron

	// mu serializes boundaries and guards pending.
	mu      sync.Mutex
	state   atomic.Int32
	pending []settlement.Closing
}

func New(week Week, sink settlement.Sink, cfg Config, log *zap.Logger) *Controller {
	cfg = cfg.withDefaults()
	log = logger.Component(log, "cycle")
	return &Controller{
		week: week,
		sink: sink,
		cfg:  cfg,
		log:  log,
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger{log.Sugar()}),
			cron.WithChain(cron.Recover(cronLogger{log.Sugar()})),
		),
	}
}

// Start schedules the weekly boundary. When a boundary was due earlier today
// and the week has not been closed since, it runs before Start returns.
func (c *Controller) Start() error {
	sched, err := cron.ParseStandard(c.cfg.Schedule)
	if err != nil {
		return fmt.Errorf("scheduling weekly boundary %q: %w", c.cfg.Schedule, err)
	}

	if due, ok := c.missedToday(sched); ok {
		c.log.Info("running boundary missed earlier today", zap.Time("due", due))
		if err := c.RunBoundary(context.Background()); err != nil {
			c.log.Error("weekly boundary left artifacts unwritten", zap.Error(err))
		}
	}

	id := c.cron.Schedule(sched, cron.FuncJob(func() {
		if err := c.RunBoundary(context.Background()); err != nil {
			c.log.Error("weekly boundary left artifacts unwritten", zap.Error(err))
		}
	}))
	c.cron.Start()
	c.log.Info("weekly boundary scheduled",
		zap.String("schedule", c.cfg.Schedule),
		zap.Time("next", c.cron.Entry(id).Next))
	return nil
}

// missedToday returns the boundary scheduled between midnight and now, if
// the week was not closed after it.
func (c *Controller) missedToday(sched cron.Schedule) (time.Time, bool) {
	now := c.cfg.Now().In(c.cfg.Location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.cfg.Location)
	due := sched.Next(midnight.Add(-time.Second))
	if due.After(now) {
		return time.Time{}, false
	}
	if !c.week.LastClosed().Before(due) {
		return time.Time{}, false
	}
	return due, true
}

// Stop waits for a running boundary, then tries once more to write the
// closings still pending.
func (c *Controller) Stop(ctx context.Context) error {
	select {
	case <-c.cron.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flush(ctx)
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

// Pending returns the number of closings whose artifacts are not written.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// RunBoundary closes the week and writes its artifacts along with any
// earlier closing still pending. The returned error only concerns the
// artifacts: the week is closed regardless.
func (c *Controller) RunBoundary(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	c.state.Store(int32(Settling))
	defer c.state.Store(int32(Active))

	runID := uuid.NewString()
	closing := c.week.CloseWeek(runID)
	c.pending = append(c.pending, closing)

	err := c.flush(ctx)
	metrics.BoundaryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BoundaryRuns.WithLabelValues("partial").Inc()
	} else {
		metrics.BoundaryRuns.WithLabelValues("ok").Inc()
	}

	c.log.Info("weekly boundary done",
		zap.String(logger.FieldRunID, runID),
		zap.Int("settlements", len(closing.Settlements)),
		zap.Int("pending", len(c.pending)),
		zap.Duration("took", time.Since(start)))
	return err
}

// WriteReport writes the weekly report of the week so far without
// closing it.
func (c *Controller) WriteReport(ctx context.Context) (settlement.Closing, error) {
	snap := c.week.Snapshot(uuid.NewString())
	report := settlement.Closing{
		RunID:    snap.RunID,
		ClosedAt: snap.ClosedAt,
		Report:   snap.Report,
	}
	return report, c.write(ctx, report)
}

func (c *Controller) flush(ctx context.Context) error {
	var problems []error
	var kept []settlement.Closing
	for _, closing := range c.pending {
		if err := c.write(ctx, closing); err != nil {
			metrics.SettlementWriteFailures.Inc()
			c.log.Error("settlement artifacts not written",
				zap.String(logger.FieldRunID, closing.RunID),
				zap.Error(err))
			problems = append(problems, fmt.Errorf("closing %s: %w", closing.RunID, err))
			kept = append(kept, closing)
		}
	}
	c.pending = kept
	metrics.PendingClosings.Set(float64(len(kept)))
	return errors.Join(problems...)
}

func (c *Controller) write(ctx context.Context, closing settlement.Closing) error {
	return retry.Do(
		func() error {
			return c.sink.Write(ctx, closing)
		},
		retry.Attempts(c.cfg.RetryAttempts),
		retry.Delay(c.cfg.RetryDelay),
		retry.MaxDelay(c.cfg.RetryMaxDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("settlement write attempt failed",
				zap.String(logger.FieldRunID, closing.RunID),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
}

// cronLogger routes cron's own messages through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
