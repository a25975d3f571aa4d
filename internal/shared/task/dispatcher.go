package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by Submit when no slot is free.
var ErrQueueFull = errors.New("task queue full")

// ErrStopped is returned by Submit after Stop.
var ErrStopped = errors.New("dispatcher stopped")

// Job is a unit of background work. The context is bounded by Config.JobTimeout.
type Job func(ctx context.Context) error

// Config contains dispatcher configuration.
type Config struct {
	Workers    int           `json:"workers" yaml:"workers"`
	QueueSize  int           `json:"queue_size" yaml:"queue_size"`
	JobTimeout time.Duration `json:"job_timeout" yaml:"job_timeout"`
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers:    4,
		QueueSize:  256,
		JobTimeout: 30 * time.Second,
	}
}

type queued struct {
	name string
	job  Job
}

// Dispatcher runs jobs on a fixed pool of workers fed by a bounded queue.
type Dispatcher struct {
	logger *zap.Logger
	config *Config

	mu      sync.RWMutex
	queue   chan queued
	stopped bool

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Call Start before submitting.
func NewDispatcher(logger *zap.Logger, config *Config) *Dispatcher {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.QueueSize < 0 {
		config.QueueSize = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		logger: logger.Named("dispatcher"),
		config: config,
		queue:  make(chan queued, config.QueueSize),
	}
}

// Start launches the workers.
func (d *Dispatcher) Start() {
	d.logger.Info("starting dispatcher",
		zap.Int("workers", d.config.Workers),
		zap.Int("queue_size", d.config.QueueSize))

	for i := 0; i < d.config.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Submit enqueues job without blocking.
func (d *Dispatcher) Submit(name string, job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- queued{name: name, job: job}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop refuses new jobs, drains the queue and waits for the workers.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.logger.Info("stopping dispatcher")
	d.wg.Wait()
	d.logger.Info("dispatcher stopped")
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for q := range d.queue {
		d.run(q)
	}
}

func (d *Dispatcher) run(q queued) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("job panicked", zap.String("job", q.name), zap.Any("panic", r))
		}
	}()

	ctx := context.Background()
	if d.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := q.job(ctx); err != nil {
		d.logger.Warn("job failed",
			zap.String("job", q.name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}
	d.logger.Debug("job completed", zap.String("job", q.name), zap.Duration("duration", time.Since(start)))
}
