package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper removes expired entries and reports how many it dropped
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SessionJanitor periodically sweeps expired browse sessions from an
// in-memory store
type SessionJanitor struct {
	store    Sweeper
	interval time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewSessionJanitor creates a new session janitor job
func NewSessionJanitor(store Sweeper, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionJanitor{
		store:    store,
		interval: interval,
		logger:   logger.Named("session_janitor"),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the janitor loop
func (j *SessionJanitor) Start() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	j.wg.Add(1)
	go j.run()
	j.logger.Info("session janitor started", zap.Duration("interval", j.interval))
}

// Stop gracefully stops the janitor and waits for the loop to exit
func (j *SessionJanitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopCh)
	j.wg.Wait()
	j.logger.Info("session janitor stopped")
}

func (j *SessionJanitor) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopCh:
			return
		}
	}
}

func (j *SessionJanitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), j.interval)
	defer cancel()

	removed, err := j.store.Sweep(ctx)
	if err != nil {
		j.logger.Warn("session sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Debug("expired sessions removed", zap.Int("count", removed))
	}
}
