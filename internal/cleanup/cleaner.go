package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/Wojteg799/SQL-Exercises-App/internal/sandbox"
)

// Cleaner periodically closes sandbox database handles that have been
// idle longer than their TTL.
type Cleaner struct {
	manager  *sandbox.Manager
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(manager *sandbox.Manager, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		manager:  manager,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cleaner) cleanup() {
	slog.Debug("running cleanup cycle")

	if closed := c.manager.CloseIdle(); closed > 0 {
		slog.Info("idle sandbox handles closed", "count", closed)
	}
}
