package audit

import (
	"context"
	"log/slog"
	"time"
)

// Prune deletes exchanges older than maxAge.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.DeleteBefore(ctx, time.Now().Add(-maxAge))
}

// RunRetention prunes exchanges older than maxAge immediately and then every
// interval until ctx is done. It blocks, so callers run it in a goroutine.
func (s *Store) RunRetention(ctx context.Context, maxAge, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := s.Prune(ctx, maxAge)
		switch {
		case err != nil && ctx.Err() == nil:
			logger.Warn("pruning exchanges failed", "error", err)
		case n > 0:
			logger.Info("pruned exchanges", "deleted", n, "retention", maxAge)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
