package consumer

import (
	"context"
	"fmt"

	"github.com/wb-go/wbf/zlog"
	"golang.org/x/sync/errgroup"
)

// Sweep periodically re-drives notifications stuck in pending through the
// delivery state machine. It is the safety net for notifications whose
// stream publish was lost or never observed by a consumer.
type Sweep struct {
	handler     *Handler
	service     notificationService
	batchSize   int
	concurrency int
}

// NewSweep creates a sweep over pending notifications.
func NewSweep(handler *Handler, service notificationService, batchSize, concurrency int) *Sweep {
	if batchSize <= 0 {
		batchSize = 100
	}
	if concurrency <= 0 {
		concurrency = 10
	}

	return &Sweep{
		handler:     handler,
		service:     service,
		batchSize:   batchSize,
		concurrency: concurrency,
	}
}

// Run executes one sweep pass: fetch a batch of pending notifications oldest
// first and process them with bounded best-effort parallelism. Attempts are
// independent; one failure does not stop the batch.
func (s *Sweep) Run(ctx context.Context) error {
	pending, err := s.service.ListPending(ctx, s.batchSize)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	if len(pending) == 0 {
		zlog.Logger.Debug().Msg("no pending notifications to sweep")
		return nil
	}

	zlog.Logger.Info().Int("count", len(pending)).Msg("sweeping pending notifications")

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for _, n := range pending {
		g.Go(func() error {
			s.handler.ProcessNotification(ctx, n)
			return nil
		})
	}

	_ = g.Wait()

	zlog.Logger.Info().Int("count", len(pending)).Msg("sweep pass completed")

	return nil
}
