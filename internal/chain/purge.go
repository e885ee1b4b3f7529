package chain

import (
	"context"
	"fmt"

	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
)

// PurgeRejected implements Service. Values of minRejections below one are
// raised to one so that a transaction never validated is never purged.
func (s *service) PurgeRejected(ctx context.Context, minRejections int) (purged []string) {
	ctx, span := s.tracer.Start(ctx, "chain.PurgeRejected")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "pending pool purge fault", "error", fmt.Sprint(r))
		}
	}()

	minRejections = max(minRejections, 1)
	span.SetAttributes(attribute.Int("purge.min_rejections", minRejections))

	s.mu.Lock()
	defer s.mu.Unlock()

	purged = make([]string, 0)
	remaining := s.pending[:0]
	for _, entry := range s.pending {
		if entry.rejections < minRejections {
			remaining = append(remaining, entry)
			continue
		}

		record := s.transactions[entry.tx.ID]
		record.state = TransactionPurged
		record.pending = nil

		purged = append(purged, entry.tx.ID)
	}

	clear(s.pending[len(remaining):])
	s.pending = remaining

	if len(purged) > 0 {
		s.instruments.purged.Add(ctx, int64(len(purged)))
		logger.Info(ctx, "stuck transactions purged",
			"purge.count", len(purged),
			"purge.min_rejections", minRejections,
		)
	}

	return purged
}
