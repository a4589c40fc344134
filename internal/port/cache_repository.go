package port

import (
	"context"
	"time"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
)

// Broadcaster fans a stock-change event out to currently connected
// dashboard listeners. Best-effort: no persistence, no replay.
type Broadcaster interface {
	Publish(ctx context.Context, ev domain.StockEvent) error
}

// SummaryCache holds the last rendered inventory summary so the slow path
// can degrade to a slightly stale snapshot when the store is unreachable.
type SummaryCache interface {
	GetSummary(ctx context.Context) (string, error)
	SetSummary(ctx context.Context, summary string, ttl time.Duration) error
}
