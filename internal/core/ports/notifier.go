package ports

import (
	"context"
	"time"

	"whenavailable/internal/core/domain"
)

// Notifier delivers creator- and booker-facing messages. Implementations must
// never fail the calling request: errors are logged and swallowed.
type Notifier interface {
	BookingCreated(ctx context.Context, slot *domain.Slot, booking *domain.Booking)
	BookingRescheduled(ctx context.Context, slot *domain.Slot, booking *domain.Booking, previous time.Time)
	BookingCancelled(ctx context.Context, slot *domain.Slot, booking *domain.Booking)
}

// RateLimiter counts requests per key within a time window against shared
// storage, so limits hold across restarts and instances.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
