package ports

import (
	"context"
	"time"

	"whenavailable/internal/core/domain"
)

// SlotRepository persists slot records in a TTL-expiring key-value store.
// Update must rewrite the whole record reusing its remaining TTL; it never
// restarts the expiration clock.
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot, ttl time.Duration) error
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	TTL(ctx context.Context, id string) (time.Duration, error)
	Update(ctx context.Context, slot *domain.Slot) error
}

// BookingRepository persists booking records keyed by booking id, plus a
// legacy alias keyed by the parent slot id pointing at the latest booking.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking, ttl time.Duration) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// ExtendTTL raises the record's TTL to at least floor. A record whose
	// remaining TTL already exceeds floor is left untouched.
	ExtendTTL(ctx context.Context, id string, floor time.Duration) error
	SetAlias(ctx context.Context, slotID, bookingID string, ttl time.Duration) error
}
