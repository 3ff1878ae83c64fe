package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"whenavailable/internal/core/domain"
)

const (
	bookingKeyPrefix = "booking:"
	aliasKeyPrefix   = "slot_booking:"
)

type BookingRepository struct {
	client *redis.Client
}

func NewBookingRepository(client *redis.Client) *BookingRepository {
	return &BookingRepository{client: client}
}

func bookingKey(id string) string {
	return bookingKeyPrefix + id
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking, ttl time.Duration) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}
	return r.client.Set(ctx, bookingKey(booking.ID), data, ttl).Err()
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	val, err := r.client.Get(ctx, bookingKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	var booking domain.Booking
	if err := json.Unmarshal([]byte(val), &booking); err != nil {
		return nil, fmt.Errorf("unmarshal booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update rewrites the record with its remaining TTL preserved.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	remaining, err := r.client.TTL(ctx, bookingKey(booking.ID)).Result()
	if err != nil {
		return err
	}
	if remaining < 0 {
		return domain.ErrBookingNotFound
	}

	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}
	return r.client.Set(ctx, bookingKey(booking.ID), data, remaining).Err()
}

// ExtendTTL raises the TTL to at least floor, never lowers it.
func (r *BookingRepository) ExtendTTL(ctx context.Context, id string, floor time.Duration) error {
	remaining, err := r.client.TTL(ctx, bookingKey(id)).Result()
	if err != nil {
		return err
	}
	if remaining >= floor {
		return nil
	}
	return r.client.Expire(ctx, bookingKey(id), floor).Err()
}

// SetAlias points the legacy slot-id-keyed entry at the latest booking.
func (r *BookingRepository) SetAlias(ctx context.Context, slotID, bookingID string, ttl time.Duration) error {
	return r.client.Set(ctx, aliasKeyPrefix+slotID, bookingID, ttl).Err()
}
