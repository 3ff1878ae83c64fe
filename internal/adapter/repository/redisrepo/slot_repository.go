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

const slotKeyPrefix = "slot:"

type SlotRepository struct {
	client *redis.Client
}

func NewSlotRepository(client *redis.Client) *SlotRepository {
	return &SlotRepository{client: client}
}

func slotKey(id string) string {
	return slotKeyPrefix + id
}

func (r *SlotRepository) Create(ctx context.Context, slot *domain.Slot, ttl time.Duration) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("marshal slot: %w", err)
	}
	return r.client.Set(ctx, slotKey(slot.ID), data, ttl).Err()
}

func (r *SlotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	val, err := r.client.Get(ctx, slotKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// TTL-expired and never-existed are indistinguishable here.
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}

	var slot domain.Slot
	if err := json.Unmarshal([]byte(val), &slot); err != nil {
		return nil, fmt.Errorf("unmarshal slot %s: %w", id, err)
	}
	return &slot, nil
}

func (r *SlotRepository) TTL(ctx context.Context, id string) (time.Duration, error) {
	d, err := r.client.TTL(ctx, slotKey(id)).Result()
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, domain.ErrSlotNotFound
	}
	return d, nil
}

// Update rewrites the full record reusing its remaining TTL. The expiration
// clock set at creation is never restarted.
func (r *SlotRepository) Update(ctx context.Context, slot *domain.Slot) error {
	remaining, err := r.TTL(ctx, slot.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("marshal slot: %w", err)
	}
	return r.client.Set(ctx, slotKey(slot.ID), data, remaining).Err()
}
