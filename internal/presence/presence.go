// Package presence tracks which sellers are currently online. A seller is
// online while their heartbeat key lives in redis; the key expires on its own,
// so a crashed client goes offline without any cleanup pass.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imovelhub/crm-api/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "presence:seller:"

// NewClient creates a redis client from the config and verifies connectivity.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Tracker records and queries seller presence.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTracker(client *redis.Client, ttl time.Duration) *Tracker {
	return &Tracker{client: client, ttl: ttl}
}

// Heartbeat marks a seller online for the tracker's TTL. Clients call this
// periodically; each call resets the expiry.
func (t *Tracker) Heartbeat(ctx context.Context, sellerID uuid.UUID) error {
	key := keyPrefix + sellerID.String()
	if err := t.client.Set(ctx, key, time.Now().Unix(), t.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}
	return nil
}

// Disconnect takes a seller offline immediately.
func (t *Tracker) Disconnect(ctx context.Context, sellerID uuid.UUID) error {
	return t.client.Del(ctx, keyPrefix+sellerID.String()).Err()
}

// IsOnline reports whether a single seller is online.
func (t *Tracker) IsOnline(ctx context.Context, sellerID uuid.UUID) (bool, error) {
	n, err := t.client.Exists(ctx, keyPrefix+sellerID.String()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check presence: %w", err)
	}
	return n > 0, nil
}

// OnlineAmong returns the online flag for each of the given sellers, checked
// in one pipelined round trip.
func (t *Tracker) OnlineAmong(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(sellerIDs))
	if len(sellerIDs) == 0 {
		return out, nil
	}

	pipe := t.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(sellerIDs))
	for i, id := range sellerIDs {
		cmds[i] = pipe.Exists(ctx, keyPrefix+id.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to check presence: %w", err)
	}

	for i, id := range sellerIDs {
		out[id] = cmds[i].Val() > 0
	}
	return out, nil
}
