package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event is the pub/sub payload for one invalidation.
type Event struct {
	Origin string    `json:"origin"`
	Table  string    `json:"table"`
	At     time.Time `json:"at"`
}

// RedisBridge publishes local invalidations to a Redis channel and delivers
// invalidations published by other processes into the Hub.
// It is safe for concurrent use.
type RedisBridge struct {
	rdb     *redis.Client
	channel string
	origin  string
	hub     *Hub
	attach  sync.Once
}

// NewRedisBridge creates a bridge for hub on channel. Local invalidations are
// not published until Connect succeeds. Call Run to start receiving.
func NewRedisBridge(opts *redis.Options, channel string, hub *Hub) (*RedisBridge, error) {
	if channel == "" {
		return nil, fmt.Errorf("notify: channel cannot be empty")
	}
	b := &RedisBridge{
		rdb:     redis.NewClient(opts),
		channel: channel,
		origin:  uuid.NewString(),
		hub:     hub,
	}
	return b, nil
}

// Origin identifies this process in published events.
func (b *RedisBridge) Origin() string { return b.origin }

// Ping verifies Redis connectivity.
func (b *RedisBridge) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// Connect pings Redis and, once it answers, registers the bridge as a hub
// forwarder. A bridge that never connects leaves local writes untouched.
func (b *RedisBridge) Connect(ctx context.Context) error {
	if err := b.Ping(ctx); err != nil {
		return err
	}
	b.attach.Do(func() { b.hub.AddForwarder(b) })
	return nil
}

// Close closes the Redis connection. Implements io.Closer.
func (b *RedisBridge) Close() error {
	return b.rdb.Close()
}

// Forward publishes an invalidation of table. Implements Forwarder.
func (b *RedisBridge) Forward(ctx context.Context, table string) error {
	payload, err := json.Marshal(Event{Origin: b.origin, Table: table, At: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", b.channel, err)
	}
	return nil
}

// Run subscribes to the channel and delivers remote events into the hub until
// ctx is cancelled. ready, if non-nil, is closed once the subscription is
// confirmed by the server.
func (b *RedisBridge) Run(ctx context.Context, ready chan<- struct{}) error {
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	if ready != nil {
		close(ready)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("notify: skip malformed event: %v", err)
				continue
			}
			if ev.Origin == b.origin || ev.Table == "" {
				continue
			}
			b.hub.Deliver(ev.Table)
		}
	}
}
