package cache

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
)

// DefaultChannel is the Redis channel carrying table invalidations.
const DefaultChannel = "edgewater:invalidate"

// Bus fans table invalidations out to other processes.
type Bus interface {
	Publish(ctx context.Context, tables ...string) error
}

// NopBus is used when Redis is not configured.
type NopBus struct{}

func (NopBus) Publish(context.Context, ...string) error { return nil }

// RedisBus publishes invalidations on a Redis channel. Messages carry the
// publisher's origin id so a process ignores its own broadcasts.
type RedisBus struct {
	client  *redis.Client
	channel string
	origin  string
	log     *logger.Logger
}

func NewRedisBus(client *redis.Client, channel string, log *logger.Logger) *RedisBus {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.Default()
	}
	return &RedisBus{client: client, channel: channel, origin: uuid.NewString(), log: log.WithComponent("cache-bus")}
}

func encodeMessage(origin string, tables []string) string {
	return origin + "|" + strings.Join(tables, ",")
}

func decodeMessage(payload string) (origin string, tables []string) {
	origin, rest, ok := strings.Cut(payload, "|")
	if !ok {
		return "", nil
	}
	for _, t := range strings.Split(rest, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	return origin, tables
}

func (b *RedisBus) Publish(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	return b.client.Publish(ctx, b.channel, encodeMessage(b.origin, tables)).Err()
}

// Subscribe invalidates sessions for every message from another process until ctx is done.
func (b *RedisBus) Subscribe(ctx context.Context, sessions *Sessions) error {
	sub := b.client.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				origin, tables := decodeMessage(msg.Payload)
				if origin == b.origin || len(tables) == 0 {
					continue
				}
				n := sessions.Invalidate(tables...)
				b.log.Debug("remote invalidation", "tables", tables, "dropped", n)
			}
		}
	}()
	return nil
}

// Invalidator drops dependent slots locally and broadcasts to peers.
type Invalidator struct {
	Sessions *Sessions
	Bus      Bus
	Log      *logger.Logger
}

func (i *Invalidator) Invalidate(ctx context.Context, tables ...string) {
	if i == nil || len(tables) == 0 {
		return
	}
	if i.Sessions != nil {
		i.Sessions.Invalidate(tables...)
	}
	if i.Bus == nil {
		return
	}
	if err := i.Bus.Publish(ctx, tables...); err != nil && i.Log != nil {
		i.Log.Warn("publish invalidation failed", "tables", tables, "error", err)
	}
}
