package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLeaseHeld is returned by New when another server instance owns
	// the keyspace
	ErrLeaseHeld = errors.New("redis keyspace is leased by another server instance")

	// ErrLeaseLost is returned by Apply once the lease expired or was taken
	// over. The storage refuses writes from then on.
	ErrLeaseLost = errors.New("redis keyspace lease lost")
)

// Membership preconditions are checked by the coordinator before Apply
// watches any key, so only one process may write a keyspace at a time.
// The lease enforces that.

var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type lease struct {
	client *redis.Client
	token  string
	ttl    time.Duration
	lost   atomic.Bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func acquireLease(ctx context.Context, client *redis.Client, ttl time.Duration) (*lease, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("redis lease ttl must be positive, got %s", ttl)
	}

	token := uuid.NewString()
	ok, err := client.SetNX(ctx, leaseKey(), token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lease: %w", err)
	}
	if !ok {
		return nil, ErrLeaseHeld
	}

	l := &lease{
		client: client,
		token:  token,
		ttl:    ttl,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.renewLoop()
	return l, nil
}

func (l *lease) renewLoop() {
	defer close(l.done)

	interval := l.ttl / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			renewed, err := renewScript.Run(ctx, l.client, []string{leaseKey()}, l.token, l.ttl.Milliseconds()).Int()
			cancel()
			// A failed round trip is retried on the next tick; the key
			// still has up to two intervals left
			if err != nil {
				continue
			}
			if renewed == 0 {
				l.lost.Store(true)
				return
			}
		}
	}
}

// release stops renewal and deletes the key if this instance still owns it
func (l *lease) release() error {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done

	if l.lost.Load() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{leaseKey()}, l.token).Err(); err != nil {
		return fmt.Errorf("release lease: %w", err)
	}
	return nil
}
