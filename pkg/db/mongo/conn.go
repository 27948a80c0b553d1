// Package mongo provides the process-wide MongoDB connection cache.
//
// The first caller of Acquire dials the store; concurrent first-time callers
// share that single in-flight attempt instead of each opening their own
// connection. On success the client is cached for the remainder of the
// process lifetime. On failure nothing is cached, so the next call retries
// from scratch.
package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"

	"eventdesk/pkg/config"
	apperrors "eventdesk/pkg/errors"
	"eventdesk/pkg/logger"
)

// ConnectFunc dials the store. Swappable in tests.
type ConnectFunc func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error)

type Cache struct {
	uri     string
	timeout time.Duration
	log     *logger.Logger
	connect ConnectFunc

	group singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client
}

func NewCache(log *logger.Logger, uri string, timeout time.Duration) *Cache {
	return &Cache{
		uri:     uri,
		timeout: timeout,
		log:     log,
		connect: dial,
	}
}

// Acquire returns the cached client, or establishes it. All concurrent
// callers of a first-time acquisition await one shared connection attempt.
func (c *Cache) Acquire(ctx context.Context) (*mongo.Client, error) {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client != nil {
		return client, nil
	}

	if c.uri == "" {
		return nil, apperrors.Configuration(config.EnvMongoURI + " is not set")
	}

	v, err, _ := c.group.Do("connect", func() (any, error) {
		// A previous flight may have populated the cache before we got here.
		c.mu.RLock()
		cached := c.client
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		connect := c.connect
		if connect == nil {
			connect = dial
		}

		cl, err := connect(ctx, c.uri, c.timeout)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.client = cl
		c.mu.Unlock()

		if c.log != nil {
			c.log.Info("Successfully connected to MongoDB")
		}
		return cl, nil
	})
	if err != nil {
		// Nothing is cached on failure; the next Acquire starts a fresh attempt.
		return nil, err
	}

	return v.(*mongo.Client), nil
}

// Close disconnects the cached client, if any, and clears the cache.
func (c *Cache) Close(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func dial(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

var (
	stdOnce sync.Once
	std     *Cache
)

// Acquire returns the process-wide client, dialing it on first use with the
// given configuration. Later calls reuse the cached client regardless of cfg.
func Acquire(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	stdOnce.Do(func() {
		std = NewCache(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	})
	return std.Acquire(ctx)
}
