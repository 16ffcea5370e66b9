package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/teemow/gtcli/internal/instrumentation"
	"github.com/teemow/gtcli/internal/logging"
	"github.com/teemow/gtcli/internal/store"
)

// ClientCache lazily constructs and caches one authenticated Tasks client
// per account email, backed by the account store. Entries never expire on
// their own; callers invalidate a single account (e.g. after
// re-authorization) or clear the whole cache.
type ClientCache struct {
	mu      sync.Mutex
	store   *store.Store
	clients map[string]*Client
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

// NewClientCache creates an empty cache over the given account store.
// Metrics may be nil; constructed clients then record nothing.
func NewClientCache(st *store.Store, metrics *instrumentation.Metrics, logger *slog.Logger) *ClientCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientCache{
		store:   st,
		clients: make(map[string]*Client),
		metrics: metrics,
		logger:  logger,
	}
}

// ForAccount returns the cached client for the given email, constructing
// it from the stored account record on first use.
func (c *ClientCache) ForAccount(ctx context.Context, email string) (*Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[email]; ok {
		return client, nil
	}

	account, ok := c.store.GetAccount(email)
	if !ok {
		return nil, fmt.Errorf("account not found: %s", email)
	}

	client, err := NewClient(ctx, account, c.metrics)
	if err != nil {
		return nil, err
	}

	c.clients[email] = client
	c.logger.Debug("created tasks client",
		slog.String(logging.KeyAccount, logging.AnonymizeEmail(email)))
	return client, nil
}

// Invalidate drops the cached client for a single account.
func (c *ClientCache) Invalidate(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.clients, email)
}

// Clear drops all cached clients.
func (c *ClientCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clients = make(map[string]*Client)
}

// Len returns the number of cached clients.
func (c *ClientCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}
