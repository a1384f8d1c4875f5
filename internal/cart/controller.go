package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront-state/internal/persist"
	pkgerrors "github.com/angelmondragon/storefront-state/pkg/errors"
	"github.com/angelmondragon/storefront-state/pkg/logger"
	"github.com/angelmondragon/storefront-state/pkg/metrics"
	"github.com/angelmondragon/storefront-state/pkg/types"
	"github.com/shopspring/decimal"
)

const domain = "cart"

type phase int

const (
	phaseUninitialized phase = iota
	phaseHydrating
	phaseReady
)

// ControllerParams groups dependencies for the cart controller.
type ControllerParams struct {
	Adapter persist.Adapter
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	Slot    string
}

// Controller owns the canonical in-memory cart state. It sequences reducer
// application, answers queries, and writes the full snapshot through to the
// adapter after every accepted mutation. All methods are driven from a single
// goroutine; the mutex only guards against accidental cross-goroutine reads.
type Controller struct {
	adapter persist.Adapter
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
	slot    string

	mu          sync.Mutex
	state       State
	phase       phase
	hydrateOnce sync.Once
}

// NewController builds a cart controller in the Uninitialized phase.
func NewController(params ControllerParams) (*Controller, error) {
	if params.Adapter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "persist adapter is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	slot := strings.TrimSpace(params.Slot)
	if slot == "" {
		slot = domain
	}
	return &Controller{
		adapter: params.Adapter,
		logg:    params.Logger,
		metrics: params.Metrics,
		slot:    slot,
		state:   EmptyState(),
	}, nil
}

// Hydrate performs the one-time load from the adapter. It is re-entry safe:
// later calls are no-ops. Failures of any kind degrade to empty state; the
// load itself never triggers a write-back.
func (c *Controller) Hydrate(ctx context.Context) {
	c.hydrateOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.phase = phaseHydrating
		defer func() { c.phase = phaseReady }()

		ctx = c.logg.WithDomain(c.logg.WithSlot(ctx, c.slot), domain)

		payload, found, err := c.adapter.Load(ctx, c.slot)
		if err != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "snapshot load failed, starting empty")
			c.metrics.IncHydration(domain, metrics.HydrationFallback)
			return
		}
		if !found {
			c.metrics.IncHydration(domain, metrics.HydrationEmpty)
			return
		}

		state, warnings, err := DecodeSnapshot(payload)
		if err != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "snapshot malformed, starting empty")
			c.metrics.IncHydration(domain, metrics.HydrationFallback)
			return
		}
		if warnErr := warnings.Err(); warnErr != nil {
			c.logg.Warn(c.logg.WithField(ctx, "repairs", warnErr.Error()), "snapshot sanitized with repairs")
		}
		c.state = Apply(c.state, Load{State: state})
		c.metrics.IncHydration(domain, metrics.HydrationLoaded)
	})
}

// Ready reports whether hydration has completed.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == phaseReady
}

// AddItem adds the item, or bumps its quantity when already present.
func (c *Controller) AddItem(ctx context.Context, item types.Item) {
	c.dispatch(ctx, AddItem{Item: item})
}

// RemoveItem drops the line with the given id; absent ids are a no-op.
func (c *Controller) RemoveItem(ctx context.Context, id int64) {
	c.dispatch(ctx, RemoveItem{ID: id})
}

// UpdateQuantity sets a line's quantity; zero or negative removes the line.
func (c *Controller) UpdateQuantity(ctx context.Context, id int64, quantity int) {
	c.dispatch(ctx, UpdateQuantity{ID: id, Quantity: quantity})
}

// Clear empties the cart.
func (c *Controller) Clear(ctx context.Context) {
	c.dispatch(ctx, Clear{})
}

// IsInCart reports membership. Before hydration completes it reports false
// rather than erroring.
func (c *Controller) IsInCart(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Contains(id)
}

// GetItemQuantity returns the held quantity, zero when absent or not yet
// hydrated. Never negative.
func (c *Controller) GetItemQuantity(id int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Quantity(id)
}

// Items returns a copy of the current lines in insertion order.
func (c *Controller) Items() []types.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]types.CartLine, len(c.state.Items))
	copy(items, c.state.Items)
	return items
}

// Total returns the derived cart total.
func (c *Controller) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Total
}

// ItemCount returns the derived unit count.
func (c *Controller) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ItemCount
}

func (c *Controller) dispatch(ctx context.Context, action Action) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = c.logg.WithDomain(c.logg.WithSlot(ctx, c.slot), domain)

	if c.phase != phaseReady {
		// Commands are rejected, not queued, before hydration; the adapters
		// are synchronous so a correctly wired caller never hits this.
		c.logg.Warn(c.logg.WithField(ctx, "action", ActionName(action)), "command before hydration rejected")
		return
	}

	c.state = Apply(c.state, action)
	c.metrics.IncMutation(domain, ActionName(action))
	c.writeThrough(ctx)
}

// writeThrough persists the full snapshot. Failures are logged and counted;
// the in-memory state stays authoritative for the session.
func (c *Controller) writeThrough(ctx context.Context) {
	payload, err := EncodeSnapshot(c.state)
	if err != nil {
		c.logg.Error(ctx, "encode snapshot failed", err)
		c.metrics.IncSaveFailure(domain)
		return
	}
	if err := c.adapter.Save(ctx, c.slot, payload); err != nil {
		c.logg.Error(ctx, "snapshot write-through failed", err)
		c.metrics.IncSaveFailure(domain)
	}
}
