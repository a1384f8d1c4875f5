package wishlist

import (
	"context"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront-state/internal/persist"
	pkgerrors "github.com/angelmondragon/storefront-state/pkg/errors"
	"github.com/angelmondragon/storefront-state/pkg/logger"
	"github.com/angelmondragon/storefront-state/pkg/metrics"
	"github.com/angelmondragon/storefront-state/pkg/types"
)

const domain = "wishlist"

type phase int

const (
	phaseUninitialized phase = iota
	phaseHydrating
	phaseReady
)

// ControllerParams groups dependencies for the wishlist controller.
type ControllerParams struct {
	Adapter persist.Adapter
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	Slot    string
}

// Controller owns the canonical in-memory wishlist state and mirrors the cart
// controller's lifecycle: hydrate once, then command application with
// write-through persistence.
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

// NewController builds a wishlist controller in the Uninitialized phase.
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

// Hydrate performs the one-time load from the adapter; later calls are
// no-ops. Any failure degrades to empty state and never writes back.
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

// AddItem adds the item once; duplicate ids leave the state unchanged.
func (c *Controller) AddItem(ctx context.Context, item types.Item) {
	c.dispatch(ctx, AddItem{Item: item})
}

// RemoveItem drops the item with the given id; absent ids are a no-op.
func (c *Controller) RemoveItem(ctx context.Context, id int64) {
	c.dispatch(ctx, RemoveItem{ID: id})
}

// Clear empties the wishlist.
func (c *Controller) Clear(ctx context.Context) {
	c.dispatch(ctx, Clear{})
}

// IsInWishlist reports membership; false before hydration completes.
func (c *Controller) IsInWishlist(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Contains(id)
}

// Items returns a copy of the current items in insertion order.
func (c *Controller) Items() []types.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]types.Item, len(c.state.Items))
	copy(items, c.state.Items)
	return items
}

// ItemCount returns the derived item count.
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
		c.logg.Warn(c.logg.WithField(ctx, "action", ActionName(action)), "command before hydration rejected")
		return
	}

	c.state = Apply(c.state, action)
	c.metrics.IncMutation(domain, ActionName(action))
	c.writeThrough(ctx)
}

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
