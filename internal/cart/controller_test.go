package cart

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront-state/internal/persist"
	"github.com/angelmondragon/storefront-state/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func newTestController(t *testing.T, adapter persist.Adapter) *Controller {
	t.Helper()
	ctrl, err := NewController(ControllerParams{
		Adapter: adapter,
		Logger:  testLogger(),
	})
	require.NoError(t, err)
	return ctrl
}

func TestNewControllerRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewController(ControllerParams{Logger: testLogger()}); err == nil {
		t.Fatal("expected error without adapter")
	}
	if _, err := NewController(ControllerParams{Adapter: persist.NewMemory()}); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestQueriesBeforeHydrationReportAbsent(t *testing.T) {
	t.Parallel()

	ctrl := newTestController(t, persist.NewMemory())

	assert.False(t, ctrl.Ready())
	assert.False(t, ctrl.IsInCart(1))
	assert.Zero(t, ctrl.GetItemQuantity(1))
	assert.Zero(t, ctrl.ItemCount())
	assert.True(t, ctrl.Total().IsZero())
}

func TestCommandsBeforeHydrationAreRejected(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctrl := newTestController(t, adapter)
	ctx := context.Background()

	ctrl.AddItem(ctx, item(1, "10"))
	assert.False(t, ctrl.IsInCart(1))
	if _, found, _ := adapter.Load(ctx, "cart"); found {
		t.Fatal("rejected command must not persist")
	}
}

func TestHydrateFromEmptySlot(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctrl := newTestController(t, adapter)
	ctx := context.Background()

	ctrl.Hydrate(ctx)
	assert.True(t, ctrl.Ready())
	assert.Empty(t, ctrl.Items())

	// hydration must not write back
	if _, found, _ := adapter.Load(ctx, "cart"); found {
		t.Fatal("hydration wrote to an empty slot")
	}
}

func TestHydrateLoadsPersistedSnapshot(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	seed := Apply(Apply(EmptyState(), AddItem{Item: item(1, "10")}), AddItem{Item: item(1, "10")})
	payload, err := EncodeSnapshot(seed)
	require.NoError(t, err)
	require.NoError(t, adapter.Save(ctx, "cart", payload))

	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	assert.True(t, ctrl.IsInCart(1))
	assert.Equal(t, 2, ctrl.GetItemQuantity(1))
	assert.True(t, ctrl.Total().Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 2, ctrl.ItemCount())
}

func TestHydrateMalformedSnapshotFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	require.NoError(t, adapter.Save(ctx, "cart", `{"items":"not-a-list"}`))

	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	assert.True(t, ctrl.Ready())
	assert.Empty(t, ctrl.Items())
	assert.True(t, ctrl.Total().IsZero())
}

func TestHydrateIsOneShot(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)
	ctrl.AddItem(ctx, item(1, "10"))

	// a later hydrate must not reload and clobber live state
	ctrl.Hydrate(ctx)
	assert.Equal(t, 1, ctrl.GetItemQuantity(1))
}

func TestCommandsWriteThrough(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	ctrl.AddItem(ctx, item(1, "10"))
	ctrl.AddItem(ctx, item(2, "5"))
	ctrl.UpdateQuantity(ctx, 1, 3)
	ctrl.RemoveItem(ctx, 2)

	payload, found, err := adapter.Load(ctx, "cart")
	require.NoError(t, err)
	require.True(t, found, "write-through must persist after each command")

	state, warnings, err := DecodeSnapshot(payload)
	require.NoError(t, err)
	require.NoError(t, warnings.Err())
	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.True(t, state.Total.Equal(decimal.NewFromInt(30)))
}

func TestWriteThroughFailureKeepsStateAuthoritative(t *testing.T) {
	t.Parallel()

	adapter := &failingAdapter{}
	ctx := context.Background()
	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	ctrl.AddItem(ctx, item(1, "10"))

	assert.True(t, ctrl.IsInCart(1), "state must survive a failed save")
	assert.Equal(t, 1, ctrl.GetItemQuantity(1))
	assert.Equal(t, 1, adapter.saveCalls)
}

func TestUnavailableMediumDegradesSilently(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl := newTestController(t, persist.Unavailable{})
	ctrl.Hydrate(ctx)

	ctrl.AddItem(ctx, item(1, "10"))
	ctrl.Clear(ctx)
	ctrl.AddItem(ctx, item(2, "4"))

	assert.True(t, ctrl.IsInCart(2))
	assert.False(t, ctrl.IsInCart(1))
}

func TestRapidSequentialCommandsApplyInOrder(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	ctrl.AddItem(ctx, item(1, "10"))
	ctrl.AddItem(ctx, item(1, "10"))
	ctrl.RemoveItem(ctx, 1)

	assert.False(t, ctrl.IsInCart(1))
	payload, _, err := adapter.Load(ctx, "cart")
	require.NoError(t, err)
	state, _, err := DecodeSnapshot(payload)
	require.NoError(t, err)
	assert.Empty(t, state.Items)
}

type failingAdapter struct {
	saveCalls int
}

func (f *failingAdapter) Load(ctx context.Context, slot string) (string, bool, error) {
	return "", false, nil
}

func (f *failingAdapter) Save(ctx context.Context, slot, payload string) error {
	f.saveCalls++
	return errors.New("disk on fire")
}

func (f *failingAdapter) Ping(ctx context.Context) error {
	return nil
}
