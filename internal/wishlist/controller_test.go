package wishlist

import (
	"bytes"
	"context"
	"testing"

	"github.com/angelmondragon/storefront-state/internal/persist"
	"github.com/angelmondragon/storefront-state/pkg/logger"
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
	if err != nil {
		t.Fatalf("controller construction failed: %v", err)
	}
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
	if ctrl.Ready() {
		t.Fatal("controller should not be ready before hydrate")
	}
	if ctrl.IsInWishlist(1) {
		t.Fatal("membership must report false before hydration")
	}
	if ctrl.ItemCount() != 0 {
		t.Fatal("count must be zero before hydration")
	}
}

func TestHydrateAndCommands(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	ctrl.AddItem(ctx, item(7))
	ctrl.AddItem(ctx, item(7))
	ctrl.AddItem(ctx, item(3))
	ctrl.RemoveItem(ctx, 3)

	if !ctrl.IsInWishlist(7) || ctrl.IsInWishlist(3) {
		t.Fatalf("unexpected membership: %+v", ctrl.Items())
	}
	if ctrl.ItemCount() != 1 {
		t.Fatalf("expected one item, got %d", ctrl.ItemCount())
	}

	payload, found, err := adapter.Load(ctx, "wishlist")
	if err != nil || !found {
		t.Fatalf("expected persisted snapshot, found=%v err=%v", found, err)
	}
	state, _, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode persisted snapshot: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].ID != 7 {
		t.Fatalf("persisted snapshot incorrect: %+v", state)
	}
}

func TestHydrateLoadsPersistedSnapshot(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	seed := Apply(EmptyState(), AddItem{Item: item(9)})
	payload, err := EncodeSnapshot(seed)
	if err != nil {
		t.Fatalf("encode seed: %v", err)
	}
	if err := adapter.Save(ctx, "wishlist", payload); err != nil {
		t.Fatalf("seed save: %v", err)
	}

	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	if !ctrl.IsInWishlist(9) {
		t.Fatal("expected hydrated membership")
	}
}

func TestHydrateMalformedSnapshotFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	if err := adapter.Save(ctx, "wishlist", "][ nope"); err != nil {
		t.Fatalf("seed save: %v", err)
	}

	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	if !ctrl.Ready() {
		t.Fatal("controller must reach ready even on malformed snapshots")
	}
	if ctrl.ItemCount() != 0 {
		t.Fatalf("expected empty fallback, got %d items", ctrl.ItemCount())
	}
}

func TestHydrationDoesNotWriteBack(t *testing.T) {
	t.Parallel()

	adapter := persist.NewMemory()
	ctx := context.Background()
	ctrl := newTestController(t, adapter)
	ctrl.Hydrate(ctx)

	if _, found, _ := adapter.Load(ctx, "wishlist"); found {
		t.Fatal("hydration of an empty slot must not write back")
	}
}

func TestUnavailableMediumDegradesSilently(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl := newTestController(t, persist.Unavailable{})
	ctrl.Hydrate(ctx)

	ctrl.AddItem(ctx, item(1))
	if !ctrl.IsInWishlist(1) {
		t.Fatal("state must stay authoritative when saves fail")
	}
}
