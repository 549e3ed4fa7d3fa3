package cart

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"petstore-client/internal/adapters/storage/memory"
)

type badgeSpy struct {
	calls   int
	count   int
	visible bool
}

func (b *badgeSpy) Render(count int, visible bool) {
	b.calls++
	b.count = count
	b.visible = visible
}

func newTestService(t *testing.T) (*Service, *memory.KVStore, *badgeSpy) {
	t.Helper()
	store := memory.NewKVStore()
	badge := &badgeSpy{}
	return NewService(store, badge, nil), store, badge
}

func TestGetCart_EmptyWhenAbsent(t *testing.T) {
	svc, _, _ := newTestService(t)

	items := svc.GetCart(context.Background())
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestGetCart_CorruptValueIsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	for _, raw := range []string{
		`not json`,
		`{"itemId":"1","quantity":1}`,
		`null`,
		`[{"itemId":"","quantity":1}]`,
		`[{"itemId":"1","quantity":0}]`,
		`[{"itemId":"1","quantity":"two"}]`,
	} {
		require.NoError(t, store.Set(ctx, StorageKey, raw))
		require.Empty(t, svc.GetCart(ctx), "raw %q", raw)
	}
}

func TestAddToCart_MergesSameItem(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.AddToCart(ctx, "p1", 2))
	require.NoError(t, svc.AddToCart(ctx, "p1", 3))

	require.Equal(t, []Item{{ItemID: "p1", Quantity: 5}}, svc.GetCart(ctx))
}

func TestAddToCart_KeepsInsertionOrderAndPersistsJSON(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	require.NoError(t, svc.AddToCart(ctx, "b", 1))
	require.NoError(t, svc.AddToCart(ctx, "a", 1))
	require.NoError(t, svc.AddToCart(ctx, "b", 1))

	want := []Item{{ItemID: "b", Quantity: 2}, {ItemID: "a", Quantity: 1}}
	if diff := cmp.Diff(want, svc.GetCart(ctx)); diff != "" {
		t.Fatalf("cart mismatch (-want +got):\n%s", diff)
	}

	raw, ok, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"itemId":"b","quantity":2},{"itemId":"a","quantity":1}]`, raw)
}

func TestAddToCart_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _, badge := newTestService(t)

	require.ErrorIs(t, svc.AddToCart(ctx, " ", 1), ErrInvalidItemID)
	require.ErrorIs(t, svc.AddToCart(ctx, "p1", 0), ErrInvalidQuantity)
	require.ErrorIs(t, svc.AddToCart(ctx, "p1", -2), ErrInvalidQuantity)
	require.Empty(t, svc.GetCart(ctx))
	require.Zero(t, badge.calls)
}

func TestAddToCart_OverCorruptCartStartsFresh(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	require.NoError(t, store.Set(ctx, StorageKey, `{{{`))

	require.NoError(t, svc.AddToCart(ctx, "p1", 1))
	require.Equal(t, []Item{{ItemID: "p1", Quantity: 1}}, svc.GetCart(ctx))
}

func TestRemoveFromCart_RemovesEveryMatch(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	// duplicado escrito por otra versión del cliente
	require.NoError(t, store.Set(ctx, StorageKey, `[{"itemId":"p1","quantity":1},{"itemId":"p2","quantity":4},{"itemId":"p1","quantity":9}]`))

	require.NoError(t, svc.RemoveFromCart(ctx, "p1"))
	for _, it := range svc.GetCart(ctx) {
		require.NotEqual(t, "p1", it.ItemID)
	}
	require.Equal(t, []Item{{ItemID: "p2", Quantity: 4}}, svc.GetCart(ctx))
}

func TestRemoveFromCart_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	require.NoError(t, svc.AddToCart(ctx, "p1", 1))

	require.NoError(t, svc.RemoveFromCart(ctx, "nope"))
	require.Equal(t, []Item{{ItemID: "p1", Quantity: 1}}, svc.GetCart(ctx))
}

func TestClearCart_RemovesKeyAndHidesBadge(t *testing.T) {
	ctx := context.Background()
	svc, store, badge := newTestService(t)
	require.NoError(t, svc.AddToCart(ctx, "p1", 2))
	require.True(t, badge.visible)

	require.NoError(t, svc.ClearCart(ctx))

	_, ok, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, svc.GetCart(ctx))
	require.Zero(t, badge.count)
	require.False(t, badge.visible)
}

func TestUpdateCartCount_SumsQuantities(t *testing.T) {
	ctx := context.Background()
	svc, _, badge := newTestService(t)

	require.NoError(t, svc.AddToCart(ctx, "p1", 2))
	require.NoError(t, svc.AddToCart(ctx, "p2", 3))

	require.Equal(t, 5, svc.UpdateCartCount(ctx))
	require.Equal(t, 5, badge.count)
	require.True(t, badge.visible)
}

func TestUpdateCartCount_WithoutBadgeIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewKVStore(), nil, nil)

	require.NoError(t, svc.AddToCart(ctx, "p1", 4))
	require.Equal(t, 4, svc.UpdateCartCount(ctx))
}

func TestBadgeFunc(t *testing.T) {
	var got []int
	svc := NewService(memory.NewKVStore(), BadgeFunc(func(count int, visible bool) {
		got = append(got, count)
	}), nil)
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, "p1", 1))
	require.NoError(t, svc.AddToCart(ctx, "p2", 2))
	require.NoError(t, svc.RemoveFromCart(ctx, "p1"))
	require.NoError(t, svc.ClearCart(ctx))

	require.Equal(t, []int{1, 3, 2, 0}, got)
}

type brokenStore struct{ *memory.KVStore }

func (brokenStore) Set(context.Context, string, string) error { return errors.New("quota exceeded") }

func TestAddToCart_WriteFailureIsReturned(t *testing.T) {
	svc := NewService(brokenStore{memory.NewKVStore()}, nil, nil)

	err := svc.AddToCart(context.Background(), "p1", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestAddToCart_OverflowKeepsCart(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	require.NoError(t, svc.AddToCart(ctx, "keep", 3))
	require.NoError(t, svc.AddToCart(ctx, "p1", math.MaxInt))
	before, _, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)

	require.ErrorIs(t, svc.AddToCart(ctx, "p1", 1), ErrQuantityOverflow)

	after, _, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, []Item{{ItemID: "keep", Quantity: 3}, {ItemID: "p1", Quantity: math.MaxInt}}, svc.GetCart(ctx))
	require.Equal(t, math.MaxInt, svc.UpdateCartCount(ctx))
}

func TestTotal_Saturates(t *testing.T) {
	require.Equal(t, math.MaxInt, Total([]Item{{ItemID: "a", Quantity: math.MaxInt}, {ItemID: "b", Quantity: 2}}))
	require.Equal(t, 5, Total([]Item{{ItemID: "a", Quantity: 2}, {ItemID: "b", Quantity: 3}}))
}

func TestAddToCart_ConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewKVStore(), nil, nil)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.AddToCart(ctx, "p1", 1); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, []Item{{ItemID: "p1", Quantity: n}}, svc.GetCart(ctx))
}
