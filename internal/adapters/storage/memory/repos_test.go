package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"petstore-client/internal/backend/accounts"
	"petstore-client/internal/backend/catalog"
	"petstore-client/internal/backend/orders"
)

func TestCatalogRepo_AdjustStock(t *testing.T) {
	ctx := context.Background()
	r := NewCatalogRepo()

	c, err := r.CreateCategory(ctx, catalog.Category{Name: "Dogs"})
	require.NoError(t, err)
	_, err = r.CreateCategory(ctx, catalog.Category{Name: "dogs"})
	require.Error(t, err)

	_, err = r.CreatePet(ctx, catalog.Pet{CategoryID: 42, Name: "orphan"})
	require.Error(t, err)

	p, err := r.CreatePet(ctx, catalog.Pet{CategoryID: c.ID, Name: "Rex", StockQuantity: 2})
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)

	p, err = r.AdjustStock(ctx, p.ID, -2)
	require.NoError(t, err)
	require.Zero(t, p.StockQuantity)

	_, err = r.AdjustStock(ctx, p.ID, -1)
	require.ErrorIs(t, err, catalog.ErrInsufficientStock)
	_, err = r.AdjustStock(ctx, 99, 1)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestUserRepo_Uniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo()

	u, err := r.Create(ctx, accounts.User{Username: "Ana", Email: "ana@x.io"})
	require.NoError(t, err)

	_, err = r.Create(ctx, accounts.User{Username: "ana", Email: "other@x.io"})
	require.ErrorIs(t, err, accounts.ErrUsernameTaken)
	_, err = r.Create(ctx, accounts.User{Username: "bob", Email: "ANA@x.io"})
	require.ErrorIs(t, err, accounts.ErrEmailTaken)

	got, err := r.GetByUsername(ctx, "ANA")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = r.GetByID(ctx, 99)
	require.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestOrderRepo_ListByUser(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepo()

	a, err := r.Create(ctx, orders.Order{UserID: 1})
	require.NoError(t, err)
	b, err := r.Create(ctx, orders.Order{UserID: 1})
	require.NoError(t, err)
	_, err = r.Create(ctx, orders.Order{UserID: 2})
	require.NoError(t, err)

	mine, err := r.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, b.ID, mine[0].ID)
	require.Equal(t, a.ID, mine[1].ID)

}

func TestOrderRepo_UpdateStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepo()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	a, err := r.Create(ctx, orders.Order{UserID: 1, Status: orders.StatusPending})
	require.NoError(t, err)

	got, err := r.UpdateStatus(ctx, a.ID, orders.StatusPending, orders.StatusCancelled, at)
	require.NoError(t, err)
	require.Equal(t, orders.StatusCancelled, got.Status)
	require.Equal(t, at, got.UpdatedAt)

	stored, err := r.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, orders.StatusCancelled, stored.Status)

	_, err = r.UpdateStatus(ctx, a.ID, orders.StatusPending, orders.StatusCancelled, at)
	require.ErrorIs(t, err, orders.ErrStatusConflict)

	_, err = r.UpdateStatus(ctx, 99, orders.StatusPending, orders.StatusCancelled, at)
	require.ErrorIs(t, err, orders.ErrNotFound)
}
