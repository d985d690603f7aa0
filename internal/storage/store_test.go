package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

// testStoreContract runs the same behaviour checks against any Store
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("ProductCRUD", func(t *testing.T) {
		s := newStore(t)

		created, err := s.CreateProduct(ctx, &models.Product{Name: "Chair", Description: "Wooden chair", ImageID: "file-1"})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := s.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Chair", got.Name)
		require.Equal(t, "file-1", got.ImageID)

		err = s.UpdateProduct(ctx, &models.Product{ID: created.ID, Name: "Stool", Description: "Short", ImageID: "file-2"})
		require.NoError(t, err)

		got, err = s.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Stool", got.Name)
		require.Equal(t, "Short", got.Description)
		require.Equal(t, "file-2", got.ImageID)

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)

		require.NoError(t, s.DeleteProduct(ctx, created.ID))
		_, err = s.GetProduct(ctx, created.ID)
		require.ErrorIs(t, err, e.ErrProductNotFound)

		require.NoError(t, s.DeleteProduct(ctx, created.ID))
	})

	t.Run("ListProductsEmptyIsNotNil", func(t *testing.T) {
		s := newStore(t)
		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("UpdateUnknownProduct", func(t *testing.T) {
		s := newStore(t)
		err := s.UpdateProduct(ctx, &models.Product{ID: "missing", Name: "x"})
		require.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("UpsertOverwritesQuantity", func(t *testing.T) {
		s := newStore(t)

		for _, qty := range []int{1, 5, 2} {
			require.NoError(t, s.UpsertCartLine(ctx, models.CartLine{UserID: 7, ProductID: "p-a", Quantity: qty}))
		}
		require.NoError(t, s.UpsertCartLine(ctx, models.CartLine{UserID: 7, ProductID: "p-b", Quantity: 4}))

		lines, err := s.GetCartLines(ctx, 7)
		require.NoError(t, err)
		require.Len(t, lines, 2)

		byProduct := map[string]int{}
		for _, l := range lines {
			byProduct[l.ProductID] = l.Quantity
		}
		require.Equal(t, map[string]int{"p-a": 2, "p-b": 4}, byProduct)
	})

	t.Run("ClearCartOnlyTouchesUser", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.UpsertCartLine(ctx, models.CartLine{UserID: 1, ProductID: "p", Quantity: 1}))
		require.NoError(t, s.UpsertCartLine(ctx, models.CartLine{UserID: 2, ProductID: "p", Quantity: 3}))

		require.NoError(t, s.ClearCart(ctx, 1))

		lines, err := s.GetCartLines(ctx, 1)
		require.NoError(t, err)
		require.Empty(t, lines)

		lines, err = s.GetCartLines(ctx, 2)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		require.Equal(t, 3, lines[0].Quantity)
	})

	t.Run("Orders", func(t *testing.T) {
		s := newStore(t)

		o, err := s.CreateOrder(ctx, &models.Order{UserID: 9, Name: "Ali", Address: "X", Phone: "123", Products: "A × 2"})
		require.NoError(t, err)
		require.NotEmpty(t, o.ID)

		_, err = s.CreateOrder(ctx, &models.Order{UserID: 10, Name: "Other", Address: "Y", Phone: "9", Products: "B × 1"})
		require.NoError(t, err)

		orders, err := s.GetOrdersByUser(ctx, 9)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		require.Equal(t, "A × 2", orders[0].Products)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Ping(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestMemoryStore_CartKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.UpsertCartLine(ctx, models.CartLine{UserID: 1, ProductID: "z", Quantity: 1}))
	require.NoError(t, s.UpsertCartLine(ctx, models.CartLine{UserID: 1, ProductID: "a", Quantity: 1}))
	require.NoError(t, s.UpsertCartLine(ctx, models.CartLine{UserID: 1, ProductID: "z", Quantity: 3}))

	lines, err := s.GetCartLines(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "z", lines[0].ProductID)
	require.Equal(t, 3, lines[0].Quantity)
	require.Equal(t, "a", lines[1].ProductID)
}
