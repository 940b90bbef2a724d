package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/store"
	"github.com/nhle/taskshop/tests/testutil"
)

func TestMigrations_Applied(t *testing.T) {
	s := testutil.NewTestStore(t)

	v, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestMigrations_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "shop.db")

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "k", "v"))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestKV_PutGetDelete(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "tasks")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, "tasks", "[]"))
	require.NoError(t, s.Put(ctx, "tasks", `[{"id":"1"}]`))

	got, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, got)

	require.NoError(t, s.Delete(ctx, "tasks"))
	require.NoError(t, s.Delete(ctx, "tasks"))
	_, err = s.Get(ctx, "tasks")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, model.Account{
		Email:        "ana@example.com",
		DisplayName:  "Ana",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = s.CreateAccount(ctx, model.Account{Email: "ANA@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	byEmail, err := s.GetAccountByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "Ana", byEmail.DisplayName)

	byID, err := s.GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Email)

	_, err = s.GetAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckouts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	older := model.Receipt{
		ID:    "r1",
		Email: "ana@example.com",
		Lines: []model.CartLine{
			{Product: model.Product{ID: "5", Name: "Mouse Gaming", Price: 799_900, Category: "Gaming"}, Quantity: 2},
			{Product: model.Product{ID: "4", Name: "Book Light", Price: 349_900, Category: "Reading"}, Quantity: 1},
		},
		Totals:    model.Totals{Subtotal: 1_949_700, Shipping: 0, Tax: 214_467, GrandTotal: 2_164_167},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := model.Receipt{
		ID:        "r2",
		Email:     "ben@example.com",
		Lines:     []model.CartLine{{Product: model.Product{ID: "4", Name: "Book Light", Price: 349_900}, Quantity: 1}},
		Totals:    model.Totals{Subtotal: 349_900, Shipping: 15_000, Tax: 38_489, GrandTotal: 403_389},
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.RecordCheckout(ctx, older))
	require.NoError(t, s.RecordCheckout(ctx, newer))

	all, err := s.GetCheckouts(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "r2", all[0].ID)

	mine, err := s.GetCheckouts(ctx, "ana@example.com", 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, older.Totals, mine[0].Totals)
	require.Len(t, mine[0].Lines, 2)
	assert.Equal(t, "Mouse Gaming", mine[0].Lines[0].Product.Name)
	assert.Equal(t, 2, mine[0].Lines[0].Quantity)

	assert.Error(t, s.RecordCheckout(ctx, model.Receipt{ID: "empty"}))
	assert.Error(t, s.RecordCheckout(ctx, older), "duplicate id")
}
