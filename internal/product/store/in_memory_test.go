package store

import (
	"context"
	"sync"
	"testing"

	"github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func Test_InMemory_Seed(t *testing.T) {
	// given
	s := NewInMemoryStore(SeedProducts()...)

	// when
	all, err := s.FindAll(context.Background())

	// then
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "Laptop Dell XPS", all[0].Name)
	assert.True(t, price("1200.50").Equal(all[0].Price))

	created, err := s.Create(context.Background(), "Mouse", price("20.00"), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID, "counter continues after the seed")
}

func Test_InMemory_CreateAndFind(t *testing.T) {
	// given
	s := NewInMemoryStore()

	// when
	first, err := s.Create(context.Background(), "Cable", price("5.50"), 3)
	require.NoError(t, err)
	second, err := s.Create(context.Background(), "Cable", price("6.00"), 1)
	require.NoError(t, err)

	// then
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID, "duplicate names are allowed")

	found, err := s.FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, *first, *found)
}

func Test_InMemory_FindByID_NotFound(t *testing.T) {
	s := NewInMemoryStore(SeedProducts()...)

	found, err := s.FindByID(context.Background(), 42)

	assert.ErrorIs(t, err, errors.ErrProductNotFound)
	assert.Nil(t, found)
}

func Test_InMemory_FindAll_ReturnsCopy(t *testing.T) {
	// given
	s := NewInMemoryStore(SeedProducts()...)
	all, err := s.FindAll(context.Background())
	require.NoError(t, err)

	// when
	all[0].Name = "changed"

	// then
	found, err := s.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Dell XPS", found.Name)
}

func Test_InMemory_Update(t *testing.T) {
	testCases := []struct {
		name        string
		id          int64
		expectError error
	}{
		{name: "existing product", id: 2},
		{name: "missing product", id: 99, expectError: errors.ErrProductNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore(SeedProducts()...)

			// when
			updated, err := s.Update(context.Background(), tc.id, "Mouse Pro", price("80.00"), 7)

			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.id, updated.ID)

			all, err := s.FindAll(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Mouse Pro", all[1].Name, "updated in place, order kept")
			assert.True(t, price("80.00").Equal(all[1].Price))
			assert.Equal(t, int32(7), all[1].Quantity)
		})
	}
}

func Test_InMemory_Delete(t *testing.T) {
	// given
	s := NewInMemoryStore(SeedProducts()...)

	// when
	err := s.DeleteByID(context.Background(), 1)

	// then
	require.NoError(t, err)
	_, err = s.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, errors.ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteByID(context.Background(), 1), errors.ErrProductNotFound)

	all, err := s.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(2), all[0].ID, "residual order kept")
	assert.Equal(t, int64(3), all[1].ID)
}

func Test_InMemory_IDsAreNotReused(t *testing.T) {
	s := NewInMemoryStore(SeedProducts()...)
	require.NoError(t, s.DeleteByID(context.Background(), 3))

	created, err := s.Create(context.Background(), "Headset", price("49.90"), 2)

	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
}

func Test_InMemory_ConcurrentCreates(t *testing.T) {
	// given
	s := NewInMemoryStore()
	const workers = 50
	ids := make([]int64, workers)
	var wg sync.WaitGroup

	// when
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Create(context.Background(), "Widget", price("1.00"), 1)
			if err == nil {
				ids[i] = p.ID
			}
		}()
	}
	wg.Wait()

	// then
	seen := make(map[int64]bool, workers)
	for _, id := range ids {
		assert.NotZero(t, id)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	all, err := s.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, workers)
}
