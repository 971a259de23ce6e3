package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swamp/internal/core/domain"
)

func TestNewRecordStore(t *testing.T) {
	store := NewRecordStore()
	require.NotNil(t, store)

	n, err := store.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRecordStore_Append(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	first, err := store.Append(ctx, []string{"buy", "milk"}, []string{"shop"})
	require.NoError(t, err)
	second, err := store.Append(ctx, []string{"call", "mom"}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.Record{ID: 0, Words: []string{"buy", "milk"}, Tags: []string{"shop"}}, first)
	assert.Equal(t, domain.Record{ID: 1, Words: []string{"call", "mom"}}, second)
}

func TestRecordStore_AppendCopiesInput(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	words := []string{"original"}
	_, err := store.Append(ctx, words, nil)
	require.NoError(t, err)
	words[0] = "mutated"

	got, err := store.Get(ctx, []uint64{0}, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"original"}, got[0].Words)
}

func TestRecordStore_GetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()
	_, err := store.Append(ctx, []string{"a"}, []string{"t"})
	require.NoError(t, err)

	got, err := store.Get(ctx, []uint64{0}, false)
	require.NoError(t, err)
	got[0].Tags[0] = "changed"

	again, err := store.Get(ctx, []uint64{0}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, again[0].Tags)
}

func TestRecordStore_GetOrdersAndSkips(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()
	for _, w := range []string{"a", "b", "c"} {
		_, err := store.Append(ctx, []string{w}, nil)
		require.NoError(t, err)
	}

	got, err := store.Get(ctx, []uint64{2, 9, 0, 2}, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(0), got[0].ID)
	assert.Equal(t, uint64(2), got[1].ID)
}

func TestRecordStore_MarkDone(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()
	_, err := store.Append(ctx, []string{"a"}, nil)
	require.NoError(t, err)
	_, err = store.Append(ctx, []string{"b"}, nil)
	require.NoError(t, err)

	require.NoError(t, store.MarkDone(ctx, 1))
	require.NoError(t, store.MarkDone(ctx, 1))

	live, err := store.Get(ctx, []uint64{0, 1}, false)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, uint64(0), live[0].ID)

	all, err := store.Get(ctx, []uint64{0, 1}, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[1].Done)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecordStore_MarkDoneNotFound(t *testing.T) {
	store := NewRecordStore()

	err := store.MarkDone(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_Close(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()
	_, err := store.Append(ctx, []string{"a"}, nil)
	require.NoError(t, err)

	require.NoError(t, store.Close())

	_, err = store.Append(ctx, []string{"b"}, nil)
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
	assert.ErrorIs(t, store.MarkDone(ctx, 0), domain.ErrStoreClosed)
	_, err = store.Get(ctx, []uint64{0}, false)
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
	_, err = store.Len(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
}

func TestRecordStore_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Append(ctx, []string{"x"}, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	ids := make([]uint64, 50)
	for i := range ids {
		ids[i] = uint64(i)
	}
	got, err := store.Get(ctx, ids, false)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
