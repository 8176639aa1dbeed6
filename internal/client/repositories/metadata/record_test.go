package metadata

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mriscan/internal/common"
)

func TestLoadJSON_MissingAndCorrupt(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	v, ok, err := LoadJSON[[]string](ctx, repo, "list")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)

	require.NoError(t, repo.Set(ctx, "list", []byte("{not json")))
	_, _, err = LoadJSON[[]string](ctx, repo, "list")
	require.ErrorIs(t, err, common.ErrStorage)
}

// backends returns a fresh store per implementation.
func backends(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"sqlite": NewSQLiteRepository(setupDB(t)),
		"memory": NewMemoryRepository(),
	}
}

func TestRecord_UpdateAppends(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rec := NewRecord[[]string](repo, "list")
			ctx := context.Background()

			appendOne := func(s string) func([]string, bool) ([]string, error) {
				return func(cur []string, _ bool) ([]string, error) { return append(cur, s), nil }
			}

			require.NoError(t, rec.Update(ctx, appendOne("a")))
			require.NoError(t, rec.Update(ctx, appendOne("b")))

			got, ok, err := rec.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []string{"a", "b"}, got)
		})
	}
}

func TestRecord_UpdateOnCorruptRecord(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Set(ctx, "list", []byte("oops")))

			rec := NewRecord[[]string](repo, "list")
			called := false
			err := rec.Update(ctx, func(cur []string, _ bool) ([]string, error) {
				called = true
				return cur, nil
			})
			require.ErrorIs(t, err, common.ErrStorage)
			assert.False(t, called)

			raw, _, err := repo.Get(ctx, "list")
			require.NoError(t, err)
			assert.Equal(t, []byte("oops"), raw)
		})
	}
}

func TestRecord_UpdateFailureWritesNothing(t *testing.T) {
	db := setupDB(t)
	rec := NewRecord[[]string](NewSQLiteRepository(db), "list")
	ctx := context.Background()

	require.NoError(t, rec.Save(ctx, []string{"a"}))

	boom := errors.New("boom")
	err := rec.Update(ctx, func(cur []string, _ bool) ([]string, error) {
		return append(cur, "b"), boom
	})
	require.ErrorIs(t, err, boom)

	got, _, err := rec.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

func TestRecord_ConcurrentUpdatesAreSerialized(t *testing.T) {
	db := setupDB(t)
	rec := NewRecord[[]int](NewSQLiteRepository(db), "nums")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, rec.Update(ctx, func(cur []int, _ bool) ([]int, error) {
				return append(cur, i), nil
			}))
		}(i)
	}
	wg.Wait()

	got, _, err := rec.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestRecord_Delete(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rec := NewRecord[string](repo, "s")
			ctx := context.Background()

			require.NoError(t, rec.Save(ctx, "x"))
			require.NoError(t, rec.Delete(ctx))

			_, ok, err := rec.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}
