package task

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, name, start, end string) Task {
	t.Helper()
	task, err := Build(Draft{Name: name, Start: start, End: end, Color: "blue"})
	require.NoError(t, err)
	return task
}

func TestStore_AddAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep insertion order and issue ids", func(t *testing.T) {
		// given
		store := NewStore()

		// when
		a, err := store.Add(ctx, mustBuild(t, "A", "1403-01-01", "1403-01-05"))
		require.NoError(t, err)
		b, err := store.Add(ctx, mustBuild(t, "B", "1402-01-01", "1402-01-05"))
		require.NoError(t, err)

		// then
		assert.NotEqual(t, uuid.Nil, a.Id)
		assert.NotEqual(t, a.Id, b.Id)
		tasks, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "A", tasks[0].Name)
		assert.Equal(t, "B", tasks[1].Name)
	})

	t.Run("should store equal tasks separately", func(t *testing.T) {
		store := NewStore()
		task := mustBuild(t, "Same", "1403-01-01", "1403-01-02")

		first, err := store.Add(ctx, task)
		require.NoError(t, err)
		second, err := store.Add(ctx, task)
		require.NoError(t, err)

		assert.NotEqual(t, first.Id, second.Id)
		tasks, _ := store.List(ctx)
		assert.Len(t, tasks, 2)
	})

	t.Run("should reject an id already stored", func(t *testing.T) {
		store := NewStore()
		added, err := store.Add(ctx, mustBuild(t, "A", "1403-01-01", "1403-01-02"))
		require.NoError(t, err)

		_, err = store.Add(ctx, added)

		assert.Error(t, err)
	})

	t.Run("should return a copy from List", func(t *testing.T) {
		store := NewStore()
		_, err := store.Add(ctx, mustBuild(t, "A", "1403-01-01", "1403-01-02"))
		require.NoError(t, err)

		tasks, _ := store.List(ctx)
		tasks[0].Name = "changed"

		again, _ := store.List(ctx)
		assert.Equal(t, "A", again[0].Name)
	})
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep the order of the remaining tasks", func(t *testing.T) {
		// given
		store := NewStore()
		a, _ := store.Add(ctx, mustBuild(t, "A", "1403-01-01", "1403-01-02"))
		b, _ := store.Add(ctx, mustBuild(t, "B", "1403-01-03", "1403-01-04"))
		c, _ := store.Add(ctx, mustBuild(t, "C", "1403-01-05", "1403-01-06"))

		// when
		removed, err := store.Remove(ctx, b.Id)

		// then
		require.NoError(t, err)
		assert.Equal(t, "B", removed.Name)
		tasks, _ := store.List(ctx)
		require.Len(t, tasks, 2)
		assert.Equal(t, a.Id, tasks[0].Id)
		assert.Equal(t, c.Id, tasks[1].Id)
	})

	t.Run("should fail for an unknown id", func(t *testing.T) {
		store := NewStore()
		_, _ = store.Add(ctx, mustBuild(t, "A", "1403-01-01", "1403-01-02"))

		_, err := store.Remove(ctx, uuid.New())

		assert.ErrorIs(t, err, ErrTaskNotFound)
		tasks, _ := store.List(ctx)
		assert.Len(t, tasks, 1)
	})

	t.Run("should fail for a task removed twice", func(t *testing.T) {
		store := NewStore()
		a, _ := store.Add(ctx, mustBuild(t, "A", "1403-01-01", "1403-01-02"))
		_, err := store.Remove(ctx, a.Id)
		require.NoError(t, err)

		_, err = store.Remove(ctx, a.Id)

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_, _ = store.Add(ctx, mustBuild(t, "A", "1403-01-01", "1403-01-02"))
	_, _ = store.Add(ctx, mustBuild(t, "B", "1403-01-01", "1403-01-02"))

	n, err := store.Clear(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	tasks, _ := store.List(ctx)
	assert.Empty(t, tasks)
	_, _, err = store.Span(ctx)
	assert.ErrorIs(t, err, ErrEmptyStore)
}

func TestStore_Span(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail when empty", func(t *testing.T) {
		_, _, err := NewStore().Span(ctx)
		assert.ErrorIs(t, err, ErrEmptyStore)
	})

	t.Run("should return the earliest start and the latest end", func(t *testing.T) {
		// given
		store := NewStore()
		_, _ = store.Add(ctx, mustBuild(t, "A", "1403-01-01", "1403-01-07"))
		_, _ = store.Add(ctx, mustBuild(t, "B", "1403-01-05", "1403-01-20"))
		_, _ = store.Add(ctx, mustBuild(t, "C", "1402-12-20", "1403-01-03"))

		// when
		minStart, maxEnd, err := store.Span(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, gdate(2024, 3, 10), minStart)
		assert.Equal(t, gdate(2024, 4, 8), maxEnd)
	})
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	task := mustBuild(t, "A", "1403-01-01", "1403-01-02")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Add(ctx, task)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tasks, _ := store.List(ctx)
	assert.Len(t, tasks, 50)
}
