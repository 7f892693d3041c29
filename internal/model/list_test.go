package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
)

var todayTitles = []string{
	"Buy milk",
	"Clean room",
	"Go to the gym",
	"Go shopping",
	"Feed the cats",
	"Study",
}

func newToday(t *testing.T) *model.List {
	t.Helper()
	l := model.NewList("Today")
	for _, title := range todayTitles {
		require.NoError(t, l.Add(model.NewItem(title)))
	}
	return l
}

func titles(l *model.List) []string {
	out := []string{}
	l.ForEach(func(it *model.Item) { out = append(out, it.Title()) })
	return out
}

func TestList_AddAppends(t *testing.T) {
	t.Parallel()

	l := model.NewList("Today")
	for i, title := range todayTitles {
		it := model.NewItem(title)
		require.NoError(t, l.Add(it))
		assert.Equal(t, i+1, l.Size())

		got, err := l.ItemAt(l.Size() - 1)
		require.NoError(t, err)
		assert.Same(t, it, got)
	}
	assert.Equal(t, todayTitles, titles(l))
}

func TestList_AddNil(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	err := l.Add(nil)
	require.ErrorIs(t, err, model.ErrTypeMismatch)
	assert.Equal(t, len(todayTitles), l.Size())
}

func TestList_FirstLast(t *testing.T) {
	t.Parallel()

	empty := model.NewList("empty")
	_, ok := empty.First()
	assert.False(t, ok)
	_, ok = empty.Last()
	assert.False(t, ok)

	l := newToday(t)
	first, ok := l.First()
	require.True(t, ok)
	assert.Equal(t, "Buy milk", first.Title())
	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, "Study", last.Title())
}

func TestList_ItemAtOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		size  int
		index int
	}{
		{name: "empty list zero", size: 0, index: 0},
		{name: "negative", size: 3, index: -1},
		{name: "equal to size", size: 3, index: 3},
		{name: "far past end", size: 3, index: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := model.NewList("x")
			for i := 0; i < tt.size; i++ {
				require.NoError(t, l.Add(model.NewItem("item")))
			}

			_, err := l.ItemAt(tt.index)
			require.ErrorIs(t, err, model.ErrIndexOutOfRange)

			var ierr *model.IndexError
			require.True(t, errors.As(err, &ierr))
			assert.Equal(t, tt.index, ierr.Index)
			assert.Equal(t, tt.size, ierr.Size)

			assert.ErrorIs(t, l.MarkDoneAt(tt.index), model.ErrIndexOutOfRange)
			assert.ErrorIs(t, l.MarkUndoneAt(tt.index), model.ErrIndexOutOfRange)
			_, err = l.RemoveAt(tt.index)
			assert.ErrorIs(t, err, model.ErrIndexOutOfRange)
			assert.Equal(t, tt.size, l.Size())
		})
	}
}

func TestList_MarkAt(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	require.NoError(t, l.MarkDoneAt(2))
	it, err := l.ItemAt(2)
	require.NoError(t, err)
	assert.True(t, it.IsDone())

	require.NoError(t, l.MarkUndoneAt(2))
	assert.False(t, it.IsDone())
}

func TestList_IsDone(t *testing.T) {
	t.Parallel()

	assert.True(t, model.NewList("empty").IsDone(), "empty list is vacuously done")

	l := newToday(t)
	assert.False(t, l.IsDone())
	l.MarkAllDone()
	assert.True(t, l.IsDone())
	require.NoError(t, l.MarkUndoneAt(5))
	assert.False(t, l.IsDone())
	l.MarkAllUndone()
	assert.Empty(t, titles(l.AllDone()))
}

func TestList_RemoveAt(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	removed, err := l.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, "Clean room", removed.Title())
	assert.Equal(t, []string{"Buy milk", "Go to the gym", "Go shopping", "Feed the cats", "Study"}, titles(l))

	// Re-adding moves the item to the end without changing membership.
	require.NoError(t, l.Add(removed))
	assert.Equal(t, len(todayTitles), l.Size())
	assert.ElementsMatch(t, todayTitles, titles(l))
	last, _ := l.Last()
	assert.Same(t, removed, last)
}

func TestList_PopShift(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	it, ok := l.Pop()
	require.True(t, ok)
	assert.Equal(t, "Study", it.Title())

	it, ok = l.Shift()
	require.True(t, ok)
	assert.Equal(t, "Buy milk", it.Title())
	assert.Equal(t, []string{"Clean room", "Go to the gym", "Go shopping", "Feed the cats"}, titles(l))

	empty := model.NewList("empty")
	_, ok = empty.Pop()
	assert.False(t, ok)
	_, ok = empty.Shift()
	assert.False(t, ok)
}

func TestList_FilterSharesItems(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	gos := l.Filter(func(it *model.Item) bool { return len(it.Title()) > 2 && it.Title()[:2] == "Go" })
	assert.Equal(t, "Today", gos.Label())
	assert.Equal(t, []string{"Go to the gym", "Go shopping"}, titles(gos))

	require.NoError(t, gos.MarkDoneAt(1))
	shopping, err := l.ItemAt(3)
	require.NoError(t, err)
	assert.True(t, shopping.IsDone(), "marking through a derived list reaches the source item")

	_, err = gos.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, len(todayTitles), l.Size(), "derived list ordering is independent")
}

func TestList_DonePartition(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	require.NoError(t, l.MarkDoneAt(0))
	require.NoError(t, l.MarkDoneAt(3))
	require.NoError(t, l.MarkDoneAt(4))

	done, notDone := l.AllDone(), l.AllNotDone()
	assert.Equal(t, l.Size(), done.Size()+notDone.Size())
	for _, it := range done.Items() {
		assert.NotContains(t, notDone.Items(), it)
	}
	assert.ElementsMatch(t, l.Items(), append(done.Items(), notDone.Items()...))

	d, p := l.Stats()
	assert.Equal(t, 3, d)
	assert.Equal(t, 3, p)
}

func TestList_TodayScenario(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	require.NoError(t, l.MarkDoneAt(0))
	require.NoError(t, l.MarkDoneAt(4))

	done := l.AllDone()
	assert.Equal(t, "Today", done.Label())
	assert.Equal(t, []string{"Buy milk", "Feed the cats"}, titles(done))
	assert.Equal(t, "---- Today ----\n[X] Buy milk\n[X] Feed the cats", done.String())

	found, ok := l.FindByTitle("Go shopping")
	require.True(t, ok)
	want, _ := l.ItemAt(3)
	assert.Same(t, want, found)

	_, ok = l.FindByTitle("Nope")
	assert.False(t, ok)
}

func TestList_FindByTitleFirstMatchExact(t *testing.T) {
	t.Parallel()

	l := model.NewList("dupes")
	a, b := model.NewItem("Study"), model.NewItem("Study")
	require.NoError(t, l.Add(a))
	require.NoError(t, l.Add(b))

	got, ok := l.FindByTitle("Study")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = l.FindByTitle("study")
	assert.False(t, ok)
	_, ok = l.FindByTitle(" Study")
	assert.False(t, ok)
}

func TestList_MarkDoneByTitle(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	assert.True(t, l.MarkDoneByTitle("Study"))
	it, _ := l.Last()
	assert.True(t, it.IsDone())

	assert.False(t, l.MarkDoneByTitle("Nope"))
	assert.Equal(t, 1, l.AllDone().Size())
}

func TestList_ItemsIsSnapshot(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	snap := l.Items()
	snap[0] = nil

	first, ok := l.First()
	require.True(t, ok)
	assert.Equal(t, "Buy milk", first.Title())

	l.Items()[5].MarkDone()
	last, _ := l.Last()
	assert.True(t, last.IsDone())
}

func TestList_All(t *testing.T) {
	t.Parallel()

	l := newToday(t)
	var seen []int
	for i, it := range l.All() {
		assert.Equal(t, todayTitles[i], it.Title())
		seen = append(seen, i)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestList_StringEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "---- Nothing ----\n", model.NewList("Nothing").String())
}
