package stash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{Index: i, Hash: string(rune('a' + i)), Branch: "main", Message: "wip"}
	}
	return out
}

func TestNewList_Contiguous(t *testing.T) {
	for _, n := range []int{0, 1, 4, 12} {
		l, err := NewList(entries(n))
		require.NoError(t, err)
		require.Equal(t, n, l.Len())
		for i, e := range l.Entries() {
			assert.Equal(t, i, e.Index)
		}
	}
}

func TestNewList_RejectsGaps(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
	}{
		{"starts at one", []int{1, 2}},
		{"gap", []int{0, 2}},
		{"duplicate", []int{0, 0}},
		{"out of order", []int{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]Entry, len(tt.indices))
			for i, idx := range tt.indices {
				in[i] = Entry{Index: idx}
			}
			_, err := NewList(in)
			assert.ErrorIs(t, err, ErrNonContiguous)
		})
	}
}

func TestList_IsolatedFromCaller(t *testing.T) {
	in := entries(2)
	l, err := NewList(in)
	require.NoError(t, err)

	in[0].Message = "changed"
	out := l.Entries()
	out[1].Message = "changed too"

	e0, _ := l.At(0)
	e1, _ := l.At(1)
	assert.Equal(t, "wip", e0.Message)
	assert.Equal(t, "wip", e1.Message)
}

func TestList_ContainsAndFind(t *testing.T) {
	l, err := NewList(entries(3))
	require.NoError(t, err)

	assert.True(t, l.Contains(1, "b"))
	assert.True(t, l.Contains(2, ""))
	assert.False(t, l.Contains(1, "c"), "hash moved to another index")
	assert.False(t, l.Contains(3, ""))
	assert.False(t, l.Contains(-1, ""))

	assert.Equal(t, 2, l.Find("c"))
	assert.Equal(t, -1, l.Find("z"))
	assert.Equal(t, -1, l.Find(""))
}

func TestEntry_Display(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := Entry{Index: 3, Branch: "feature/login", Message: "half-done login", CreatedAt: now.Add(-3 * time.Hour)}

	assert.Equal(t, "stash@{3}", e.Ref())
	assert.Equal(t, "3 hours ago", e.RelativeAge(now))
	assert.Equal(t, "feature/login half-done login", e.SearchText())
	assert.Empty(t, Entry{}.RelativeAge(now))
	assert.Equal(t, "just now", Entry{CreatedAt: now.Add(time.Minute)}.RelativeAge(now))
}
