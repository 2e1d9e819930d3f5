// Package filter ranks stash entries against a fuzzy query.
package filter

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/stash"
)

// Match is one entry that contains the query as a subsequence.
type Match struct {
	Index     int   // Stack index of the entry.
	Score     int   // Higher is better.
	Positions []int // Byte offsets into Entry.SearchText that matched.
}

// entrySource adapts a stash list to fuzzy.Source.
type entrySource []stash.Entry

func (s entrySource) String(i int) string { return s[i].SearchText() }
func (s entrySource) Len() int            { return len(s) }

// Rank scores every entry of list against query. Entries without a
// subsequence match are excluded. Results are ordered by score, highest
// first, with ties kept in stack order. A blank query matches everything
// in stack order with a zero score.
func Rank(query string, list stash.List) []Match {
	entries := list.Entries()
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(entries))
		for i, e := range entries {
			out[i] = Match{Index: e.Index}
		}
		return out
	}

	found := fuzzy.FindFrom(query, entrySource(entries))
	out := make([]Match, 0, len(found))
	for _, f := range found {
		out = append(out, Match{
			Index:     entries[f.Index].Index,
			Score:     f.Score,
			Positions: f.MatchedIndexes,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Indices is Rank without scores: the ordered stack indices that match.
func Indices(query string, list stash.List) []int {
	matches := Rank(query, list)
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}
