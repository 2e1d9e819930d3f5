package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileSummary(t *testing.T) {
	raw := ":100644 100644 3b18e51 a9c2d1f M\tauth.go\n" +
		":000000 100644 0000000 e69de29 A\tdocs/new.md\n" +
		":100644 000000 e69de29 0000000 D\tgone.txt\n" +
		":100644 100644 1111111 2222222 R087\told/name.go\tnew/name.go\n" +
		":100644 100644 3333333 4444444 T\tlink\n" +
		":100644 100644 5555555 6666666 M\tlogo.png\n" +
		"3\t1\tauth.go\n" +
		"12\t0\tdocs/new.md\n" +
		"0\t7\tgone.txt\n" +
		"2\t2\t{old => new}/name.go\n" +
		"1\t1\tlink\n" +
		"-\t-\tlogo.png\n"

	sum := ParseFileSummary(raw)
	require.False(t, sum.Partial)
	require.Equal(t, 6, sum.Len())

	want := []FileChange{
		{Path: "auth.go", Change: ChangeModified, Insertions: 3, Deletions: 1, RawStatus: "M"},
		{Path: "docs/new.md", Change: ChangeAdded, Insertions: 12, RawStatus: "A"},
		{Path: "gone.txt", Change: ChangeDeleted, Deletions: 7, RawStatus: "D"},
		{Path: "new/name.go", OldPath: "old/name.go", Change: ChangeRenamed, Insertions: 2, Deletions: 2, RawStatus: "R087"},
		{Path: "link", Change: ChangeModified, Insertions: 1, Deletions: 1, RawStatus: "T", Unrecognized: true},
		{Path: "logo.png", Change: ChangeModified, Binary: true, RawStatus: "M"},
	}
	assert.Equal(t, want, sum.Files)

	ins, del := sum.Totals()
	assert.Equal(t, 18, ins)
	assert.Equal(t, 11, del)
}

func TestParseFileSummary_Partial(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing numstat", ":100644 100644 1 2 M\ta.go\n"},
		{"malformed raw", ":100644 M a.go\n1\t1\ta.go\n"},
		{"malformed numstat", ":100644 100644 1 2 M\ta.go\nx\ty\ta.go\n"},
		{"rename without destination", ":100644 100644 1 2 R100\tonly.go\n1\t1\tonly.go\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ParseFileSummary(tt.raw).Partial)
		})
	}
}

func TestParseFileSummary_Empty(t *testing.T) {
	sum := ParseFileSummary("")
	assert.False(t, sum.Partial)
	assert.Zero(t, sum.Len())
}

func TestChangeType_Strings(t *testing.T) {
	assert.Equal(t, "A", ChangeAdded.String())
	assert.Equal(t, "Renamed", ChangeRenamed.Label())
	assert.Equal(t, "M", ChangeModified.String())
}
