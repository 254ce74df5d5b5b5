package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func entry(before, after string) Entry {
	return Entry{
		Kind:        "grammar-check",
		ResultRunes: len([]rune(after)),
		Before:      before,
		After:       after,
		At:          time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewJournal_Sizes(t *testing.T) {
	require.Equal(t, DefaultMaxEntries, NewJournal(0).maxSize)
	require.Equal(t, DefaultMaxEntries, NewJournal(-3).maxSize)
	require.Equal(t, MaxEntries, NewJournal(MaxEntries+1).maxSize)
	require.Equal(t, 7, NewJournal(7).maxSize)
}

func TestJournal_AddAndPop(t *testing.T) {
	j := NewJournal(10)
	_, ok := j.Last()
	require.False(t, ok)

	j.Add(entry("helo", "hello"))
	j.Add(entry("hello", "Hello."))
	require.Equal(t, 2, j.Len())

	last, ok := j.Last()
	require.True(t, ok)
	require.Equal(t, "Hello.", last.After)

	popped, ok := j.Pop()
	require.True(t, ok)
	require.Equal(t, last, popped)
	require.Equal(t, 1, j.Len())

	j.Pop()
	_, ok = j.Pop()
	require.False(t, ok, "pop on empty journal")
}

func TestJournal_IgnoresEntriesWithoutKind(t *testing.T) {
	j := NewJournal(10)
	j.Add(Entry{Before: "a", After: "b"})
	require.Zero(t, j.Len())
}

func TestEntry_Undoable(t *testing.T) {
	require.True(t, entry("helo", "hello").Undoable())
	require.False(t, entry("same", "same").Undoable())
	require.False(t, Entry{Kind: "translate", ResultRunes: 4}.Undoable())
}

func TestJournal_DropsOldest(t *testing.T) {
	j := NewJournal(3)
	for _, s := range []string{"1", "2", "3", "4"} {
		j.Add(entry("", s))
	}

	var got []string
	for _, e := range j.Entries() {
		got = append(got, e.After)
	}
	require.Equal(t, []string{"2", "3", "4"}, got)
}

func TestJournal_EntriesIsCopy(t *testing.T) {
	j := NewJournal(3)
	j.Add(entry("a", "b"))
	entries := j.Entries()
	entries[0].After = "changed"
	last, _ := j.Last()
	require.Equal(t, "b", last.After)

	j.Clear()
	require.Zero(t, j.Len())
}

func TestPersist_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	j := NewJournal(5)
	j.Add(entry("helo", "hello"))
	j.Add(entry("hello", "Hello."))
	require.NoError(t, Save(path, j))

	loaded, err := Load(path, 5)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	for i, e := range loaded.Entries() {
		want := j.Entries()[i]
		require.Equal(t, want.Kind, e.Kind)
		require.Equal(t, want.ResultRunes, e.ResultRunes)
		require.True(t, want.At.Equal(e.At))
		require.Empty(t, e.Before, "document text is not persisted")
		require.Empty(t, e.After)
		require.False(t, e.Undoable())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "helo")
}

func TestPersist_MissingFileAndEmptyPath(t *testing.T) {
	j, err := Load(filepath.Join(t.TempDir(), "missing.json"), 3)
	require.NoError(t, err)
	require.Zero(t, j.Len())

	j, err = Load("", 3)
	require.NoError(t, err)
	require.Zero(t, j.Len())

	require.Error(t, Save("", j))
	require.Error(t, Save("x.json", nil))
}

func TestPersist_ConfiguredSizeWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	j := NewJournal(10)
	for _, s := range []string{"1", "2", "3", "4"} {
		j.Add(entry("", s))
	}
	require.NoError(t, Save(path, j))

	loaded, err := Load(path, 2)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len(), "oldest entries dropped to fit")

	loaded, err = Load(path, 0)
	require.NoError(t, err)
	require.Equal(t, 10, loaded.maxSize, "snapshot size used when none configured")
}

func TestPersist_RejectsBadSnapshots(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err := Load(bad, 3)
	require.Error(t, err)

	future := filepath.Join(dir, "future.json")
	require.NoError(t, os.WriteFile(future, []byte(`{"version": 9}`), 0o600))
	_, err = Load(future, 3)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}
