package textstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data"), zap.NewNop())
}

func TestReadAllLinesMissingFile(t *testing.T) {
	store := newTestStore(t)

	lines, err := store.ReadAllLines("rooms.txt")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := []string{"R001|101|Single", "R002|102|Double"}
	require.NoError(t, store.WriteAllLines("rooms.txt", want))

	got, err := store.ReadAllLines("rooms.txt")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Exact file content: one record per line with a trailing newline.
	data, err := os.ReadFile(store.Path("rooms.txt"))
	require.NoError(t, err)
	assert.Equal(t, "R001|101|Single\nR002|102|Double\n", string(data))
}

func TestReadSkipsBlankLines(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.Dir(), 0o755))
	require.NoError(t, os.WriteFile(store.Path("rooms.txt"), []byte("a|b\n\n  \nc|d\n"), 0o644))

	lines, err := store.ReadAllLines("rooms.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a|b", "c|d"}, lines)
}

func TestWriteEmptyListTruncates(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.WriteAllLines("rooms.txt", []string{"a|b"}))
	require.NoError(t, store.WriteAllLines("rooms.txt", nil))

	lines, err := store.ReadAllLines("rooms.txt")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestBackupKeepsPreviousContent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.WriteAllLines("rooms.txt", []string{"old"}))
	require.NoError(t, store.WriteAllLines("rooms.txt", []string{"new"}))

	backup, err := os.ReadFile(store.Path("rooms.txt") + backupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(backup))
}

func TestFailedWriteLeavesTargetIntact(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.WriteAllLines("rooms.txt", []string{"keep me"}))

	// A directory at the temp path makes the temp write fail before the
	// target is touched.
	require.NoError(t, os.Mkdir(store.Path("rooms.txt")+tempSuffix, 0o755))

	err := store.WriteAllLines("rooms.txt", []string{"lost update"})
	require.Error(t, err)

	lines, readErr := store.ReadAllLines("rooms.txt")
	require.NoError(t, readErr)
	assert.Equal(t, []string{"keep me"}, lines)
}
