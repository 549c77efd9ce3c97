package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return store
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(store.BasePath())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSave_Open_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(7, strings.NewReader("passport scan"), "passport.pdf")
	require.NoError(t, err)
	assert.Equal(t, "passport.pdf", name)

	f, err := store.Open(7, name)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "passport scan", string(data))

	_, err = os.Stat(filepath.Join(store.BasePath(), "7", "passport.pdf"))
	assert.NoError(t, err)
}

func TestSave_SanitizesTraversal(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(1, strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc_passwd", name)

	_, err = os.Stat(filepath.Join(store.BasePath(), "1", "etc_passwd"))
	assert.NoError(t, err)
}

func TestSave_InvalidName(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"", "..", "/", "***"} {
		_, err := store.Save(1, strings.NewReader("x"), name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestSave_LastWriteWins(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(3, strings.NewReader("first"), "id card.png")
	require.NoError(t, err)
	name, err := store.Save(3, strings.NewReader("second"), "id card.png")
	require.NoError(t, err)
	assert.Equal(t, "id_card.png", name)

	f, err := store.Open(3, name)
	require.NoError(t, err)
	defer f.Close()
	data, _ := io.ReadAll(f)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Join(store.BasePath(), "3"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestOpen_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open(9, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_RejectsUnsanitizedName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open(1, "../1/secret.txt")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestExists(t *testing.T) {
	store := newTestStore(t)

	ok, err := store.Exists(2, "receipt.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Save(2, strings.NewReader("r"), "receipt.txt")
	require.NoError(t, err)

	ok, err = store.Exists(2, "receipt.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemove_Idempotent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(4, strings.NewReader("r"), "a.txt")
	require.NoError(t, err)

	require.NoError(t, store.Remove(4, "a.txt"))
	require.NoError(t, store.Remove(4, "a.txt"))

	ok, _ := store.Exists(4, "a.txt")
	assert.False(t, ok)
}

func TestRemoveCustomerArea(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(5, strings.NewReader("a"), "a.txt")
	require.NoError(t, err)
	_, err = store.Save(6, strings.NewReader("b"), "b.txt")
	require.NoError(t, err)

	require.NoError(t, store.RemoveCustomerArea(5))

	_, err = os.Stat(filepath.Join(store.BasePath(), "5"))
	assert.True(t, os.IsNotExist(err))

	ok, err := store.Exists(6, "b.txt")
	require.NoError(t, err)
	assert.True(t, ok, "other customers' files stay")

	assert.NoError(t, store.RemoveCustomerArea(42), "missing area is not an error")
}
