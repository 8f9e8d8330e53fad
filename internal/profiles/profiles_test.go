package profiles

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadDelete(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Save(dir, "gaming", `{"effect":1}`))

	text, err := Load(dir, "gaming")
	require.NoError(t, err)
	assert.Equal(t, `{"effect":1}`, text)

	_, err = List(dir)
	assert.NoError(t, err)

	require.NoError(t, Delete(dir, "gaming"))
	_, err = Load(dir, "gaming")
	assert.Error(t, err)
}

func TestListSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, "zeta", "{}"))
	require.NoError(t, Save(dir, "alpha", "{}"))

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestListMissingDir(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestDeleteMissingIsNotError(t *testing.T) {
	assert.NoError(t, Delete(t.TempDir(), "nope"))
}

func TestRejectsPathTraversal(t *testing.T) {
	assert.Error(t, Save(t.TempDir(), "../escape", "{}"))
}
