package filestore_test

import (
	"os"
	"strings"
	"testing"

	"github.com/notemark/notemark/pkg/filestore"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	root := t.TempDir()

	store := filestore.New(filestore.WithRoot(root))

	dir, err := store.CreateDir("scratch")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dir, root))

	path, err := store.WriteFile(dir, "doc.pdf", []byte("payload"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)

	require.NoError(t, store.RemoveDir(dir))

	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestCreateDirUnique(t *testing.T) {
	store := filestore.New(filestore.WithRoot(t.TempDir()))

	first, err := store.CreateDir("scratch")
	require.NoError(t, err)

	second, err := store.CreateDir("scratch")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
