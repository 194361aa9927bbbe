package store_test

import (
	"io/fs"
	"testing"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/nixfile"
	"github.com/arthur-debert/annix/pkg/store"
	"github.com/arthur-debert/annix/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	m := testutil.NewMemoryFS().WithFile("/etc/nixos/an.nix", []byte("foo\n#- bar\n"))
	st := store.New(m, "/etc/nixos/an.nix")

	buf, err := st.Read()
	require.NoError(t, err)
	assert.Equal(t, 2, buf.Len())
	assert.Equal(t, "foo", buf.Line(0))

	buf.Append("baz")
	require.NoError(t, st.Write(buf))

	again, err := st.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "#- bar", "baz"}, again.Lines())
}

func TestReadErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		st := store.New(testutil.NewMemoryFS(), "/missing.nix")
		_, err := st.Read()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
	})

	t.Run("permission_denied", func(t *testing.T) {
		m := testutil.NewMemoryFS().
			WithFile("/an.nix", []byte("foo\n")).
			FailWith("/an.nix", &fs.PathError{Op: "open", Path: "/an.nix", Err: fs.ErrPermission})
		st := store.New(m, "/an.nix")
		_, err := st.Read()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))
	})
}

func TestWriteError(t *testing.T) {
	m := testutil.NewMemoryFS().
		FailWith("/an.nix", &fs.PathError{Op: "write", Path: "/an.nix", Err: fs.ErrPermission})
	st := store.New(m, "/an.nix")

	err := st.Write(nixfile.NewBuffer([]string{"foo"}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))
}

func TestSavePath(t *testing.T) {
	st := store.New(testutil.NewMemoryFS(), "/etc/nixos/an.nix")

	path, err := st.SavePath("  my laptop ")
	require.NoError(t, err)
	assert.Equal(t, "/etc/nixos/an_mylaptop.nix", path)

	_, err = st.SavePath("   ")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSaveAs(t *testing.T) {
	m := testutil.NewMemoryFS().WithFile("/etc/nixos/an.nix", []byte("foo\n"))
	st := store.New(m, "/etc/nixos/an.nix")

	require.NoError(t, st.SaveAs("/etc/nixos/an_backup.nix"))
	assert.True(t, st.Exists("/etc/nixos/an_backup.nix"))

	data, err := m.ReadFile("/etc/nixos/an_backup.nix")
	require.NoError(t, err)
	assert.Equal(t, "foo\n", string(data))
}
