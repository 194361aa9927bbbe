package testutil

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFSRoundTrip(t *testing.T) {
	m := NewMemoryFS()

	err := m.WriteFile("/etc/nixos/an.nix", []byte("foo\n"), 0644)
	require.NoError(t, err)

	data, err := m.ReadFile("/etc/nixos/an.nix")
	require.NoError(t, err)
	assert.Equal(t, "foo\n", string(data))
	assert.Equal(t, 1, m.WriteCount())

	info, err := m.Stat("/etc/nixos/an.nix")
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size())
	assert.False(t, info.IsDir())
}

func TestMemoryFSMissingFile(t *testing.T) {
	m := NewMemoryFS()

	_, err := m.ReadFile("/missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = m.Stat("/missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.Error(t, m.Remove("/missing"))
}

func TestMemoryFSErrorInjection(t *testing.T) {
	m := NewMemoryFS().WithFile("/an.nix", []byte("foo\n")).FailWith("/an.nix", fs.ErrPermission)

	_, err := m.ReadFile("/an.nix")
	assert.ErrorIs(t, err, fs.ErrPermission)

	err = m.WriteFile("/an.nix", []byte("bar\n"), 0644)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, 0, m.WriteCount())
}
