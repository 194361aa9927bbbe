package cli

import (
	"testing"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "annix", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"sync", "add", "rm", "ls", "clean", "save", "search", "genconfig", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestRenderErrorIncludesLineContext(t *testing.T) {
	err := errors.New(errors.ErrParseMultiplePackages, "multiple packages on one line").
		WithLine(7, "foo bar")

	out := RenderError(err)
	assert.Contains(t, out, "line 7")
	assert.Contains(t, out, "foo bar")
	assert.Contains(t, out, "multiple packages on one line")
}

func TestRenderErrorPlain(t *testing.T) {
	err := errors.New(errors.ErrFileRead, "failed to read /etc/nixos/an.nix")
	out := RenderError(err)
	require.Contains(t, out, "failed to read /etc/nixos/an.nix")
	assert.NotContains(t, out, "line ")
}
