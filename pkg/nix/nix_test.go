package nix

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchOutput(t *testing.T) {
	data := []byte(`{
		"legacyPackages.x86_64-linux.ripgrep": {
			"pname": "ripgrep",
			"version": "14.1.0",
			"description": "Utility that combines the usability of ag with the raw speed of grep "
		},
		"legacyPackages.x86_64-linux.fd": {
			"pname": "fd",
			"version": "10.1.0",
			"description": ""
		}
	}`)

	results, err := ParseSearchOutput(data)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Sorted by attribute path.
	assert.Equal(t, "fd", results[0].Name)
	assert.Equal(t, "ripgrep", results[1].Name)
	assert.Equal(t, "14.1.0", results[1].Version)
	// Descriptions are trimmed.
	assert.Equal(t, "Utility that combines the usability of ag with the raw speed of grep", results[1].Description)
}

func TestParseSearchOutputEmpty(t *testing.T) {
	results, err := ParseSearchOutput(nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = ParseSearchOutput([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseSearchOutputMalformed(t *testing.T) {
	_, err := ParseSearchOutput([]byte(`not json`))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSearch))
}

func TestSearcher(t *testing.T) {
	t.Run("empty_query_is_noop", func(t *testing.T) {
		called := false
		s := &Searcher{run: func(args ...string) ([]byte, error) {
			called = true
			return nil, nil
		}}
		results, err := s.Search("   ")
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.False(t, called)
	})

	t.Run("passes_query_through", func(t *testing.T) {
		var gotArgs []string
		s := &Searcher{run: func(args ...string) ([]byte, error) {
			gotArgs = args
			return []byte(`{}`), nil
		}}
		_, err := s.Search("ripgrep")
		require.NoError(t, err)
		assert.Equal(t, []string{"search", "--json", "nixpkgs", "ripgrep"}, gotArgs)
	})

	t.Run("wraps_command_failure", func(t *testing.T) {
		s := &Searcher{run: func(args ...string) ([]byte, error) {
			return nil, assert.AnError
		}}
		_, err := s.Search("ripgrep")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSearch))
	})
}

func TestRebuilder(t *testing.T) {
	t.Run("runs_command", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRebuilder([]string{"echo", "rebuilt"}, &out, &out)
		require.NoError(t, r.Run())
		assert.Equal(t, "rebuilt\n", out.String())
	})

	t.Run("missing_argv", func(t *testing.T) {
		r := NewRebuilder(nil, nil, nil)
		err := r.Run()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRebuild))
	})

	t.Run("command_failure", func(t *testing.T) {
		r := NewRebuilder([]string{"false"}, nil, nil)
		err := r.Run()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRebuild))
	})
}
