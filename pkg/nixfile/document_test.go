package nixfile

import (
	"testing"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	buf := NewBuffer([]string{
		"#@# d41d8cd98f00b204e9800998ecf8427e  # managed",
		"# plain comment",
		"environment.systemPackages = with pkgs; [ #@",
		"  foo",
		"  #- bar",
		"  baz  # keep",
		"#@+",
		"] #@",
		"",
	})

	doc, err := Parse(buf, ParseOptions{})
	require.NoError(t, err)

	require.NotNil(t, doc.Fingerprint)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", doc.Fingerprint.Hash)
	assert.Equal(t, 0, doc.Fingerprint.Line)
	assert.Equal(t, "  # managed", doc.Fingerprint.Comment)

	require.NotNil(t, doc.Insertion)
	assert.Equal(t, 6, doc.Insertion.Line)
	assert.False(t, doc.Insertion.Above)

	require.Len(t, doc.Active, 2)
	assert.Equal(t, Entry{Name: "foo", Line: 3}, doc.Active[0])
	assert.Equal(t, Entry{Name: "baz", Line: 5, Comment: "  # keep"}, doc.Active[1])

	require.Len(t, doc.Disabled, 1)
	assert.Equal(t, Entry{Name: "bar", Line: 4}, doc.Disabled[0])

	require.Len(t, doc.Code, 2)
	assert.Equal(t, CodeToken{Text: "environment.systemPackages = with pkgs; [", Line: 2}, doc.Code[0])
	assert.Equal(t, CodeToken{Text: "]", Line: 7}, doc.Code[1])

	assert.Empty(t, doc.Warnings)
}

func TestParseDuplicateMarkersFirstWins(t *testing.T) {
	buf := NewBuffer([]string{
		"#@# aa",
		"#@# bb",
		"#@+",
		"#@+^",
	})

	doc, err := Parse(buf, ParseOptions{})
	require.NoError(t, err)

	require.NotNil(t, doc.Fingerprint)
	assert.Equal(t, "aa", doc.Fingerprint.Hash)
	assert.Equal(t, 0, doc.Fingerprint.Line)

	require.NotNil(t, doc.Insertion)
	assert.Equal(t, 2, doc.Insertion.Line)
	assert.False(t, doc.Insertion.Above)

	require.Len(t, doc.Warnings, 2)
	assert.Equal(t, WarnDuplicateFingerprint, doc.Warnings[0].Code)
	assert.Equal(t, 2, doc.Warnings[0].Line)
	assert.Equal(t, WarnDuplicateInsertion, doc.Warnings[1].Code)
	assert.Equal(t, 4, doc.Warnings[1].Line)
}

func TestParseInvalidFingerprintIsWarning(t *testing.T) {
	buf := NewBuffer([]string{
		"#@# zzz-not-hex",
		"foo",
	})

	doc, err := Parse(buf, ParseOptions{})
	require.NoError(t, err)

	assert.Nil(t, doc.Fingerprint)
	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, WarnInvalidFingerprint, doc.Warnings[0].Code)
	require.Len(t, doc.Active, 1)
}

func TestParseDuplicatePackagesWarning(t *testing.T) {
	buf := NewBuffer([]string{
		"foo",
		"#- foo",
		"bar",
		"bar",
		"unique",
	})

	doc, err := Parse(buf, ParseOptions{})
	require.NoError(t, err)

	require.Len(t, doc.Warnings, 1)
	w := doc.Warnings[0]
	assert.Equal(t, WarnDuplicatePackages, w.Code)
	assert.Contains(t, w.Message, "[bar, foo]")
}

func TestParseSuppressWarnings(t *testing.T) {
	buf := NewBuffer([]string{
		"#@# aa",
		"#@# bb",
		"foo",
		"foo",
	})

	doc, err := Parse(buf, ParseOptions{SuppressWarnings: true})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
}

func TestParseFatalCarriesLineContext(t *testing.T) {
	buf := NewBuffer([]string{
		"foo",
		"bar extra-package",
	})

	_, err := Parse(buf, ParseOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParseMultiplePackages))

	n, raw, ok := errors.Line(err)
	require.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, "bar extra-package", raw)
}

func TestParseSpecExample(t *testing.T) {
	// buffer ["foo", "#- bar", "baz  # keep"] parses into
	// active=[foo, baz], disabled=[bar].
	buf := NewBuffer([]string{"foo", "#- bar", "baz  # keep"})

	doc, err := Parse(buf, ParseOptions{})
	require.NoError(t, err)

	require.Len(t, doc.Active, 2)
	assert.Equal(t, "foo", doc.Active[0].Name)
	assert.Equal(t, "baz", doc.Active[1].Name)
	assert.Equal(t, "  # keep", doc.Active[1].Comment)
	require.Len(t, doc.Disabled, 1)
	assert.Equal(t, "bar", doc.Disabled[0].Name)
}
