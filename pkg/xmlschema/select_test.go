package xmlschema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogDoc = `<?xml version="1.0"?>
<catalog>
	<shelf name="a">
		<book id="1"><title>Go</title><price>10.5</price></book>
	</shelf>
	<shelf name="b">
		<book id="2"><title>Rust</title></book>
	</shelf>
</catalog>`

func TestSelect_Descendants(t *testing.T) {
	els, err := Select(strings.NewReader(catalogDoc), "//book", MergeOptions{})
	require.NoError(t, err)
	require.Len(t, els, 2)

	for _, el := range els {
		assert.Equal(t, "book", el.Name)
		assert.Equal(t, Required(Integer), el.Attributes["id"])
	}
	require.Len(t, els[0].Items, 2)
	assert.Equal(t, "price", els[0].Items[0].Name)
	assert.Equal(t, Required(Float), els[0].Items[0].Value)
}

func TestSelect_MatchesTokenizerTree(t *testing.T) {
	selected, err := Select(strings.NewReader(catalogDoc), "/", MergeOptions{})
	require.NoError(t, err)
	require.Len(t, selected, 1)

	parsed, err := ParseString(catalogDoc, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, parsed, selected[0])
}

func TestSelect_NoMatch(t *testing.T) {
	_, err := Select(strings.NewReader(catalogDoc), "//magazine", MergeOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestSelect_NonElementMatchesIgnored(t *testing.T) {
	_, err := Select(strings.NewReader(catalogDoc), "//book/@id", MergeOptions{})
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestSelect_InvalidExpression(t *testing.T) {
	_, err := Select(strings.NewReader(catalogDoc), "//book[", MergeOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidXPath))
}
