package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/tabpipe/core"
)

func TestSplitSeparatesTextAndTables(t *testing.T) {
	markup := `<p>Before the table.</p>
<table>
  <tr><th>Line Item</th><th>2024</th></tr>
  <tr><td>Revenue</td><td>4,947,807</td></tr>
</table>
<p>After the table.</p>`

	text, fragments, err := New().Split(markup)
	require.NoError(t, err)

	assert.Equal(t, "Before the table.\nAfter the table.", text)
	assert.NotContains(t, text, "Revenue")
	assert.NotContains(t, text, "4,947,807")

	require.Len(t, fragments, 1)
	assert.Equal(t, core.TableFragment{
		{"Line Item", "2024"},
		{"Revenue", "4,947,807"},
	}, fragments[0])
}

func TestSplitZeroTables(t *testing.T) {
	text, fragments, err := New().Split("<p>Only prose here.</p>")
	require.NoError(t, err)
	assert.Equal(t, "Only prose here.", text)
	assert.Empty(t, fragments)
}

func TestSplitEmptyMarkup(t *testing.T) {
	text, fragments, err := New().Split("")
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Empty(t, fragments)
}

func TestSplitPlainTextPassthrough(t *testing.T) {
	text, fragments, err := New().Split("Just some text with no tags.")
	require.NoError(t, err)
	assert.Equal(t, "Just some text with no tags.", text)
	assert.Empty(t, fragments)
}

func TestSplitKeepsTableOrder(t *testing.T) {
	markup := `<table><tr><td>first</td></tr></table>
<p>Between.</p>
<table><tr><td>second</td></tr></table>`

	text, fragments, err := New().Split(markup)
	require.NoError(t, err)
	assert.Equal(t, "Between.", text)

	require.Len(t, fragments, 2)
	assert.Equal(t, "first", fragments[0][0][0])
	assert.Equal(t, "second", fragments[1][0][0])
}

func TestSplitHandlesNestedTagsInCells(t *testing.T) {
	markup := `<table><tr><td>Total <b>assets</b></td><td><span>1,000</span></td></tr></table>`

	_, fragments, err := New().Split(markup)
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, []string{"Total assets", "1,000"}, fragments[0][0])
}

func TestSplitPassesRaggedRowsThrough(t *testing.T) {
	markup := `<table>
  <tr><th>a</th><th>b</th><th>c</th></tr>
  <tr><td>1</td></tr>
  <tr><td>1</td><td>2</td><td>3</td><td>4</td></tr>
</table>`

	_, fragments, err := New().Split(markup)
	require.NoError(t, err)
	require.Len(t, fragments, 1)

	fragment := fragments[0]
	require.Len(t, fragment, 3)
	assert.Len(t, fragment[0], 3)
	assert.Len(t, fragment[1], 1)
	assert.Len(t, fragment[2], 4)
}

func TestSplitNormalizesBlockBoundaries(t *testing.T) {
	markup := `<div>First block</div><div>  Second block  </div><p>Third</p>`

	text, _, err := New().Split(markup)
	require.NoError(t, err)
	assert.Equal(t, "First block\nSecond block\nThird", text)
}

func TestSplitDropsScriptNoise(t *testing.T) {
	markup := `<p>Visible.</p><script>var hidden = 1;</script>`

	text, _, err := New().Split(markup)
	require.NoError(t, err)
	assert.Equal(t, "Visible.", text)
}
