package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/tabpipe/core"
)

func TestDeduplicatePreservesUniqueHeaders(t *testing.T) {
	in := []string{"Line Item", "2024", "As Restated 2023", "Note"}
	out := Deduplicate(in)
	assert.Equal(t, in, out)
}

func TestDeduplicateSuffixesRepeats(t *testing.T) {
	out := Deduplicate([]string{"a", "a", "a"})
	assert.Equal(t, []string{"a", "a_2", "a_3"}, out)
}

func TestDeduplicateBlankHeadersBecomeCol(t *testing.T) {
	out := Deduplicate([]string{"", "   ", "x"})
	assert.Equal(t, []string{"col", "col_2", "x"}, out)
}

func TestDeduplicateCountersAreIndependent(t *testing.T) {
	out := Deduplicate([]string{"a", "b", "a", "b"})
	assert.Equal(t, []string{"a", "b", "a_2", "b_2"}, out)
}

func TestDeduplicateIsDeterministic(t *testing.T) {
	in := []string{"Note", "", "Note", "2024", ""}
	first := Deduplicate(in)
	second := Deduplicate(in)
	assert.Equal(t, first, second)
	assert.Len(t, first, len(in))

	// Pairwise unique.
	seen := map[string]bool{}
	for _, h := range first {
		assert.False(t, seen[h], "duplicate header %q", h)
		seen[h] = true
	}
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, 4947807, Coerce("4,947,807"))
	assert.Equal(t, 1234, Coerce("1,234"))
	assert.Equal(t, -2000, Coerce("-2,000"))
	assert.Equal(t, "abc", Coerce("abc"))
	assert.Equal(t, "", Coerce(""))
	assert.Equal(t, "12.5", Coerce("12.5"))
	assert.Equal(t, "(4,000)", Coerce("(4,000)"))
}

func TestRecordsEmptyAndHeaderOnlyFragments(t *testing.T) {
	assert.Empty(t, Records(core.TableFragment{}))
	assert.NotNil(t, Records(core.TableFragment{}))

	headerOnly := core.TableFragment{{"Line Item", "2024"}}
	assert.Empty(t, Records(headerOnly))
	assert.NotNil(t, Records(headerOnly))
}

func TestRecordsFieldClassification(t *testing.T) {
	fragment := core.TableFragment{
		{"Line Item", "2024", "As Restated 2023", "Note"},
		{"Revenue", "4,947,807", "4,210,000", "1"},
	}
	recs := Records(fragment)
	require.Len(t, recs, 1)
	assert.Equal(t, core.Record{
		"name":      "Revenue",
		"year_2024": 4947807,
		"year_2023": 4210000,
		"note":      1,
	}, recs[0])
}

func TestRecordsHeaderMatchingIsCaseAndSpaceInsensitive(t *testing.T) {
	fragment := core.TableFragment{
		{"NOTE", " Year_2024 ", "YEAR_2023"},
		{"2", "5", "7"},
	}
	recs := Records(fragment)
	require.Len(t, recs, 1)
	assert.Equal(t, core.Record{"note": 2, "year_2024": 5, "year_2023": 7}, recs[0])
}

func TestRecordsEmptyNoteIsNull(t *testing.T) {
	fragment := core.TableFragment{
		{"Line Item", "Note"},
		{"Cash", ""},
	}
	recs := Records(fragment)
	require.Len(t, recs, 1)
	require.Contains(t, recs[0], "note")
	assert.Nil(t, recs[0]["note"])
}

func TestRecordsRaggedRowsAreTolerated(t *testing.T) {
	fragment := core.TableFragment{
		{"Line Item", "2024", "Note"},
		{"Cash"},
		{"Revenue", "100", "1", "spilled over"},
	}
	recs := Records(fragment)
	require.Len(t, recs, 2)

	// Short row: only positions that exist produce fields.
	assert.Equal(t, core.Record{"name": "Cash"}, recs[0])

	// Long row: the trailing cell beyond the header is dropped.
	assert.Equal(t, core.Record{"name": "Revenue", "year_2024": 100, "note": 1}, recs[1])
}

func TestRecordsLastUnrecognizedColumnWins(t *testing.T) {
	fragment := core.TableFragment{
		{"Description", "Category"},
		{"Revenue", "Operating"},
	}
	recs := Records(fragment)
	require.Len(t, recs, 1)
	assert.Equal(t, core.Record{"name": "Operating"}, recs[0])
}

func TestNormalizeBuildsDisplayView(t *testing.T) {
	n := New()
	view := n.Normalize(core.TableFragment{
		{"2024", "2024", ""},
		{"100", "200"},
		{"1", "2", "3", "4"},
	})

	assert.Equal(t, []string{"2024", "2024_2", "col"}, view.Header)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, []string{"100", "200", ""}, view.Rows[0], "short rows are padded")
	assert.Equal(t, []string{"1", "2", "3"}, view.Rows[1], "long rows are cut to the header width")
	assert.Len(t, view.Records, 2)
}

func TestNormalizeEmptyFragment(t *testing.T) {
	view := New().Normalize(core.TableFragment{})
	assert.Empty(t, view.Header)
	assert.Empty(t, view.Rows)
	assert.Empty(t, view.Records)
}
