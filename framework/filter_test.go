package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID {
	return TestID{Path: path}
}

func filtersFor(t *testing.T, run, skip []string) RegexFilters {
	var f RegexFilters
	for _, p := range run {
		require.NoError(t, f.MustMatch.Set(p))
	}
	for _, p := range skip {
		require.NoError(t, f.MustNotMatch.Set(p))
	}
	return f
}

func TestNoFiltersRunsEverything(t *testing.T) {
	f := filtersFor(t, nil, nil)
	assert.True(t, f.AsFilter(id("courier")))
	assert.True(t, f.AsFilter(id("courier", "login", "valid")))
}

func TestRunPatternMatchesPerPathElement(t *testing.T) {
	f := filtersFor(t, []string{"courier/login"}, nil)

	assert.True(t, f.AsFilter(id("courier")), "parent must run so the subtest can")
	assert.True(t, f.AsFilter(id("courier", "login")))
	assert.True(t, f.AsFilter(id("courier", "login", "login=missing")))
	assert.False(t, f.AsFilter(id("courier", "create")))
	assert.False(t, f.AsFilter(id("orders")))
}

func TestSkipPatternNeedsFullDepth(t *testing.T) {
	f := filtersFor(t, nil, []string{"orders/create"})

	assert.True(t, f.AsFilter(id("orders")))
	assert.False(t, f.AsFilter(id("orders", "create")))
	assert.False(t, f.AsFilter(id("orders", "create", "colors=[]")))
	assert.True(t, f.AsFilter(id("orders", "list")))
}

func TestMultiplePatternsAreAlternatives(t *testing.T) {
	f := filtersFor(t, []string{"^orders$", "^courier$/^delete$"}, nil)

	assert.True(t, f.AsFilter(id("orders", "list")))
	assert.True(t, f.AsFilter(id("courier", "delete")))
	assert.False(t, f.AsFilter(id("courier", "login")))
}

func TestSlashesInsideBracketsAndEscapesDoNotSplit(t *testing.T) {
	assert.Equal(t, []string{"a", "[/]", "b"}, splitPattern("a/[/]/b"))
	assert.Equal(t, []string{`x\/y`, "z"}, splitPattern(`x\/y/z`))
	assert.Equal(t, []string{"(a/b)"}, splitPattern("(a/b)"))
	assert.Equal(t, []string{"colors=\\[BLACK,GREY\\]"}, splitPattern(`colors=\[BLACK,GREY\]`))
}

func TestInvalidPatternIsRejected(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("a/(b"))
	assert.False(t, r.IsDefined())
}

func TestRegexListString(t *testing.T) {
	f := filtersFor(t, []string{"a", "b/c"}, nil)
	assert.Equal(t, `"a" or "b/c"`, f.MustMatch.String())
	assert.Equal(t, "regex", f.MustMatch.Type())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, filtersFor(t, nil, nil))
	assert.Empty(t, buf.String())

	PrintFilterDescription(&buf, filtersFor(t, []string{"courier"}, []string{"delete"}))
	assert.Equal(t,
		"Some tests will be skipped based on the filter criteria for this test run:\n"+
			"  skip any not matching \"courier\"\n"+
			"  skip any matching \"delete\"\n\n",
		buf.String())
}
