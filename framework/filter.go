package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests the same way "go test -run" and "go test -skip" do: a pattern is
// split on unbracketed slashes, and each element is matched against the corresponding element
// of the test path. A parent test matches MustMatch if its own elements do, so that its
// subtests get a chance to run.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	if r.MustMatch.IsDefined() && !r.MustMatch.anyPrefixMatch(id) {
		return false
	}
	return !r.MustNotMatch.anyFullMatch(id)
}

// RegexList is a list of slash-separated patterns, settable from the command line.
type RegexList struct {
	patterns []pathPattern
}

type pathPattern struct {
	source   string
	elements []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := pathPattern{source: value}
	for _, element := range splitPattern(value) {
		rx, err := regexp.Compile(element)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.elements = append(p.elements, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

// Type is called by the command line parser
func (r *RegexList) Type() string {
	return "regex"
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// AnyMatch returns true if any pattern matches the whole path.
func (r RegexList) AnyMatch(id TestID) bool {
	return r.anyFullMatch(id)
}

func (r RegexList) anyPrefixMatch(id TestID) bool {
	for _, p := range r.patterns {
		if p.matches(id, true) {
			return true
		}
	}
	return false
}

func (r RegexList) anyFullMatch(id TestID) bool {
	for _, p := range r.patterns {
		if p.matches(id, false) {
			return true
		}
	}
	return false
}

func (p pathPattern) matches(id TestID, allowShorterPath bool) bool {
	if len(id.Path) < len(p.elements) && !allowShorterPath {
		return false
	}
	for i, element := range p.elements {
		if i >= len(id.Path) {
			break
		}
		if !element.MatchString(id.Path[i]) {
			return false
		}
	}
	return true
}

// splitPattern splits on slashes that are not escaped and not inside brackets or parentheses.
func splitPattern(pattern string) []string {
	var ret []string
	depth := 0
	start := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				ret = append(ret, pattern[start:i])
				start = i + 1
			}
		}
	}
	return append(ret, pattern[start:])
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
