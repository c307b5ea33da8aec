package framework

import "strings"

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID   TestID
	Errors   []error
	Warnings []string
	Skipped  bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Warnings returns every test result that recorded at least one warning, such as a fixture
// that could not be cleaned up.
func (r Results) Warnings() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if len(t.Warnings) > 0 {
			ret = append(ret, t)
		}
	}
	return ret
}

// hasSubtests returns true if any result belongs to a subtest of id, meaning that id is only a
// group of tests.
func (r Results) hasSubtests(id TestID) bool {
	for _, t := range r.Tests {
		if len(t.TestID.Path) > len(id.Path) && isPrefix(id.Path, t.TestID.Path) {
			return true
		}
	}
	return false
}

func isPrefix(prefix, path []string) bool {
	for i := range prefix {
		if prefix[i] != path[i] {
			return false
		}
	}
	return true
}

// Find returns the result for the test with the given path, if that test ran.
func (r Results) Find(path ...string) (TestResult, bool) {
	want := TestID{Path: path}.String()
	for _, t := range r.Tests {
		if t.TestID.String() == want {
			return t, true
		}
	}
	return TestResult{}, false
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}
