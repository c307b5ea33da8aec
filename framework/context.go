package framework

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	suiteData  interface{}
}

// Context is the state of one test or subtest. It is used similarly to *testing.T: it implements
// require.TestingT, so the assert and require packages can be used with it, and has a Run method
// for subtests. A test ends early if FailNow or Skip is called; functions registered with Defer
// run on every exit path.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	errors      []error
	warnings    []string
	deferred    []func()
}

// Run executes a test suite. The suiteData value is made available to every test through
// Context.SuiteData, and is how domain-specific code passes clients and generators to tests.
func Run(
	filter Filter,
	testLogger TestLogger,
	suiteData interface{},
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
		suiteData:  suiteData,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		c.recoverFrom(recover())
		c.runDeferred()
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Warnings: c.warnings, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

// recoverFrom handles a panic from the test body or a deferred function. The panic that
// FailNow and Skip use to stop a test is expected; any other panic is a failure, even in a
// test that was skipped.
func (c *Context) recoverFrom(r interface{}) {
	if r == nil {
		return
	}
	var addError error
	if _, ok := r.(*Context); ok {
		if c.skipped {
			return
		}
		if len(c.errors) == 0 {
			addError = errors.New("test failed with no failure message")
		}
	} else {
		addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	}
	c.failed = true
	if addError != nil {
		c.errors = append(c.errors, addError)
		c.env.testLogger.TestError(c.id, addError)
	}
}

func (c *Context) runDeferred() {
	for len(c.deferred) > 0 {
		last := len(c.deferred) - 1
		fn := c.deferred[last]
		c.deferred = c.deferred[:last]
		func() {
			defer func() {
				c.recoverFrom(recover())
			}()
			fn()
		}()
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// SuiteData returns the value that was passed to Run.
func (c *Context) SuiteData() interface{} {
	return c.env.suiteData
}

// Run runs a subtest. This is equivalent to the Run method of testing.T. A failure of the
// subtest does not stop the parent test.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped && !c1.failed {
		c.env.testLogger.TestSkipped(id, "")
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Defer schedules a function to run when the test ends, whether it passed, failed, or was
// stopped by FailNow. Deferred functions run in last-in-first-out order.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// ReportError marks the test as failed with the given error, keeping its type so that the
// failure can be classified later.
func (c *Context) ReportError(err error) {
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// Warn records a diagnostic that is reported with the test but does not make it fail.
func (c *Context) Warn(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, message)
	c.debugLogger.Printf("WARNING: %s", message)
	c.env.testLogger.TestWarning(c.id, message)
}

// Helper exists so that testify treats Context like testing.T.
func (c *Context) Helper() {}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

var errorTraceLine = regexp.MustCompile(`^\s*(Error Trace:)?\s*\S+\.go:\d+\s*$`)

// reformatError drops testify's "Error Trace" lines, which only point into the harness's own
// source, and trims the leading blank line that testify adds.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if errorTraceLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return errors.New(strings.TrimSpace(strings.Join(kept, "\n")))
}
