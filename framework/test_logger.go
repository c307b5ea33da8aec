package framework

// TestLogger receives progress events while a suite runs. Events for one test arrive in order:
// TestStarted, then any number of TestError and TestWarning, then exactly one of TestFinished or
// TestSkipped. A test excluded by the filter gets TestStarted and TestSkipped only.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	// TestWarning reports a problem that does not fail the test, such as a fixture that could
	// not be cleaned up.
	TestWarning(id TestID, message string)
	// TestFinished is called when a test that was not skipped ends. The debug output is what
	// the test wrote to its DebugLogger, including request and response traces.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (nullTestLogger) TestStarted(TestID)                        {}
func (nullTestLogger) TestError(TestID, error)                   {}
func (nullTestLogger) TestWarning(TestID, string)                {}
func (nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (nullTestLogger) TestSkipped(TestID, string)                {}
