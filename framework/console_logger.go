package framework

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
)

var (
	failedLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
	warningLabel = color.New(color.FgMagenta).SprintFunc()
	passedLabel  = color.New(color.FgGreen).SprintFunc()
)

// ConsoleTestLogger writes test progress to standard output (or Out, if set).
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	Out                  io.Writer
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestWarning(id TestID, message string) {
	fmt.Fprintf(c.out(), "  %s %s\n", warningLabel("WARNING:"), message)
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		fmt.Fprintf(c.out(), "  %s %s\n", failedLabel("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.out(), "  %s %s\n", skippedLabel("SKIPPED:"), id)
	} else {
		fmt.Fprintf(c.out(), "  %s %s (%s)\n", skippedLabel("SKIPPED:"), id, reason)
	}
}

// PrintResults writes the end-of-run summary: every failure with its errors, then every
// warning (such as leaked fixtures), then the totals. Tests that only group subtests are not
// counted.
func PrintResults(out io.Writer, results Results, elapsed time.Duration) {
	if len(results.Failures) > 0 {
		fmt.Fprintln(out, failedLabel("FAILED TESTS:"))
		for _, f := range results.Failures {
			fmt.Fprintf(out, "  * %s\n", f.TestID)
			for _, e := range f.Errors {
				for _, line := range strings.Split(reformatError(e).Error(), "\n") {
					fmt.Fprintf(out, "      %s\n", line)
				}
			}
		}
	}
	if warned := results.Warnings(); len(warned) > 0 {
		fmt.Fprintln(out, warningLabel("WARNINGS:"))
		for _, w := range warned {
			fmt.Fprintf(out, "  * %s\n", w.TestID)
			for _, message := range w.Warnings {
				fmt.Fprintf(out, "      %s\n", message)
			}
		}
	}
	ran := 0
	for _, t := range results.Tests {
		if !t.Skipped && !results.hasSubtests(t.TestID) {
			ran++
		}
	}
	summary := fmt.Sprintf("%s, %s (%s)",
		english.Plural(ran, "test", ""),
		english.Plural(len(results.Failures), "failure", ""),
		elapsed.Round(time.Millisecond))
	if results.OK() {
		fmt.Fprintf(out, "%s %s\n", passedLabel("All tests passed:"), summary)
	} else {
		fmt.Fprintf(out, "%s %s\n", failedLabel("Test run failed:"), summary)
	}
}
