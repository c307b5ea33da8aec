package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger is what the harness writes debug output to. *log.Logger satisfies it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

// NullLogger discards everything.
func NullLogger() Logger { return nullLogger{} }

type prefixedLogger struct {
	base   Logger
	prefix string
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}

// LoggerWithPrefix returns a Logger that adds a fixed prefix to every message before passing it on.
func LoggerWithPrefix(base Logger, prefix string) Logger {
	if base == nil {
		return NullLogger()
	}
	return prefixedLogger{base: base, prefix: prefix}
}

// CapturedMessage is one line of a test's debug output. Offset is the time since the first
// message of the same test, which makes request latencies easy to read in a dump.
type CapturedMessage struct {
	Offset  time.Duration
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger buffers the debug output of one test, so that it is shown only if the test
// fails (or always, with --debug-all). The zero value is ready to use.
type CapturingLogger struct {
	start  time.Time
	output CapturedOutput
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	now := time.Now()
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.start.IsZero() {
		l.start = now
	}
	l.output = append(l.output, CapturedMessage{Offset: now.Sub(l.start), Message: fmt.Sprintf(message, args...)})
}

// Output returns a copy of everything logged so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.output...)
}

// Dump writes each message on its own line, after prefix and the message's offset.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[+%.3fs] %s\n", prefix, m.Offset.Seconds(), m.Message)
	}
}
