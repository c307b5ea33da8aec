package main

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/scooter-qa/courier-contract-tests/config"
	"github.com/scooter-qa/courier-contract-tests/framework"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// reproCommand builds a command line that reruns only the failed tests against the same
// service with the same generated data.
func reproCommand(program string, cfg config.Config, seed int64, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program, "--url", cfg.BaseURL, "--seed", strconv.FormatInt(seed, 10))
	if cfg.Timeout != config.Default().Timeout {
		b.add("--timeout", cfg.Timeout.String())
	}
	seen := make(map[string]bool)
	for _, f := range failures {
		pattern := exactPathPattern(f.TestID)
		if !seen[pattern] {
			seen[pattern] = true
			b.add("--run", pattern)
		}
	}
	return b.String()
}

func exactPathPattern(id framework.TestID) string {
	elements := make([]string, 0, len(id.Path))
	for _, e := range id.Path {
		quoted := regexp.QuoteMeta(e)
		// a slash inside a test name would otherwise split the pattern
		quoted = strings.ReplaceAll(quoted, "/", `\/`)
		elements = append(elements, "^"+quoted+"$")
	}
	return strings.Join(elements, "/")
}
