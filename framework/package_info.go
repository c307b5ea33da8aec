// Package framework contains the low-level implementation of test harness infrastructure
// that is independent of the API being tested.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Tests run one at a time and never share state except through the
// service under test.
//
// 2. Tests can register cleanup with Context.Defer, which runs on every exit path, and can
// attach warnings (such as a fixture that could not be removed) without failing.
//
// 3. RunVariants expands one test body over a table of inputs, producing one independent
// result per input.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the client for the service and a domain-specific test API on top of the test context.
package framework
