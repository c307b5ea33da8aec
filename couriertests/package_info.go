// Package couriertests contains the contract tests for the courier and order API.
//
// Tests are grouped by resource and operation, one Do...Tests function per operation, and are
// run in order by RunTestSuite. Every test that creates a courier account registers it with
// the lifecycle package, which deletes it when the test ends, and every expected response is
// declared in contract_table.go.
package couriertests
