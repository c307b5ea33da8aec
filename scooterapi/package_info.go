// Package scooterapi is a typed client for the courier and order API. It treats every HTTP
// status as data, so that tests can assert on error responses the same way as on successes.
package scooterapi
