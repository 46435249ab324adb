// Package httputil provides shared HTTP response helpers so every handler
// emits the same {error, code, details} envelope.
package httputil
