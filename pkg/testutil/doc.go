// Package testutil provides test helpers for annix, most importantly an
// in-memory types.FS implementation with error injection.
package testutil
