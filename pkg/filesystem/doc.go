// Package filesystem provides filesystem implementations for annix.
//
// This package contains implementations of the types.FS interface,
// currently only the standard OS filesystem. Tests use the in-memory
// implementation from pkg/testutil instead.
package filesystem
