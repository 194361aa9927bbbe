// Package types holds the shared interfaces annix components depend on.
package types
