// Package types defines the core types and interfaces shared across
// waylandify: the filesystem abstraction used by discovery, backup and
// apply, and the result structures produced by the commands.
package types
