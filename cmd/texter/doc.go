// Package main provides the entry point for texter.
//
// texter is a multi-document terminal text editor whose core is a
// document session manager: open buffers are snapshotted periodically
// to a scratch directory, and snapshots orphaned by a crash are
// offered for recovery on the next start.
package main
