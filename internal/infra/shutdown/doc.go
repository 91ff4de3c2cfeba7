// Package shutdown runs teardown hooks exactly once.
//
// The editor has two exit paths: a signal (SIGINT/SIGTERM) and the UI
// quitting normally. Both funnel through the same handler so the hook
// order is identical either way: hooks run in reverse registration
// order under a deadline, which puts the autosave scheduler stop and
// the snapshot cleanup before the metrics listener close.
package shutdown
