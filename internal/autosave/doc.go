// Package autosave runs the periodic snapshot scheduler.
//
// The scheduler owns a single background goroutine driven by a one-shot
// timer. Each time the timer fires it snapshots every open document and
// only then re-arms, so cycles never overlap; the interval measures idle
// time between cycles, not wall-clock period.
//
// Failures inside a cycle are deliberately invisible to the user: a
// document whose snapshot cannot be written is logged and counted in
// metrics, and the cycle moves on to the next document. The next cycle
// retries naturally.
package autosave
