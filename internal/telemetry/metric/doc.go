// Package metric provides Prometheus metrics for Texter.
//
// Autosave is required to swallow per-document write failures so
// editing is never interrupted; these metrics are the side channel
// that keeps those suppressed failures observable. An operator can
// detect chronic autosave failure from the counters without the UI
// ever knowing.
//
// Metrics include:
//
//   - Autosave cycle and per-document failure counters
//   - Open document gauge
//   - Snapshot byte gauge
//   - Recovery candidate/recovered counters
//
// When the metrics endpoint is enabled, metrics are exposed at
// /metrics in Prometheus format.
package metric
