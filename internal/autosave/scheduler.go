package autosave

import (
	"sync"
	"time"

	"github.com/texterhq/texter-go/internal/core/domain"
	"github.com/texterhq/texter-go/internal/telemetry/logger"
	"github.com/texterhq/texter-go/internal/telemetry/metric"
)

const (
	// DefaultInterval is the pause between autosave cycles.
	DefaultInterval = 30 * time.Second
	// MinInterval is the smallest interval the scheduler accepts.
	MinInterval = time.Second
)

// DocumentSource lists the documents to snapshot each cycle.
type DocumentSource interface {
	List() []*domain.Document
}

// SnapshotWriter persists one snapshot + metadata pair.
type SnapshotWriter interface {
	WritePair(doc *domain.Document, now time.Time) error
}

// Scheduler drives periodic snapshots of all open documents.
type Scheduler struct {
	docs    DocumentSource
	snaps   SnapshotWriter
	log     logger.Logger
	metrics *metric.Registry

	mu       sync.Mutex
	interval time.Duration
	started  bool
	stopped  bool

	cycleMu sync.Mutex

	stopCh chan struct{}
	doneCh chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the pause between cycles. Values below MinInterval
// are clamped.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.interval = clampInterval(d)
	}
}

// WithLogger sets the scheduler's logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// WithMetrics sets the metrics registry the scheduler reports to.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// New creates a stopped scheduler. Call Start to begin cycling.
func New(docs DocumentSource, snaps SnapshotWriter, opts ...Option) *Scheduler {
	s := &Scheduler{
		docs:     docs,
		snaps:    snaps,
		log:      logger.Default(),
		metrics:  metric.NewRegistry(),
		interval: DefaultInterval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start launches the background loop. Calling Start on a running or
// stopped scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true

	go s.loop()
}

// Stop cancels the pending timer and waits for an in-flight cycle to
// finish. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.mu.Unlock()

	close(s.stopCh)
	if started {
		<-s.doneCh
	}
}

// SetInterval changes the pause between cycles. The new interval takes
// effect when the timer next re-arms.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = clampInterval(d)
}

// Interval returns the current pause between cycles.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// loop is the scheduler goroutine: arm, wait, cycle, repeat.
func (s *Scheduler) loop() {
	defer close(s.doneCh)

	for {
		timer := time.NewTimer(s.Interval())

		select {
		case <-timer.C:
			s.TriggerCycle()

		case <-s.stopCh:
			timer.Stop()
			return
		}
	}
}

// TriggerCycle runs one autosave cycle synchronously: every open
// document gets a fresh snapshot pair, dirty or not. Per-document
// failures are logged and counted, never returned.
func (s *Scheduler) TriggerCycle() {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	start := time.Now()
	docs := s.docs.List()

	var written, failed int
	var bytes int64

	for _, doc := range docs {
		if err := s.snaps.WritePair(doc, time.Now()); err != nil {
			failed++
			s.metrics.AutosaveFailures.Inc()
			s.log.Warn("autosave write failed",
				"document_id", doc.ID,
				"autosave_id", doc.AutosaveID,
				"error", err)
			continue
		}

		written++
		bytes += int64(len(doc.Content))
		s.metrics.AutosaveWrites.Inc()
	}

	s.metrics.AutosaveCycles.Inc()
	s.metrics.AutosaveCycleSecs.Observe(time.Since(start).Seconds())
	s.metrics.SnapshotBytes.Set(float64(bytes))

	s.log.Debug("autosave cycle complete",
		"documents", len(docs),
		"written", written,
		"failed", failed,
		"elapsed", time.Since(start))
}

func clampInterval(d time.Duration) time.Duration {
	if d < MinInterval {
		return MinInterval
	}
	return d
}
