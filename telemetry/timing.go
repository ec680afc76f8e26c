package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/insight/output"
)

// TimingCollector records a tree of timings. Top-level timers started after
// the first one become children of the first, so a report always has a
// single root.
type TimingCollector struct {
	mu   sync.Mutex
	root *span
}

type span struct {
	name     string
	start    time.Time
	end      time.Time
	children []*span
}

func (s *span) duration() time.Duration {
	if s.end.IsZero() {
		return time.Since(s.start)
	}
	return s.end.Sub(s.start)
}

// NewTimingCollector returns an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins a top-level timer.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{name: name, start: time.Now()}
	if c.root == nil {
		c.root = s
	} else {
		c.root.children = append(c.root.children, s)
	}
	return &timingTimer{collector: c, span: s}
}

// Report writes the timing tree to w.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}
	writeTree(w, c.root, styles)
}

type timingTimer struct {
	collector *TimingCollector
	span      *span
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if t.span.end.IsZero() {
		t.span.end = time.Now()
	}
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	s := &span{name: name, start: time.Now()}
	t.span.children = append(t.span.children, s)
	return &timingTimer{collector: t.collector, span: s}
}
