package telemetry

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Feed is a progrock writer that queues status updates until they are read.
// Writes never block. Updates are only queued between Open and Pause, and
// updates written after Close are dropped.
type Feed struct {
	mu        sync.Mutex
	cond      *sync.Cond
	queue     []*progrock.StatusUpdate
	recording bool
	closed    bool
}

// NewFeed creates a Feed that is not yet recording.
func NewFeed() *Feed {
	f := &Feed{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// WriteStatus queues update for the reader.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || !f.recording {
		return nil
	}
	f.queue = append(f.queue, update)
	f.cond.Signal()
	return nil
}

// Open starts queueing updates for a reader.
func (f *Feed) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recording = true
}

// Pause stops queueing updates and drops the ones not read yet.
func (f *Feed) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recording = false
	clear(f.queue)
	f.queue = f.queue[:0]
}

// Read blocks until an update is available. It returns io.EOF once the feed
// is closed and drained.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.queue) == 0 && !f.closed {
		f.cond.Wait()
	}
	if len(f.queue) == 0 {
		return nil, io.EOF
	}

	update := f.queue[0]
	f.queue[0] = nil
	f.queue = f.queue[1:]
	return update, nil
}

// Close wakes every reader. It is safe to call more than once.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.cond.Broadcast()
	return nil
}
