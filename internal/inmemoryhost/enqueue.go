package inmemoryhost

import "sync"

// Enqueued is one recorded asset enqueue.
type Enqueued struct {
	Handle  string
	URI     string
	Deps    []string
	Version string
	Extra   string
}

// EnqueueLog records enqueue calls in arrival order.
type EnqueueLog struct {
	mu      sync.Mutex
	entries []Enqueued
}

// NewEnqueueLog creates an empty EnqueueLog.
func NewEnqueueLog() *EnqueueLog {
	return &EnqueueLog{}
}

// Enqueue implements host.Enqueuer.
func (l *EnqueueLog) Enqueue(handle, uri string, deps []string, version, placementOrMedia string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Enqueued{
		Handle:  handle,
		URI:     uri,
		Deps:    deps,
		Version: version,
		Extra:   placementOrMedia,
	})
}

// Entries returns a copy of everything enqueued so far.
func (l *EnqueueLog) Entries() []Enqueued {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Enqueued, len(l.entries))
	copy(out, l.entries)
	return out
}
