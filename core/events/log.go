package events

import "sync"

// Log is an append-only, replayable record of emitted events. A consumer
// that replays the log in order can reconstruct every state change the
// engine applied, which is sufficient to drive any rendering.
type Log struct {
	mu     sync.RWMutex
	events []Event
}

func NewLog() *Log {
	return &Log{}
}

// Append records an event. Events are never removed or reordered.
func (l *Log) Append(event Event) {
	if l == nil || event == nil {
		return
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
}

// Replay is an iterator over a point-in-time snapshot of the log, earliest
// first. Events appended during iteration are not yielded.
func (l *Log) Replay(yield func(Event) bool) {
	if l == nil {
		return
	}

	l.mu.RLock()
	snapshot := make([]Event, len(l.events))
	copy(snapshot, l.events)
	l.mu.RUnlock()

	for _, event := range snapshot {
		if !yield(event) {
			return
		}
	}
}

// Len reports the number of recorded events.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
