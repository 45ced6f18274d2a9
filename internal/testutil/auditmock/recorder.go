package auditmock

import (
	"context"
	"sync"

	"loanflow-backend/internal/audit"
)

// Recorder captures every logged event; set Err to simulate a sink outage.
type Recorder struct {
	mu     sync.Mutex
	Events []audit.Event
	Err    error
}

var _ audit.Recorder = (*Recorder)(nil)

func (m *Recorder) LogEvent(ctx context.Context, e audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, e)
	return nil
}

func (m *Recorder) Logged() []audit.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]audit.Event, len(m.Events))
	copy(out, m.Events)
	return out
}
