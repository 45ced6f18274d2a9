package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"time"
)

// LogRecorder writes audit events as JSON lines to a *log.Logger. Downstream
// log shipping turns these into the compliance trail.
type LogRecorder struct {
	l *log.Logger
}

func NewLogRecorder(l *log.Logger) *LogRecorder {
	if l == nil {
		l = log.New(os.Stdout, "", 0)
	}
	return &LogRecorder{l: l}
}

func (r *LogRecorder) LogEvent(ctx context.Context, e Event) error {
	if strings.TrimSpace(string(e.Type)) == "" {
		return errors.New("audit: event type is required")
	}
	if e.Title == "" {
		e.Title = TitleFor(e.Type)
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	entry := map[string]any{
		"ts":   e.OccurredAt.Format(time.RFC3339Nano),
		"type": "audit",
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		entry[k] = v
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	r.l.Println(string(data))
	return nil
}
