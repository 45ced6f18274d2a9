package notify

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"loanflow-backend/pkg/id"
)

// LogDispatcher stands in for the real email channel: it logs each message
// and hands back a generated message id. Useful for local runs and as the
// wiring default until an SMTP/provider dispatcher is configured.
type LogDispatcher struct {
	l *log.Logger
}

func NewLogDispatcher(l *log.Logger) *LogDispatcher {
	if l == nil {
		l = log.New(os.Stdout, "", log.LstdFlags)
	}
	return &LogDispatcher{l: l}
}

func (d *LogDispatcher) send(kind, recipient string) (Result, error) {
	if strings.TrimSpace(recipient) == "" {
		return Result{}, errors.New("notify: recipient is required")
	}
	msgID := id.NewID32()
	d.l.Printf("notify: %s -> %s (message_id=%s)", kind, recipient, msgID)
	return Result{Sent: true, MessageID: msgID}, nil
}

func (d *LogDispatcher) SendStageReview(ctx context.Context, m StageReviewMessage) (Result, error) {
	return d.send("stage_review:"+m.Stage, m.Recipient)
}

func (d *LogDispatcher) SendTermSheetReady(ctx context.Context, m TermSheetMessage) (Result, error) {
	return d.send("term_sheet_ready", m.Recipient)
}

func (d *LogDispatcher) SendOfferApproved(ctx context.Context, m OfferApprovedMessage) (Result, error) {
	return d.send("offer_approved", m.Recipient)
}
