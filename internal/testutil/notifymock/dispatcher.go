package notifymock

import (
	"context"
	"sync"

	"loanflow-backend/internal/notify"
)

// Dispatcher records every attempted send; set Err to make all sends fail.
type Dispatcher struct {
	mu sync.Mutex

	StageReviews   []notify.StageReviewMessage
	TermSheetReady []notify.TermSheetMessage
	OffersApproved []notify.OfferApprovedMessage
	Err            error
}

var _ notify.Dispatcher = (*Dispatcher)(nil)

func (m *Dispatcher) SendStageReview(ctx context.Context, msg notify.StageReviewMessage) (notify.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StageReviews = append(m.StageReviews, msg)
	if m.Err != nil {
		return notify.Result{}, m.Err
	}
	return notify.Result{Sent: true, MessageID: "msg-stage-review"}, nil
}

func (m *Dispatcher) SendTermSheetReady(ctx context.Context, msg notify.TermSheetMessage) (notify.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TermSheetReady = append(m.TermSheetReady, msg)
	if m.Err != nil {
		return notify.Result{}, m.Err
	}
	return notify.Result{Sent: true, MessageID: "msg-term-sheet"}, nil
}

func (m *Dispatcher) SendOfferApproved(ctx context.Context, msg notify.OfferApprovedMessage) (notify.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OffersApproved = append(m.OffersApproved, msg)
	if m.Err != nil {
		return notify.Result{}, m.Err
	}
	return notify.Result{Sent: true, MessageID: "msg-offer"}, nil
}

func (m *Dispatcher) Sends() (int, int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StageReviews), len(m.TermSheetReady), len(m.OffersApproved)
}
