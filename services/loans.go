package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// LoanScheduler models the bank's asynchronous loan approval. A valid
// request is parked as a pending approval and applied to the ledger after a
// fixed delay. Sequential requests each carry their own timer, so approvals
// land independently, not serialized behind each other.
type LoanScheduler struct {
	mu       sync.Mutex
	store    *AccountStore
	notifier Notifier
	delay    time.Duration
	now      func() time.Time
	pending  map[uuid.UUID]*pendingLoan
}

type pendingLoan struct {
	username string
	amount   float64
	timer    *time.Timer
}

func NewLoanScheduler(store *AccountStore, notifier Notifier, delay time.Duration) *LoanScheduler {
	return &LoanScheduler{
		store:    store,
		notifier: notifier,
		delay:    delay,
		now:      time.Now,
		pending:  make(map[uuid.UUID]*pendingLoan),
	}
}

// Request validates a loan and schedules its approval. The requested amount
// is truncated toward zero first; the bank then requires at least one
// existing movement worth >= 10% of it. Nothing is booked until the delay
// elapses.
func (s *LoanScheduler) Request(username string, amount float64) (uuid.UUID, error) {
	amount = floorAmount(amount)
	if amount <= 0 {
		return uuid.Nil, ErrInvalidAmount
	}
	acc, ok := s.store.FindByUsername(username)
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	if !hasCollateral(acc.Movements, amount) {
		return uuid.Nil, ErrInsufficientCollateral
	}

	id := uuid.New()
	s.mu.Lock()
	p := &pendingLoan{username: username, amount: amount}
	p.timer = time.AfterFunc(s.delay, func() { s.apply(id) })
	s.pending[id] = p
	s.mu.Unlock()
	return id, nil
}

// CancelFor drops every pending approval belonging to username. Called when
// the session ends or the account is closed; an approval must never land in
// an account nobody is logged into.
func (s *LoanScheduler) CancelFor(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.pending {
		if p.username == username {
			p.timer.Stop()
			delete(s.pending, id)
		}
	}
}

// PendingFor counts the approvals still waiting for username.
func (s *LoanScheduler) PendingFor(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.pending {
		if p.username == username {
			n++
		}
	}
	return n
}

func (s *LoanScheduler) apply(id uuid.UUID) {
	s.mu.Lock()
	p, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if !ok {
		// cancelled between firing and locking
		return
	}
	if err := s.store.AppendMovement(p.username, p.amount, s.now()); err != nil {
		// account closed while the approval was pending
		return
	}
	s.notifier.SessionUpdate()
}
