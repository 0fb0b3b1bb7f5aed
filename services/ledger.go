package services

import (
	"math"
	"sort"
	"time"

	"github.com/LevaniIlashvili/Bankist/models"
)

// LedgerService implements the pure computations over an account's movement
// history (balance, summary totals, interest) and the mutating operations
// (transfer, close). It shares the store's mutex so a transfer validates and
// books both legs in one critical section.
type LedgerService struct {
	store *AccountStore
	now   func() time.Time
}

func NewLedgerService(store *AccountStore) *LedgerService {
	return &LedgerService{store: store, now: time.Now}
}

// Balance is the sum of every movement. Standard float64 semantics, no
// rounding.
func (s *LedgerService) Balance(username string) (float64, error) {
	acc, ok := s.store.FindByUsername(username)
	if !ok {
		return 0, ErrNotFound
	}
	return sum(acc.Movements), nil
}

// Summary computes the three footer totals in one pass over the copy.
func (s *LedgerService) Summary(username string) (models.Summary, error) {
	acc, ok := s.store.FindByUsername(username)
	if !ok {
		return models.Summary{}, ErrNotFound
	}
	var sm models.Summary
	for _, mov := range acc.Movements {
		if mov > 0 {
			sm.Income += mov
		} else {
			sm.Outgoing += mov
		}
		if interest := mov * acc.InterestRate / 100; mov > 0 && interest > 1 {
			// Per-deposit threshold: interest below 1 never counts,
			// no matter how large the total would be.
			sm.Interest += interest
		}
	}
	return sm, nil
}

// Movements returns the account's movement/date pairs, chronological by
// default or ascending by amount when sorted is true. Pairs stay together:
// a sorted row keeps the date it was booked with.
func (s *LedgerService) Movements(username string, sorted bool) ([]models.Movement, error) {
	acc, ok := s.store.FindByUsername(username)
	if !ok {
		return nil, ErrNotFound
	}
	movs := make([]models.Movement, len(acc.Movements))
	for i, mov := range acc.Movements {
		movs[i] = models.Movement{Amount: mov, Date: acc.MovementsDates[i]}
	}
	if sorted {
		sort.SliceStable(movs, func(i, j int) bool { return movs[i].Amount < movs[j].Amount })
	}
	return movs, nil
}

// Transfer books -amount on the sender and +amount on the recipient, both
// stamped with the current time. Validation and both mutations happen inside
// a single critical section; any failure leaves both accounts untouched.
func (s *LedgerService) Transfer(from, to string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	sender := s.store.find(from)
	if sender == nil {
		return ErrNotFound
	}
	receiver := s.store.find(to)
	if receiver == nil {
		return ErrRecipientNotFound
	}
	if sender.Username == receiver.Username {
		return ErrSelfTransfer
	}
	if amount > sum(sender.Movements) {
		return ErrInsufficientFunds
	}

	now := s.now()
	sender.Movements = append(sender.Movements, -amount)
	sender.MovementsDates = append(sender.MovementsDates, now)
	receiver.Movements = append(receiver.Movements, amount)
	receiver.MovementsDates = append(receiver.MovementsDates, now)
	return nil
}

// CloseAccount removes the account after the user re-confirms username and
// pin. The confirmation must match the account being closed, not just any
// account.
func (s *LedgerService) CloseAccount(username, usernameInput string, pinInput int) error {
	acc, ok := s.store.FindByUsername(username)
	if !ok {
		return ErrNotFound
	}
	if usernameInput != acc.Username || pinInput != acc.Pin {
		return ErrAuth
	}
	return s.store.RemoveByUsername(username)
}

// hasCollateral reports whether any existing movement is worth at least 10%
// of the requested loan.
func hasCollateral(movements []float64, amount float64) bool {
	for _, mov := range movements {
		if mov >= amount*0.1 {
			return true
		}
	}
	return false
}

// floorAmount truncates a requested loan toward zero; loans are granted in
// whole units only.
func floorAmount(amount float64) float64 {
	return math.Floor(amount)
}

func sum(movements []float64) float64 {
	var total float64
	for _, mov := range movements {
		total += mov
	}
	return total
}
