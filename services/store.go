package services

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/LevaniIlashvili/Bankist/models"
)

// AccountStore is the in-memory collection of demo accounts. A single mutex
// serializes every read and write so that cross-account operations
// (transfers) complete atomically. Callers only ever receive copies, never
// interior pointers.
type AccountStore struct {
	mu       sync.Mutex
	accounts []*models.Account
}

// NewAccountStore seeds the store and derives usernames before any lookup
// can happen.
func NewAccountStore(seed []*models.Account) *AccountStore {
	s := &AccountStore{accounts: seed}
	s.DeriveUsernames()
	return s
}

// DeriveUsernames sets every account's username to the lowercased initials
// of its owner name ("Jessica Davis" -> "jd"). Idempotent: re-running
// produces the same usernames.
func (s *AccountStore) DeriveUsernames() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		acc.Username = deriveUsername(acc.Owner)
	}
}

func deriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(owner) {
		first, _ := utf8.DecodeRuneInString(word)
		b.WriteString(strings.ToLower(string(first)))
	}
	return b.String()
}

// FindByUsername returns a deep copy of the matching account. The match is
// case-sensitive and exact.
func (s *AccountStore) FindByUsername(username string) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.find(username)
	if acc == nil {
		return models.Account{}, false
	}
	return copyAccount(acc), true
}

// RemoveByUsername deletes the matching account, preserving the order of the
// rest. Returns ErrNotFound if no account matches.
func (s *AccountStore) RemoveByUsername(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, acc := range s.accounts {
		if acc.Username == username {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AppendMovement books one signed amount with its timestamp, keeping the
// movements/dates slices aligned.
func (s *AccountStore) AppendMovement(username string, amount float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.find(username)
	if acc == nil {
		return ErrNotFound
	}
	acc.Movements = append(acc.Movements, amount)
	acc.MovementsDates = append(acc.MovementsDates, at)
	return nil
}

// Len reports how many accounts are currently in the store.
func (s *AccountStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// find must be called with s.mu held.
func (s *AccountStore) find(username string) *models.Account {
	for _, acc := range s.accounts {
		if acc.Username == username {
			return acc
		}
	}
	return nil
}

func copyAccount(acc *models.Account) models.Account {
	cp := *acc
	cp.Movements = append([]float64(nil), acc.Movements...)
	cp.MovementsDates = append([]time.Time(nil), acc.MovementsDates...)
	return cp
}
