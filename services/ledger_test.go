package services

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newLedger(t *testing.T) (*LedgerService, *AccountStore) {
	t.Helper()
	store := NewAccountStore(DemoAccounts())
	return NewLedgerService(store), store
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestBalance(t *testing.T) {
	ledger, _ := newLedger(t)

	// 5000+3400-150-790-3210-1000+8500-30
	bal, err := ledger.Balance("jd")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(bal, 11720) {
		t.Fatalf("balance=%v want=11720", bal)
	}

	if _, err := ledger.Balance("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	ledger, _ := newLedger(t)

	// account li: [200, 455.23, -306.5, 25000, -642.21, -133.9, 79.97, 1300], rate 1.2
	sm, err := ledger.Summary("li")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(sm.Income, 27035.2) {
		t.Fatalf("income=%v want=27035.2", sm.Income)
	}
	if !approx(sm.Outgoing, -1082.61) {
		t.Fatalf("outgoing=%v want=-1082.61", sm.Outgoing)
	}
	// 79.97*1.2/100 = 0.95964 is below the 1-unit threshold and dropped;
	// kept: 2.4 + 5.46276 + 300 + 15.6
	if !approx(sm.Interest, 323.46276) {
		t.Fatalf("interest=%v want=323.46276", sm.Interest)
	}
}

func TestTransferValidation(t *testing.T) {
	tests := []struct {
		name    string
		to      string
		amount  float64
		wantErr error
	}{
		{"zero amount", "li", 0, ErrInvalidAmount},
		{"negative amount", "li", -50, ErrInvalidAmount},
		{"unknown recipient", "nobody", 100, ErrRecipientNotFound},
		{"self transfer", "jd", 100, ErrSelfTransfer},
		{"just over balance", "li", 11720.01, ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, store := newLedger(t)
			if err := ledger.Transfer("jd", tt.to, tt.amount); !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}

			// No mutation on any rejection.
			from, _ := store.FindByUsername("jd")
			if len(from.Movements) != 8 || len(from.MovementsDates) != 8 {
				t.Fatal("rejected transfer mutated the sender")
			}
			if to, ok := store.FindByUsername(tt.to); ok && tt.to != "jd" {
				if len(to.Movements) != 8 {
					t.Fatal("rejected transfer mutated the recipient")
				}
			}
		})
	}
}

func TestTransferSuccess(t *testing.T) {
	ledger, store := newLedger(t)
	at := time.Date(2023, 2, 1, 12, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time { return at }

	if err := ledger.Transfer("jd", "li", 500); err != nil {
		t.Fatal(err)
	}

	from, _ := store.FindByUsername("jd")
	to, _ := store.FindByUsername("li")

	if got := from.Movements[len(from.Movements)-1]; got != -500 {
		t.Fatalf("sender leg=%v want=-500", got)
	}
	if got := to.Movements[len(to.Movements)-1]; got != 500 {
		t.Fatalf("recipient leg=%v want=500", got)
	}
	if !from.MovementsDates[len(from.MovementsDates)-1].Equal(at) {
		t.Fatal("sender leg not stamped with transfer time")
	}
	if len(from.Movements) != len(from.MovementsDates) || len(to.Movements) != len(to.MovementsDates) {
		t.Fatal("movements/dates out of sync after transfer")
	}

	bal, _ := ledger.Balance("jd")
	if !approx(bal, 11220) {
		t.Fatalf("balance after transfer=%v want=11220", bal)
	}
}

func TestTransferExactBalance(t *testing.T) {
	ledger, _ := newLedger(t)
	if err := ledger.Transfer("jd", "li", 11720); err != nil {
		t.Fatalf("transfer of exactly the balance should succeed, got %v", err)
	}
	bal, _ := ledger.Balance("jd")
	if !approx(bal, 0) {
		t.Fatalf("balance=%v want=0", bal)
	}
}

func TestMovementsSortToggle(t *testing.T) {
	ledger, store := newLedger(t)

	chrono, err := ledger.Movements("jd", false)
	if err != nil {
		t.Fatal(err)
	}
	if chrono[0].Amount != 5000 || chrono[7].Amount != -30 {
		t.Fatalf("unsorted order not chronological: %v ... %v", chrono[0].Amount, chrono[7].Amount)
	}

	sorted, err := ledger.Movements("jd", true)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Amount < sorted[i-1].Amount {
			t.Fatalf("sorted output not non-decreasing at %d: %v", i, sorted)
		}
	}

	// A sorted row keeps the date it was booked with.
	acc, _ := store.FindByUsername("jd")
	for _, mov := range sorted {
		if mov.Amount == 8500 && !mov.Date.Equal(acc.MovementsDates[6]) {
			t.Fatal("sorting detached a movement from its date")
		}
	}

	// Asking unsorted again returns the original order.
	again, _ := ledger.Movements("jd", false)
	for i := range chrono {
		if again[i].Amount != chrono[i].Amount {
			t.Fatal("unsorted order changed after a sorted read")
		}
	}
}

func TestCloseAccount(t *testing.T) {
	ledger, store := newLedger(t)

	if err := ledger.CloseAccount("jd", "jd", 9999); !errors.Is(err, ErrAuth) {
		t.Fatalf("wrong pin: want ErrAuth, got %v", err)
	}
	if err := ledger.CloseAccount("jd", "li", 2222); !errors.Is(err, ErrAuth) {
		t.Fatalf("wrong username: want ErrAuth, got %v", err)
	}
	if _, ok := store.FindByUsername("jd"); !ok {
		t.Fatal("failed close attempts must not remove the account")
	}

	if err := ledger.CloseAccount("jd", "jd", 2222); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.FindByUsername("jd"); ok {
		t.Fatal("account still present after close")
	}
	if err := ledger.CloseAccount("jd", "jd", 2222); !errors.Is(err, ErrNotFound) {
		t.Fatalf("closing twice: want ErrNotFound, got %v", err)
	}
}
