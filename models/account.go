package models

import "time"

// ============================================================================
// ACCOUNT MODEL
// ============================================================================

// Account is a single demo bank account. Movements and MovementsDates are
// parallel slices: entry i of Movements was booked at entry i of
// MovementsDates. Positive movements are deposits, negative are withdrawals.
type Account struct {
	Owner          string      `json:"owner"`
	Username       string      `json:"username"` // derived from Owner initials
	Pin            int         `json:"-"`        // Never expose in JSON
	Movements      []float64   `json:"movements"`
	MovementsDates []time.Time `json:"movements_dates"`
	InterestRate   float64     `json:"interest_rate"`
	Currency       string      `json:"currency"`
	Locale         string      `json:"locale"`
}

// Movement pairs one booked amount with its timestamp.
type Movement struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// Summary holds the three footer totals of the account view.
type Summary struct {
	Income   float64 `json:"income"`
	Outgoing float64 `json:"outgoing"` // reported negative
	Interest float64 `json:"interest"`
}

// ============================================================================
// AUTHENTICATION REQUESTS
// ============================================================================

// Pin is a pointer so that a missing or non-numeric value fails binding
// instead of silently becoming 0.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Pin      *int   `json:"pin" binding:"required"`
}

type LoginResponse struct {
	Token   string      `json:"token"`
	Account AccountView `json:"account"`
}

type CloseAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Pin      *int   `json:"pin" binding:"required"`
}

// ============================================================================
// LEDGER REQUESTS
// ============================================================================

type TransferRequest struct {
	To     string  `json:"to" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

type LoanRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

type LoanResponse struct {
	ApprovalID string `json:"approval_id"`
	Status     string `json:"status"`
}

// ============================================================================
// ACCOUNT VIEW (display projection)
// ============================================================================

// MovementRow is one rendered line of the movements list. Raw values travel
// next to their formatted counterparts so the UI can re-sort without
// re-parsing strings.
type MovementRow struct {
	Type            string    `json:"type"` // "deposit" or "withdrawal"
	Amount          float64   `json:"amount"`
	FormattedAmount string    `json:"formatted_amount"`
	Date            time.Time `json:"date"`
	DisplayDate     string    `json:"display_date"`
}

type AccountView struct {
	Owner             string        `json:"owner"`
	Username          string        `json:"username"`
	Balance           float64       `json:"balance"`
	FormattedBalance  string        `json:"formatted_balance"`
	Summary           Summary       `json:"summary"`
	FormattedIncome   string        `json:"formatted_income"`
	FormattedOutgoing string        `json:"formatted_outgoing"`
	FormattedInterest string        `json:"formatted_interest"`
	Movements         []MovementRow `json:"movements"`
	Sorted            bool          `json:"sorted"`
	Currency          string        `json:"currency"`
	Locale            string        `json:"locale"`
}
