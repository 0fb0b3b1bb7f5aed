package services

import "errors"

// Sentinel errors for every way a ledger or session operation can be
// rejected. Handlers map these to HTTP statuses; state is never mutated on
// any of them.
var (
	ErrAuth                   = errors.New("invalid credentials")
	ErrNotFound               = errors.New("account not found")
	ErrNoSession              = errors.New("no active session")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrRecipientNotFound      = errors.New("recipient account not found")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrSelfTransfer           = errors.New("cannot transfer to the same account")
	ErrInsufficientCollateral = errors.New("no movement covers 10% of the requested loan")
)
