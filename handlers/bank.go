package handlers

import (
	"errors"
	"net/http"

	"github.com/LevaniIlashvili/Bankist/middleware"
	"github.com/LevaniIlashvili/Bankist/models"
	"github.com/LevaniIlashvili/Bankist/services"
	"github.com/LevaniIlashvili/Bankist/utils"
	"github.com/gin-gonic/gin"
)

type BankHandler struct {
	Store    *services.AccountStore
	Ledger   *services.LedgerService
	Loans    *services.LoanScheduler
	Sessions *services.SessionManager
}

func NewBankHandler(store *services.AccountStore, ledger *services.LedgerService, loans *services.LoanScheduler, sessions *services.SessionManager) *BankHandler {
	return &BankHandler{Store: store, Ledger: ledger, Loans: loans, Sessions: sessions}
}

// currentUser checks that the token's username still owns the active
// session. A valid token from a superseded or timed-out session is refused.
func (h *BankHandler) currentUser(c *gin.Context) (string, bool) {
	username := middleware.GetUsername(c)
	active, ok := h.Sessions.Current()
	if !ok || active != username {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		return "", false
	}
	return username, true
}

func (h *BankHandler) accountView(c *gin.Context, username string) (models.AccountView, bool) {
	acc, ok := h.Store.FindByUsername(username)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return models.AccountView{}, false
	}
	view, err := buildAccountView(h.Ledger, h.Sessions, acc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return models.AccountView{}, false
	}
	return view, true
}

// GetAccount returns the full account view for the logged-in user.
func (h *BankHandler) GetAccount(c *gin.Context) {
	username, ok := h.currentUser(c)
	if !ok {
		return
	}
	view, ok := h.accountView(c, username)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

// Transfer moves money to another account and extends the session.
func (h *BankHandler) Transfer(c *gin.Context) {
	username, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ledger.Transfer(username, req.To, req.Amount); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrSelfTransfer):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrRecipientNotFound), errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Transfer failed"})
		}
		return
	}

	utils.SafeInfof("💸 %s transferred %s to %s", username, utils.MaskAmount(req.Amount), req.To)
	h.Sessions.Touch()

	view, ok := h.accountView(c, username)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

// RequestLoan schedules a delayed loan approval and extends the session.
// The movement appears only after the approval delay elapses; the websocket
// pushes an update signal when it does.
func (h *BankHandler) RequestLoan(c *gin.Context) {
	username, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req models.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Loans.Request(username, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInsufficientCollateral):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Loan request failed"})
		}
		return
	}

	utils.SafeInfof("🏦 %s requested a loan of %s", username, utils.MaskAmount(req.Amount))
	h.Sessions.Touch()
	c.JSON(http.StatusAccepted, models.LoanResponse{ApprovalID: id.String(), Status: "pending"})
}

// CloseAccount removes the account after the user re-confirms credentials,
// then ends the session.
func (h *BankHandler) CloseAccount(c *gin.Context) {
	username, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req models.CloseAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ledger.CloseAccount(username, req.Username, *req.Pin); err != nil {
		switch {
		case errors.Is(err, services.ErrAuth):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close account"})
		}
		return
	}

	utils.SafeInfof("🗑️ Account %s closed", username)
	h.Sessions.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Account closed"})
}

// ToggleSort flips the session's sort toggle and returns the re-ordered
// movement rows.
func (h *BankHandler) ToggleSort(c *gin.Context) {
	username, ok := h.currentUser(c)
	if !ok {
		return
	}

	sorted, err := h.Sessions.ToggleSort()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		return
	}

	view, ok := h.accountView(c, username)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"sorted": sorted, "movements": view.Movements})
}
