package handlers

import (
	"net/http"

	"github.com/LevaniIlashvili/Bankist/models"
	"github.com/LevaniIlashvili/Bankist/services"
	"github.com/LevaniIlashvili/Bankist/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Sessions *services.SessionManager
	Ledger   *services.LedgerService
	Store    *services.AccountStore
}

// Login authenticates with username + pin. A wrong username and a wrong pin
// are deliberately indistinguishable in the response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := h.Sessions.Login(req.Username, *req.Pin)
	if err != nil {
		utils.SafeInfof("🔒 Failed login attempt for %q", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateAccessToken(acc.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	view, err := buildAccountView(h.Ledger, h.Sessions, acc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}

	utils.SafeInfof("👋 %s logged in", acc.Owner)
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, Account: view})
}

// Logout ends the current session; the countdown stops and pending loan
// approvals are dropped.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
