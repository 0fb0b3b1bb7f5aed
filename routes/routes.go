package routes

import (
	"github.com/LevaniIlashvili/Bankist/handlers"
	"github.com/LevaniIlashvili/Bankist/services"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the public login route.
func SetupAuthRoutes(rg *gin.RouterGroup, store *services.AccountStore, ledger *services.LedgerService, sessions *services.SessionManager) {
	authHandler := &handlers.AuthHandler{Sessions: sessions, Ledger: ledger, Store: store}

	rg.POST("/auth/login", authHandler.Login)
}

// SetupAccountRoutes sets up the protected session and ledger routes.
func SetupAccountRoutes(rg *gin.RouterGroup, store *services.AccountStore, ledger *services.LedgerService, loans *services.LoanScheduler, sessions *services.SessionManager) {
	authHandler := &handlers.AuthHandler{Sessions: sessions, Ledger: ledger, Store: store}
	h := handlers.NewBankHandler(store, ledger, loans, sessions)

	rg.POST("/auth/logout", authHandler.Logout)

	// Account view and ledger operations
	rg.GET("/account", h.GetAccount)
	rg.POST("/account/transfers", h.Transfer)
	rg.POST("/account/loans", h.RequestLoan)
	rg.POST("/account/close", h.CloseAccount)
	rg.POST("/account/sort", h.ToggleSort)
}
