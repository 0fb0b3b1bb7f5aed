package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LevaniIlashvili/Bankist/handlers"
	"github.com/LevaniIlashvili/Bankist/middleware"
	"github.com/LevaniIlashvili/Bankist/models"
	"github.com/LevaniIlashvili/Bankist/routes"
	"github.com/LevaniIlashvili/Bankist/services"
	"github.com/gin-gonic/gin"
)

// newTestRouter wires the API exactly as main does, minus rate limiting and
// CORS, with a fast loan approval delay.
func newTestRouter(loanDelay time.Duration) (*gin.Engine, *services.AccountStore) {
	gin.SetMode(gin.TestMode)

	store := services.NewAccountStore(services.DemoAccounts())
	ws := handlers.NewWSHandler()
	sessions := services.NewSessionManager(store, ws, 300, time.Second)
	ledger := services.NewLedgerService(store)
	loans := services.NewLoanScheduler(store, ws, loanDelay)
	sessions.SetOnSessionEnd(loans.CancelFor)

	router := gin.New()
	v1 := router.Group("/api/v1")
	routes.SetupAuthRoutes(v1, store, ledger, sessions)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	routes.SetupAccountRoutes(protected, store, ledger, loans, sessions)
	return router, store
}

// doJSON sends one JSON request and asserts the status code.
func doJSON(t *testing.T, router http.Handler, method, path, token string, body any, wantCode int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != wantCode {
		t.Fatalf("%s %s code=%d want=%d body=%s", method, path, w.Code, wantCode, w.Body.String())
	}
	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func login(t *testing.T, router http.Handler, username string, pin int) (string, models.AccountView) {
	t.Helper()
	var resp models.LoginResponse
	doJSON(t, router, "POST", "/api/v1/auth/login", "",
		map[string]any{"username": username, "pin": pin}, http.StatusOK, &resp)
	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return resp.Token, resp.Account
}

func TestLoginFlow(t *testing.T) {
	router, _ := newTestRouter(time.Millisecond)

	_, account := login(t, router, "jd", 2222)
	if account.Balance != 11720 {
		t.Fatalf("balance=%v want=11720", account.Balance)
	}
	if account.Owner != "Jessica Davis" {
		t.Fatalf("owner=%q want Jessica Davis", account.Owner)
	}
	if len(account.Movements) != 8 {
		t.Fatalf("movements=%d want=8", len(account.Movements))
	}
	if account.FormattedBalance == "" {
		t.Fatal("missing formatted balance")
	}
}

func TestLoginRejections(t *testing.T) {
	router, _ := newTestRouter(time.Millisecond)

	doJSON(t, router, "POST", "/api/v1/auth/login", "",
		map[string]any{"username": "jd", "pin": 1111}, http.StatusUnauthorized, nil)
	doJSON(t, router, "POST", "/api/v1/auth/login", "",
		map[string]any{"username": "nobody", "pin": 2222}, http.StatusUnauthorized, nil)

	// A non-numeric pin is a binding error, never coerced to a number.
	doJSON(t, router, "POST", "/api/v1/auth/login", "",
		map[string]any{"username": "jd", "pin": "2222"}, http.StatusBadRequest, nil)
	// Missing pin likewise.
	doJSON(t, router, "POST", "/api/v1/auth/login", "",
		map[string]any{"username": "jd"}, http.StatusBadRequest, nil)
}

func TestAccountRequiresSession(t *testing.T) {
	router, _ := newTestRouter(time.Millisecond)

	doJSON(t, router, "GET", "/api/v1/account", "", nil, http.StatusUnauthorized, nil)
	doJSON(t, router, "GET", "/api/v1/account", "garbage-token", nil, http.StatusUnauthorized, nil)

	// A token from a superseded session is refused even though it verifies.
	jdToken, _ := login(t, router, "jd", 2222)
	login(t, router, "li", 1111)
	doJSON(t, router, "GET", "/api/v1/account", jdToken, nil, http.StatusUnauthorized, nil)
}

func TestTransferEndpoint(t *testing.T) {
	router, store := newTestRouter(time.Millisecond)
	token, _ := login(t, router, "jd", 2222)

	var view models.AccountView
	doJSON(t, router, "POST", "/api/v1/account/transfers", token,
		models.TransferRequest{To: "li", Amount: 720}, http.StatusOK, &view)
	if view.Balance != 11000 {
		t.Fatalf("balance=%v want=11000", view.Balance)
	}

	recipient, _ := store.FindByUsername("li")
	if got := recipient.Movements[len(recipient.Movements)-1]; got != 720 {
		t.Fatalf("recipient leg=%v want=720", got)
	}

	doJSON(t, router, "POST", "/api/v1/account/transfers", token,
		models.TransferRequest{To: "jd", Amount: 10}, http.StatusBadRequest, nil)
	doJSON(t, router, "POST", "/api/v1/account/transfers", token,
		models.TransferRequest{To: "nobody", Amount: 10}, http.StatusNotFound, nil)
	doJSON(t, router, "POST", "/api/v1/account/transfers", token,
		models.TransferRequest{To: "li", Amount: 999999}, http.StatusUnprocessableEntity, nil)
}

func TestTransferAfterSenderRemoved(t *testing.T) {
	router, store := newTestRouter(time.Millisecond)
	token, _ := login(t, router, "jd", 2222)

	// The account disappears while the session is still nominally alive; the
	// race must read as a missing account, not a server fault.
	if err := store.RemoveByUsername("jd"); err != nil {
		t.Fatal(err)
	}
	doJSON(t, router, "POST", "/api/v1/account/transfers", token,
		models.TransferRequest{To: "li", Amount: 10}, http.StatusNotFound, nil)
}

func TestLoanEndpoint(t *testing.T) {
	router, store := newTestRouter(2 * time.Millisecond)
	token, _ := login(t, router, "jd", 2222)

	var resp models.LoanResponse
	doJSON(t, router, "POST", "/api/v1/account/loans", token,
		models.LoanRequest{Amount: 1000}, http.StatusAccepted, &resp)
	if resp.Status != "pending" || resp.ApprovalID == "" {
		t.Fatalf("unexpected loan response: %+v", resp)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		acc, _ := store.FindByUsername("jd")
		if len(acc.Movements) == 9 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("loan never applied")
		}
		time.Sleep(time.Millisecond)
	}

	doJSON(t, router, "POST", "/api/v1/account/loans", token,
		models.LoanRequest{Amount: 1000000}, http.StatusUnprocessableEntity, nil)
}

func TestSortEndpoint(t *testing.T) {
	router, _ := newTestRouter(time.Millisecond)
	token, _ := login(t, router, "jd", 2222)

	var resp struct {
		Sorted    bool                 `json:"sorted"`
		Movements []models.MovementRow `json:"movements"`
	}
	doJSON(t, router, "POST", "/api/v1/account/sort", token, nil, http.StatusOK, &resp)
	if !resp.Sorted {
		t.Fatal("first toggle should report sorted=true")
	}
	for i := 1; i < len(resp.Movements); i++ {
		if resp.Movements[i].Amount < resp.Movements[i-1].Amount {
			t.Fatal("sorted movements not in ascending order")
		}
	}

	doJSON(t, router, "POST", "/api/v1/account/sort", token, nil, http.StatusOK, &resp)
	if resp.Sorted {
		t.Fatal("second toggle should report sorted=false")
	}
	if resp.Movements[0].Amount != 5000 {
		t.Fatal("second toggle should restore chronological order")
	}
}

func TestCloseAccountEndpoint(t *testing.T) {
	router, store := newTestRouter(time.Millisecond)
	token, _ := login(t, router, "jd", 2222)

	doJSON(t, router, "POST", "/api/v1/account/close", token,
		map[string]any{"username": "jd", "pin": 9999}, http.StatusUnauthorized, nil)
	if _, ok := store.FindByUsername("jd"); !ok {
		t.Fatal("failed close removed the account")
	}

	doJSON(t, router, "POST", "/api/v1/account/close", token,
		map[string]any{"username": "jd", "pin": 2222}, http.StatusOK, nil)
	if _, ok := store.FindByUsername("jd"); ok {
		t.Fatal("account still present after close")
	}

	// The session is gone: the old token no longer opens anything.
	doJSON(t, router, "GET", "/api/v1/account", token, nil, http.StatusUnauthorized, nil)
	// And the closed account cannot log back in.
	doJSON(t, router, "POST", "/api/v1/auth/login", "",
		map[string]any{"username": "jd", "pin": 2222}, http.StatusUnauthorized, nil)
}

func TestLogoutEndpoint(t *testing.T) {
	router, _ := newTestRouter(time.Millisecond)
	token, _ := login(t, router, "jd", 2222)

	doJSON(t, router, "POST", "/api/v1/auth/logout", token, nil, http.StatusOK, nil)
	doJSON(t, router, "GET", "/api/v1/account", token, nil, http.StatusUnauthorized, nil)
}
