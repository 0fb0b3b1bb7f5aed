package handlers

import (
	"log"
	"time"

	"github.com/LevaniIlashvili/Bankist/utils"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSHandler pushes session signals to the browser: the countdown clock once
// a second, an update signal when a delayed loan lands, and the logged-out
// signal when the session ends. It implements services.Notifier.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024

	// Keep-alive so cloud proxies don't drop the idle countdown socket
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		log.Printf("🔌 Display client disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request to a websocket.
func (h *WSHandler) HandleWS(c *gin.Context) {
	if err := h.M.HandleRequest(c.Writer, c.Request); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// SessionTick broadcasts the countdown clock, already formatted as MM:SS.
func (h *WSHandler) SessionTick(remaining int) {
	msg := []byte(`{"type":"tick","clock":"` + utils.FormatCountdown(remaining) + `"}`)
	_ = h.M.Broadcast(msg)
}

// SessionUpdate tells the display to re-fetch the account view.
func (h *WSHandler) SessionUpdate() {
	_ = h.M.Broadcast([]byte(`{"type":"update"}`))
}

// SessionLoggedOut tells the display to dim the UI and show the login
// prompt.
func (h *WSHandler) SessionLoggedOut() {
	_ = h.M.Broadcast([]byte(`{"type":"logged_out"}`))
}
