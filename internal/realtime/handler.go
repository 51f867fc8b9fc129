package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gigflow/internal/logger"
	"gigflow/internal/pkg/jwt"
	"gigflow/internal/pkg/response"
)

// Handler upgrades authenticated requests to websocket sessions.
type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint. allowedOrigins empty means any
// origin is accepted.
func NewHandler(hub *Hub, jwtService *jwt.Service, allowedOrigins []string) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Handler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowed) == 0 || origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// HandleWebSocket
//
// Endpoint: GET /ws?token=JWT_TOKEN
//
// Browsers cannot set headers on websocket requests, so the token travels in
// the query string.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.hub.ServeWS(conn, claims.UserID)
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws", h.HandleWebSocket)
}
