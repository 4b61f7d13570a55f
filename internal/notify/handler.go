package notify

import (
	"net/http"
	"time"

	"disaster-response/internal/models"
	"disaster-response/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// upgrader is used to upgrade HTTP connections to WebSocket connections.
var upgrader = websocket.Upgrader{}

// Handler bridges websocket sessions onto the hub.
type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

func NewHandler(hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// roomsForRole maps the caller's role onto the rooms it may join.
func roomsForRole(role string) []string {
	switch role {
	case models.RoleAdmin:
		return []string{RoomAdmin}
	case models.RoleVolunteer:
		return []string{RoomVolunteer}
	default:
		return nil
	}
}

// Subscribe handles GET /ws/notifications: it upgrades the connection and
// streams events for the caller's role until the client disconnects.
func (h *Handler) Subscribe(c echo.Context) error {
	_, username, role, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	rooms := roomsForRole(role)
	if len(rooms) == 0 {
		return utils.RespondWithError(c, http.StatusForbidden, "no notification channel for this role")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	sub := h.hub.Subscribe(rooms...)
	defer h.hub.Unsubscribe(sub)

	h.logger.Info("notification session opened",
		zap.String("username", username), zap.String("role", role))

	// Writer: forward hub events until the subscription closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.C() {
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Reader: we never expect client messages, but reading is how we learn
	// about disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.hub.Unsubscribe(sub)
	<-done

	h.logger.Info("notification session closed", zap.String("username", username))
	return nil
}
