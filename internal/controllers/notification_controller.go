package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/guard"
	"hostelhub/internal/middleware"
	"hostelhub/internal/models"
	"hostelhub/internal/query"
	"hostelhub/internal/response"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// NotificationHub manages active WebSocket connections per hostel and
// pushes newly created notifications to them. A notification without a
// hostel id fans out to every connected client.
type NotificationHub struct {
	hostelClients map[uint]map[*websocket.Conn]bool
	broadcast     chan models.Notification
	mu            sync.Mutex
}

// NewNotificationHub creates a hub and starts its broadcast loop.
func NewNotificationHub() *NotificationHub {
	hub := &NotificationHub{
		hostelClients: make(map[uint]map[*websocket.Conn]bool),
		broadcast:     make(chan models.Notification, 100),
	}
	go hub.run()
	return hub
}

func (h *NotificationHub) run() {
	for n := range h.broadcast {
		h.mu.Lock()
		targets := make([]*websocket.Conn, 0)
		if n.HostelID == nil {
			for _, clients := range h.hostelClients {
				for conn := range clients {
					targets = append(targets, conn)
				}
			}
		} else if clients, ok := h.hostelClients[*n.HostelID]; ok {
			for conn := range clients {
				targets = append(targets, conn)
			}
		}
		h.mu.Unlock()

		for _, conn := range targets {
			if err := conn.WriteJSON(n); err != nil {
				if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
					h.unregisterAll(conn)
				} else {
					logrus.WithError(err).Warn("notification hub: failed to push to client")
				}
			}
		}
	}
}

// RegisterClient attaches a connection to a hostel's fan-out set.
func (h *NotificationHub) RegisterClient(hostelID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.hostelClients[hostelID]; !ok {
		h.hostelClients[hostelID] = make(map[*websocket.Conn]bool)
	}
	h.hostelClients[hostelID][conn] = true
	logrus.WithField("hostel_id", hostelID).Info("notification client registered")
}

// UnregisterClient detaches a connection from a hostel's fan-out set.
func (h *NotificationHub) UnregisterClient(hostelID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.hostelClients[hostelID]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.hostelClients, hostelID)
		}
	}
}

func (h *NotificationHub) unregisterAll(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for hostelID, clients := range h.hostelClients {
		if clients[conn] {
			delete(clients, conn)
			if len(clients) == 0 {
				delete(h.hostelClients, hostelID)
			}
		}
	}
}

// Publish queues a notification for fan-out; a full channel drops the
// push (clients still see it on the next list call).
func (h *NotificationHub) Publish(n models.Notification) {
	select {
	case h.broadcast <- n:
	default:
		logrus.Warn("notification broadcast channel full, dropping push")
	}
}

var notificationHub = NewNotificationHub()

// HandleNotificationWebSocket upgrades the connection after validating
// the ?token= query parameter and subscribes the client to its hostel's
// feed.
func HandleNotificationWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		response.Fail(c, http.StatusUnauthorized, "missing authentication token")
		return
	}

	token, err := middleware.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		response.Fail(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "invalid token claims")
		return
	}
	hostelFloat, ok := claims["hostel_id"].(float64)
	if !ok || hostelFloat == 0 {
		response.Fail(c, http.StatusUnauthorized, "token carries no hostel scope")
		return
	}
	hostelID := uint(hostelFloat)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("notification ws: upgrade failed")
		return
	}

	notificationHub.RegisterClient(hostelID, conn)
	defer func() {
		notificationHub.UnregisterClient(hostelID, conn)
		conn.Close()
	}()

	// Drain control frames until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

type notificationInput struct {
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Audience string `json:"audience" binding:"omitempty,oneof=All Students Admins"`
}

// CreateNotification broadcasts to the caller's hostel (admin) or
// system-wide (super admin) and pushes it to connected clients.
func CreateNotification(c *gin.Context) {
	var hostelID *uint
	if ident, ok := guard.Admin(c); ok {
		hostelID = &ident.HostelID
	} else if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	var input notificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid notification payload: "+err.Error())
		return
	}
	if input.Audience == "" {
		input.Audience = "All"
	}

	notification := models.Notification{
		HostelID: hostelID,
		Title:    input.Title,
		Message:  input.Message,
		Audience: input.Audience,
		ReadBy:   []uint{},
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		logrus.WithError(err).Error("create notification: create failed")
		response.Internal(c, "Error creating notification")
		return
	}

	notificationHub.Publish(notification)

	response.Created(c, "notification created", notification)
}

// ListNotifications pages through the caller's hostel feed plus
// system-wide broadcasts, newest first.
func ListNotifications(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		ident, ok = guard.Student(c)
		if !ok {
			response.NotAuthorized(c)
			return
		}
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.Notification{}).
		Where("hostel_id = ? OR hostel_id IS NULL", ident.HostelID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list notifications: count failed")
		response.Internal(c, "Error listing notifications")
		return
	}

	var notifications []models.Notification
	if err := base.Order("created_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Find(&notifications).Error; err != nil {
		logrus.WithError(err).Error("list notifications: query failed")
		response.Internal(c, "Error listing notifications")
		return
	}

	response.Paged(c, notifications, total, query.TotalPages(total, page.PageSize))
}

// MarkNotificationRead appends the caller to the notification's ReadBy
// set; marking twice is a no-op.
func MarkNotificationRead(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		ident, ok = guard.Student(c)
		if !ok {
			response.NotAuthorized(c)
			return
		}
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	var notification models.Notification
	if err := config.DB.Where("id = ? AND (hostel_id = ? OR hostel_id IS NULL)", uint(id), ident.HostelID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "notification not found")
		} else {
			logrus.WithError(err).Error("mark notification read: fetch failed")
			response.Internal(c, "Error updating notification")
		}
		return
	}

	for _, id := range notification.ReadBy {
		if id == ident.AuthID {
			response.OK(c, "notification already read", notification)
			return
		}
	}

	notification.ReadBy = append(notification.ReadBy, ident.AuthID)
	if err := config.DB.Save(&notification).Error; err != nil {
		logrus.WithError(err).Error("mark notification read: save failed")
		response.Internal(c, "Error updating notification")
		return
	}

	response.OK(c, "notification marked read", notification)
}
