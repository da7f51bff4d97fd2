package routes

import (
	"hostelhub/internal/controllers"

	"github.com/gin-gonic/gin"
)

// WebSocketRoutes carries the live notification feed; auth happens via
// the ?token= query parameter inside the handler since browsers cannot
// set headers on websocket upgrades.
func WebSocketRoutes(r *gin.Engine) {
	ws := r.Group("/ws")
	{
		ws.GET("/notifications", controllers.HandleNotificationWebSocket)
	}
}
