package routes

import (
	"hostelhub/internal/controllers"
	"hostelhub/internal/middleware"
	"hostelhub/internal/models"

	"github.com/gin-gonic/gin"
)

// StudentRoutes is the student self-service surface.
func StudentRoutes(r *gin.Engine) {
	student := r.Group("/student")
	student.Use(middleware.RequireAuthWithRole(models.RoleStudent))
	{
		student.GET("/profile", controllers.GetMyProfile)
		student.GET("/announcements", controllers.ListMyAnnouncements)
		student.GET("/events", controllers.ListMyEvents)
		student.GET("/mealplans", controllers.ListMyMealPlans)

		student.POST("/reports", controllers.CreateReport)
		student.GET("/reports", controllers.ListMyReports)
		student.POST("/reports/:id/replies", controllers.ReplyToReport)

		student.GET("/notifications", controllers.ListNotifications)
		student.PATCH("/notifications/:id/read", controllers.MarkNotificationRead)
	}
}
