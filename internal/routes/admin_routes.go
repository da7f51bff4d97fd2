package routes

import (
	"hostelhub/internal/controllers"
	"hostelhub/internal/middleware"
	"hostelhub/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminRoutes is the hostel-admin surface; every handler re-checks the
// guard and scopes queries to the caller's hostel.
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.POST("/students", controllers.AddStudent)
		admin.PUT("/students/:id", controllers.UpdateStudent)
		admin.DELETE("/students/:id", controllers.DeleteStudent)
		admin.GET("/students", controllers.ListStudents)
		admin.PATCH("/students/:id/status", controllers.UpdateStudentStatus)

		admin.POST("/rooms", controllers.AddRoom)
		admin.PUT("/rooms/:id", controllers.UpdateRoom)
		admin.DELETE("/rooms/:id", controllers.DeleteRoom)
		admin.GET("/rooms", controllers.ListRooms)

		admin.POST("/guests", controllers.AddGuest)
		admin.PUT("/guests/:id", controllers.UpdateGuest)
		admin.DELETE("/guests/:id", controllers.DeleteGuest)
		admin.GET("/guests", controllers.ListGuests)
		admin.PATCH("/guests/:id/status", controllers.UpdateGuestStatus)

		admin.POST("/announcements", controllers.AddAnnouncement)
		admin.PUT("/announcements/:id", controllers.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", controllers.DeleteAnnouncement)
		admin.GET("/announcements", controllers.ListAnnouncements)
		admin.PATCH("/announcements/:id/status", controllers.ToggleAnnouncementStatus)

		admin.POST("/events", controllers.AddEvent)
		admin.PUT("/events/:id", controllers.UpdateEvent)
		admin.DELETE("/events/:id", controllers.DeleteEvent)
		admin.GET("/events", controllers.ListEvents)

		admin.POST("/mealplans", controllers.AddMealPlan)
		admin.PUT("/mealplans/:id", controllers.UpdateMealPlan)
		admin.DELETE("/mealplans/:id", controllers.DeleteMealPlan)
		admin.GET("/mealplans", controllers.ListMealPlans)

		admin.GET("/reports", controllers.ListReports)
		admin.POST("/reports/:id/replies", controllers.ReplyToReport)
		admin.PATCH("/reports/:id/status", controllers.UpdateReportStatus)

		admin.GET("/dashboard/rooms", controllers.GetTotalRooms)
		admin.GET("/dashboard/students", controllers.GetTotalStudents)
		admin.GET("/dashboard/revenue", controllers.GetRevenue)

		admin.POST("/notifications", controllers.CreateNotification)
		admin.GET("/notifications", controllers.ListNotifications)
		admin.PATCH("/notifications/:id/read", controllers.MarkNotificationRead)
	}
}
