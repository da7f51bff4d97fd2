package routes

import (
	"hostelhub/internal/controllers"
	"hostelhub/internal/middleware"
	"hostelhub/internal/models"

	"github.com/gin-gonic/gin"
)

// SuperAdminRoutes is the tenant-management surface.
func SuperAdminRoutes(r *gin.Engine) {
	sa := r.Group("/superadmin")
	sa.Use(middleware.RequireAuthWithRole(models.RoleSuperAdmin))
	{
		sa.POST("/hostels", controllers.AddHostel)
		sa.PUT("/hostels/:id", controllers.UpdateHostel)
		sa.DELETE("/hostels/:id", controllers.DeleteHostel)
		sa.GET("/hostels", controllers.ListHostels)
		sa.PATCH("/hostels/:id/expiry", controllers.ExtendHostelExpiry)

		sa.POST("/admins", controllers.AddAdmin)
		sa.PUT("/admins/:id", controllers.UpdateAdmin)
		sa.DELETE("/admins/:id", controllers.DeleteAdmin)
		sa.GET("/admins", controllers.ListAdmins)
		sa.PATCH("/admins/:id/status", controllers.ToggleAdminStatus)

		sa.POST("/payments", controllers.RecordPayment)
		sa.GET("/payments", controllers.ListPayments)

		sa.POST("/notifications", controllers.CreateNotification)
	}
}
