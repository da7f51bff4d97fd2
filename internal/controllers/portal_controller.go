package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/guard"
	"hostelhub/internal/models"
	"hostelhub/internal/response"
)

// Student-facing read endpoints. Everything is scoped to the caller's
// own hostel; the shared list helpers do the paging.

// GetMyProfile returns the calling student's profile with room details.
func GetMyProfile(c *gin.Context) {
	ident, ok := guard.Student(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	var student models.HostelStudent
	if err := config.DB.Where("auth_id = ?", ident.AuthID).
		Preload("Room").
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "student profile not found")
		} else {
			logrus.WithError(err).Error("get my profile: fetch failed")
			response.Internal(c, "Error fetching profile")
		}
		return
	}

	response.OK(c, "ok", student)
}

// ListMyAnnouncements shows the student their hostel's notice board.
func ListMyAnnouncements(c *gin.Context) {
	ident, ok := guard.Student(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}
	listAnnouncementsFor(c, ident.HostelID)
}

// ListMyEvents shows the student their hostel's calendar.
func ListMyEvents(c *gin.Context) {
	ident, ok := guard.Student(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}
	listEventsFor(c, ident.HostelID)
}

// ListMyMealPlans shows the student their hostel's menu.
func ListMyMealPlans(c *gin.Context) {
	ident, ok := guard.Student(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}
	listMealPlansFor(c, ident.HostelID)
}
