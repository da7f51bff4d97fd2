package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/guard"
	"hostelhub/internal/models"
	"hostelhub/internal/query"
	"hostelhub/internal/response"
)

type announcementInput struct {
	Title     string     `json:"title" binding:"required"`
	Body      string     `json:"body"`
	Type      string     `json:"type"`
	Priority  string     `json:"priority"`
	PublishAt *time.Time `json:"publish_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// AddAnnouncement posts a notice to the caller's hostel board.
func AddAnnouncement(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	var input announcementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid announcement payload: "+err.Error())
		return
	}

	ann := models.HostelAnnouncement{
		HostelID:  ident.HostelID,
		Title:     input.Title,
		Body:      input.Body,
		Type:      input.Type,
		Priority:  input.Priority,
		Status:    "Active",
		PublishAt: input.PublishAt,
		ExpiresAt: input.ExpiresAt,
	}
	if err := config.DB.Create(&ann).Error; err != nil {
		logrus.WithError(err).Error("add announcement: create failed")
		response.Internal(c, "Error adding announcement")
		return
	}

	response.Created(c, "announcement added", ann)
}

// UpdateAnnouncement edits an announcement of the caller's hostel.
func UpdateAnnouncement(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid announcement id")
		return
	}

	var ann models.HostelAnnouncement
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&ann).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "announcement not found")
		} else {
			logrus.WithError(err).Error("update announcement: fetch failed")
			response.Internal(c, "Error updating announcement")
		}
		return
	}

	var input struct {
		Title     *string    `json:"title"`
		Body      *string    `json:"body"`
		Type      *string    `json:"type"`
		Priority  *string    `json:"priority"`
		PublishAt *time.Time `json:"publish_at"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid announcement payload: "+err.Error())
		return
	}

	if input.Title != nil {
		ann.Title = *input.Title
	}
	if input.Body != nil {
		ann.Body = *input.Body
	}
	if input.Type != nil {
		ann.Type = *input.Type
	}
	if input.Priority != nil {
		ann.Priority = *input.Priority
	}
	if input.PublishAt != nil {
		ann.PublishAt = input.PublishAt
	}
	if input.ExpiresAt != nil {
		ann.ExpiresAt = input.ExpiresAt
	}

	if err := config.DB.Save(&ann).Error; err != nil {
		logrus.WithError(err).Error("update announcement: save failed")
		response.Internal(c, "Error updating announcement")
		return
	}

	response.OK(c, "announcement updated", ann)
}

// DeleteAnnouncement removes an announcement.
func DeleteAnnouncement(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid announcement id")
		return
	}

	res := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).Delete(&models.HostelAnnouncement{})
	if res.Error != nil {
		logrus.WithError(res.Error).Error("delete announcement: delete failed")
		response.Internal(c, "Error deleting announcement")
		return
	}
	if res.RowsAffected == 0 {
		response.NotFound(c, "announcement not found")
		return
	}

	response.OK(c, "announcement deleted", nil)
}

// ListAnnouncements pages through the caller's hostel board with search
// over title/body and type/priority/status filters.
func ListAnnouncements(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}
	listAnnouncementsFor(c, ident.HostelID)
}

func listAnnouncementsFor(c *gin.Context, hostelID uint) {
	page := query.ParsePagination(c)

	base := config.DB.Model(&models.HostelAnnouncement{}).Where("hostel_id = ?", hostelID)
	base = query.Search(base, c.Query("search"), "title", "body")
	base = query.Filter(base, "type", c.Query("type"))
	base = query.Filter(base, "priority", c.Query("priority"))
	base = query.Filter(base, "status", c.Query("status"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list announcements: count failed")
		response.Internal(c, "Error listing announcements")
		return
	}

	var anns []models.HostelAnnouncement
	if err := base.Order("created_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Find(&anns).Error; err != nil {
		logrus.WithError(err).Error("list announcements: query failed")
		response.Internal(c, "Error listing announcements")
		return
	}

	response.Paged(c, anns, total, query.TotalPages(total, page.PageSize))
}

// ToggleAnnouncementStatus flips an announcement between Active and
// Inactive.
func ToggleAnnouncementStatus(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid announcement id")
		return
	}

	var ann models.HostelAnnouncement
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&ann).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "announcement not found")
		} else {
			logrus.WithError(err).Error("toggle announcement: fetch failed")
			response.Internal(c, "Error updating announcement")
		}
		return
	}

	if ann.Status == "Active" {
		ann.Status = "Inactive"
	} else {
		ann.Status = "Active"
	}

	if err := config.DB.Save(&ann).Error; err != nil {
		logrus.WithError(err).Error("toggle announcement: save failed")
		response.Internal(c, "Error updating announcement")
		return
	}

	response.OK(c, "announcement status updated", ann)
}
