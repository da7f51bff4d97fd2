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

type eventInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	EventDate   time.Time `json:"event_date" binding:"required"`
}

// AddEvent creates a calendar entry for the caller's hostel.
func AddEvent(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	var input eventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid event payload: "+err.Error())
		return
	}

	event := models.HostelEvent{
		HostelID:    ident.HostelID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Status:      "Upcoming",
		EventDate:   input.EventDate,
	}
	if err := config.DB.Create(&event).Error; err != nil {
		logrus.WithError(err).Error("add event: create failed")
		response.Internal(c, "Error adding event")
		return
	}

	response.Created(c, "event added", event)
}

// UpdateEvent edits an event of the caller's hostel.
func UpdateEvent(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	var event models.HostelEvent
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "event not found")
		} else {
			logrus.WithError(err).Error("update event: fetch failed")
			response.Internal(c, "Error updating event")
		}
		return
	}

	var input struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Type        *string    `json:"type"`
		Status      *string    `json:"status"`
		EventDate   *time.Time `json:"event_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid event payload: "+err.Error())
		return
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Type != nil {
		event.Type = *input.Type
	}
	if input.Status != nil {
		event.Status = *input.Status
	}
	if input.EventDate != nil {
		event.EventDate = *input.EventDate
	}

	if err := config.DB.Save(&event).Error; err != nil {
		logrus.WithError(err).Error("update event: save failed")
		response.Internal(c, "Error updating event")
		return
	}

	response.OK(c, "event updated", event)
}

// DeleteEvent removes an event.
func DeleteEvent(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	res := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).Delete(&models.HostelEvent{})
	if res.Error != nil {
		logrus.WithError(res.Error).Error("delete event: delete failed")
		response.Internal(c, "Error deleting event")
		return
	}
	if res.RowsAffected == 0 {
		response.NotFound(c, "event not found")
		return
	}

	response.OK(c, "event deleted", nil)
}

// ListEvents pages through the hostel calendar, nearest event first.
func ListEvents(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}
	listEventsFor(c, ident.HostelID)
}

func listEventsFor(c *gin.Context, hostelID uint) {
	page := query.ParsePagination(c)

	base := config.DB.Model(&models.HostelEvent{}).Where("hostel_id = ?", hostelID)
	base = query.Search(base, c.Query("search"), "title", "description")
	base = query.Filter(base, "type", c.Query("type"))
	base = query.Filter(base, "status", c.Query("status"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list events: count failed")
		response.Internal(c, "Error listing events")
		return
	}

	var events []models.HostelEvent
	if err := base.Order("event_date ASC").
		Limit(page.PageSize).Offset(page.Offset()).
		Find(&events).Error; err != nil {
		logrus.WithError(err).Error("list events: query failed")
		response.Internal(c, "Error listing events")
		return
	}

	response.Paged(c, events, total, query.TotalPages(total, page.PageSize))
}
