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

type guestInput struct {
	Name     string    `json:"name" binding:"required"`
	Phone    string    `json:"phone" binding:"required"`
	IDProof  string    `json:"id_proof"`
	FromDate time.Time `json:"from_date" binding:"required"`
	ToDate   time.Time `json:"to_date" binding:"required"`
	RoomID   *uint     `json:"room_id"`
}

// AddGuest registers a temporary guest for the caller's hostel.
func AddGuest(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	var input guestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid guest payload: "+err.Error())
		return
	}
	if !input.ToDate.After(input.FromDate) {
		response.BadRequest(c, "to_date must be after from_date")
		return
	}

	if input.RoomID != nil {
		var room models.HostelRoom
		if err := config.DB.Where("id = ? AND hostel_id = ?", *input.RoomID, ident.HostelID).First(&room).Error; err != nil {
			response.BadRequest(c, "room does not exist in this hostel")
			return
		}
	}

	guest := models.TemporaryGuest{
		HostelID: ident.HostelID,
		RoomID:   input.RoomID,
		Name:     input.Name,
		Phone:    input.Phone,
		IDProof:  input.IDProof,
		FromDate: input.FromDate,
		ToDate:   input.ToDate,
		Status:   models.StatusPending,
	}
	if err := config.DB.Create(&guest).Error; err != nil {
		logrus.WithError(err).Error("add guest: create failed")
		response.Internal(c, "Error adding guest")
		return
	}

	response.Created(c, "guest added", guest)
}

// UpdateGuest edits a guest record of the caller's hostel.
func UpdateGuest(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid guest id")
		return
	}

	var guest models.TemporaryGuest
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "guest not found")
		} else {
			logrus.WithError(err).Error("update guest: fetch failed")
			response.Internal(c, "Error updating guest")
		}
		return
	}

	var input struct {
		Name     *string    `json:"name"`
		Phone    *string    `json:"phone"`
		IDProof  *string    `json:"id_proof"`
		FromDate *time.Time `json:"from_date"`
		ToDate   *time.Time `json:"to_date"`
		RoomID   *uint      `json:"room_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid guest payload: "+err.Error())
		return
	}

	if input.RoomID != nil {
		var room models.HostelRoom
		if err := config.DB.Where("id = ? AND hostel_id = ?", *input.RoomID, ident.HostelID).First(&room).Error; err != nil {
			response.BadRequest(c, "room does not exist in this hostel")
			return
		}
		guest.RoomID = input.RoomID
	}
	if input.Name != nil {
		guest.Name = *input.Name
	}
	if input.Phone != nil {
		guest.Phone = *input.Phone
	}
	if input.IDProof != nil {
		guest.IDProof = *input.IDProof
	}
	if input.FromDate != nil {
		guest.FromDate = *input.FromDate
	}
	if input.ToDate != nil {
		guest.ToDate = *input.ToDate
	}
	if !guest.ToDate.After(guest.FromDate) {
		response.BadRequest(c, "to_date must be after from_date")
		return
	}

	if err := config.DB.Save(&guest).Error; err != nil {
		logrus.WithError(err).Error("update guest: save failed")
		response.Internal(c, "Error updating guest")
		return
	}

	response.OK(c, "guest updated", guest)
}

// DeleteGuest removes a guest record.
func DeleteGuest(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid guest id")
		return
	}

	res := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).Delete(&models.TemporaryGuest{})
	if res.Error != nil {
		logrus.WithError(res.Error).Error("delete guest: delete failed")
		response.Internal(c, "Error deleting guest")
		return
	}
	if res.RowsAffected == 0 {
		response.NotFound(c, "guest not found")
		return
	}

	response.OK(c, "guest deleted", nil)
}

// ListGuests pages through the caller's hostel guests with search over
// name/phone and a status filter.
func ListGuests(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.TemporaryGuest{}).Where("hostel_id = ?", ident.HostelID)
	base = query.Search(base, c.Query("search"), "name", "phone")
	base = query.Filter(base, "status", c.Query("status"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list guests: count failed")
		response.Internal(c, "Error listing guests")
		return
	}

	var guests []models.TemporaryGuest
	if err := base.Order("from_date DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Preload("Room").
		Find(&guests).Error; err != nil {
		logrus.WithError(err).Error("list guests: query failed")
		response.Internal(c, "Error listing guests")
		return
	}

	response.Paged(c, guests, total, query.TotalPages(total, page.PageSize))
}

// UpdateGuestStatus moves a guest through
// Pending/Approved/Rejected/CheckedOut.
func UpdateGuestStatus(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid guest id")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required,oneof=Pending Approved Rejected CheckedOut"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid status payload: "+err.Error())
		return
	}

	var guest models.TemporaryGuest
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "guest not found")
		} else {
			logrus.WithError(err).Error("update guest status: fetch failed")
			response.Internal(c, "Error updating guest")
		}
		return
	}

	guest.Status = body.Status
	if err := config.DB.Save(&guest).Error; err != nil {
		logrus.WithError(err).Error("update guest status: save failed")
		response.Internal(c, "Error updating guest")
		return
	}

	response.OK(c, "guest status updated", guest)
}
