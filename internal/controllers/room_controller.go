package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/guard"
	"hostelhub/internal/models"
	"hostelhub/internal/query"
	"hostelhub/internal/response"
)

type roomInput struct {
	RoomNo   string  `json:"room_no" binding:"required"`
	Type     string  `json:"type"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
	Floor    string  `json:"floor"`
}

// AddRoom creates a room in the caller's hostel. Room numbers are unique
// within a hostel.
func AddRoom(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	var input roomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid room payload: "+err.Error())
		return
	}

	var count int64
	if err := config.DB.Model(&models.HostelRoom{}).
		Where("hostel_id = ? AND room_no = ?", ident.HostelID, input.RoomNo).
		Count(&count).Error; err != nil {
		logrus.WithError(err).Error("add room: uniqueness check failed")
		response.Internal(c, "Error adding room")
		return
	}
	if count > 0 {
		response.Fail(c, http.StatusConflict, "room with this number already exists")
		return
	}

	room := models.HostelRoom{
		HostelID: ident.HostelID,
		RoomNo:   input.RoomNo,
		Type:     input.Type,
		Capacity: input.Capacity,
		Price:    input.Price,
		Floor:    input.Floor,
	}
	if err := config.DB.Create(&room).Error; err != nil {
		logrus.WithError(err).Error("add room: create failed")
		response.Internal(c, "Error adding room")
		return
	}

	response.Created(c, "room added", room)
}

// UpdateRoom edits a room of the caller's hostel.
func UpdateRoom(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}

	var room models.HostelRoom
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "room not found")
		} else {
			logrus.WithError(err).Error("update room: fetch failed")
			response.Internal(c, "Error updating room")
		}
		return
	}

	var input struct {
		RoomNo   *string  `json:"room_no"`
		Type     *string  `json:"type"`
		Capacity *int     `json:"capacity"`
		Price    *float64 `json:"price"`
		Floor    *string  `json:"floor"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid room payload: "+err.Error())
		return
	}

	if input.RoomNo != nil {
		room.RoomNo = *input.RoomNo
	}
	if input.Type != nil {
		room.Type = *input.Type
	}
	if input.Capacity != nil {
		room.Capacity = *input.Capacity
	}
	if input.Price != nil {
		room.Price = *input.Price
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}

	if err := config.DB.Save(&room).Error; err != nil {
		logrus.WithError(err).Error("update room: save failed")
		response.Internal(c, "Error updating room")
		return
	}

	response.OK(c, "room updated", room)
}

// DeleteRoom removes a room; occupied rooms are refused.
func DeleteRoom(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}

	var room models.HostelRoom
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "room not found")
		} else {
			logrus.WithError(err).Error("delete room: fetch failed")
			response.Internal(c, "Error deleting room")
		}
		return
	}

	var occupants int64
	if err := config.DB.Model(&models.HostelStudent{}).Where("room_id = ?", room.ID).Count(&occupants).Error; err != nil {
		logrus.WithError(err).Error("delete room: occupancy check failed")
		response.Internal(c, "Error deleting room")
		return
	}
	if occupants > 0 {
		response.Fail(c, http.StatusConflict, "room has assigned students")
		return
	}

	if err := config.DB.Delete(&room).Error; err != nil {
		logrus.WithError(err).Error("delete room: delete failed")
		response.Internal(c, "Error deleting room")
		return
	}

	response.OK(c, "room deleted", nil)
}

// ListRooms pages through the caller's hostel rooms with optional search
// over room number/floor and a type filter.
func ListRooms(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.HostelRoom{}).Where("hostel_id = ?", ident.HostelID)
	base = query.Search(base, c.Query("search"), "room_no", "floor")
	base = query.Filter(base, "type", c.Query("type"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list rooms: count failed")
		response.Internal(c, "Error listing rooms")
		return
	}

	var rooms []models.HostelRoom
	if err := base.Order("room_no ASC").
		Limit(page.PageSize).Offset(page.Offset()).
		Find(&rooms).Error; err != nil {
		logrus.WithError(err).Error("list rooms: query failed")
		response.Internal(c, "Error listing rooms")
		return
	}

	response.Paged(c, rooms, total, query.TotalPages(total, page.PageSize))
}
