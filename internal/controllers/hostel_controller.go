package controllers

import (
	"errors"
	"net/http"
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

type hostelInput struct {
	Code      string     `json:"code" binding:"required"`
	Name      string     `json:"name" binding:"required"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Capacity  int        `json:"capacity"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// AddHostel registers a new tenant.
func AddHostel(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	var input hostelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid hostel payload: "+err.Error())
		return
	}

	hostel := models.Hostel{
		Code:     input.Code,
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		Capacity: input.Capacity,
	}
	if input.ExpiresAt != nil {
		hostel.ExpiresAt = *input.ExpiresAt
	} else {
		// new tenants start with a one-month trial window
		hostel.ExpiresAt = time.Now().AddDate(0, 1, 0)
	}

	if err := config.DB.Create(&hostel).Error; err != nil {
		if isUniqueViolation(err) {
			response.Fail(c, http.StatusConflict, "hostel with this code already exists")
			return
		}
		logrus.WithError(err).Error("add hostel: create failed")
		response.Internal(c, "Error adding hostel")
		return
	}

	response.Created(c, "hostel added", hostel)
}

// UpdateHostel edits tenant details.
func UpdateHostel(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid hostel id")
		return
	}

	var hostel models.Hostel
	if err := config.DB.First(&hostel, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "hostel not found")
		} else {
			logrus.WithError(err).Error("update hostel: fetch failed")
			response.Internal(c, "Error updating hostel")
		}
		return
	}

	var input struct {
		Code      *string    `json:"code"`
		Name      *string    `json:"name"`
		Address   *string    `json:"address"`
		Phone     *string    `json:"phone"`
		Capacity  *int       `json:"capacity"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid hostel payload: "+err.Error())
		return
	}

	if input.Code != nil {
		hostel.Code = *input.Code
	}
	if input.Name != nil {
		hostel.Name = *input.Name
	}
	if input.Address != nil {
		hostel.Address = *input.Address
	}
	if input.Phone != nil {
		hostel.Phone = *input.Phone
	}
	if input.Capacity != nil {
		hostel.Capacity = *input.Capacity
	}
	if input.ExpiresAt != nil {
		hostel.ExpiresAt = *input.ExpiresAt
	}

	if err := config.DB.Save(&hostel).Error; err != nil {
		if isUniqueViolation(err) {
			response.Fail(c, http.StatusConflict, "hostel with this code already exists")
			return
		}
		logrus.WithError(err).Error("update hostel: save failed")
		response.Internal(c, "Error updating hostel")
		return
	}

	response.OK(c, "hostel updated", hostel)
}

// DeleteHostel removes a tenant; tenants that still have students or
// admins are refused.
func DeleteHostel(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid hostel id")
		return
	}

	var students, admins int64
	if err := config.DB.Model(&models.HostelStudent{}).Where("hostel_id = ?", uint(id)).Count(&students).Error; err != nil {
		logrus.WithError(err).Error("delete hostel: student count failed")
		response.Internal(c, "Error deleting hostel")
		return
	}
	if err := config.DB.Model(&models.Admin{}).Where("hostel_id = ?", uint(id)).Count(&admins).Error; err != nil {
		logrus.WithError(err).Error("delete hostel: admin count failed")
		response.Internal(c, "Error deleting hostel")
		return
	}
	if students > 0 || admins > 0 {
		response.Fail(c, http.StatusConflict, "hostel still has admins or students")
		return
	}

	res := config.DB.Delete(&models.Hostel{}, uint(id))
	if res.Error != nil {
		logrus.WithError(res.Error).Error("delete hostel: delete failed")
		response.Internal(c, "Error deleting hostel")
		return
	}
	if res.RowsAffected == 0 {
		response.NotFound(c, "hostel not found")
		return
	}

	response.OK(c, "hostel deleted", nil)
}

// ListHostels pages through all tenants with search over code/name/
// address.
func ListHostels(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.Hostel{})
	base = query.Search(base, c.Query("search"), "code", "name", "address")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list hostels: count failed")
		response.Internal(c, "Error listing hostels")
		return
	}

	var hostels []models.Hostel
	if err := base.Order("created_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Find(&hostels).Error; err != nil {
		logrus.WithError(err).Error("list hostels: query failed")
		response.Internal(c, "Error listing hostels")
		return
	}

	response.Paged(c, hostels, total, query.TotalPages(total, page.PageSize))
}

// ExtendHostelExpiry pushes a tenant's subscription window forward by a
// number of months.
func ExtendHostelExpiry(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid hostel id")
		return
	}

	var body struct {
		Months int `json:"months" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid expiry payload: "+err.Error())
		return
	}

	var hostel models.Hostel
	if err := config.DB.First(&hostel, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "hostel not found")
		} else {
			logrus.WithError(err).Error("extend expiry: fetch failed")
			response.Internal(c, "Error updating hostel")
		}
		return
	}

	hostel.ExpiresAt = extendExpiry(hostel.ExpiresAt, body.Months)
	if err := config.DB.Save(&hostel).Error; err != nil {
		logrus.WithError(err).Error("extend expiry: save failed")
		response.Internal(c, "Error updating hostel")
		return
	}

	response.OK(c, "hostel expiry extended", hostel)
}

// extendExpiry adds months on top of the current expiry, or on top of
// now when the window has already lapsed.
func extendExpiry(current time.Time, months int) time.Time {
	base := current
	if now := time.Now(); base.Before(now) {
		base = now
	}
	return base.AddDate(0, months, 0)
}
