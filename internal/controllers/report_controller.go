package controllers

import (
	"errors"
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

type reportInput struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"omitempty,oneof=Maintenance Mess Security Other"`
}

// CreateReport lets a student raise a ticket against their own hostel.
func CreateReport(c *gin.Context) {
	ident, ok := guard.Student(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	var input reportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid report payload: "+err.Error())
		return
	}
	if input.Category == "" {
		input.Category = "Other"
	}

	report := models.ReportComplaint{
		HostelID:    ident.HostelID,
		AuthID:      ident.AuthID,
		Subject:     input.Subject,
		Description: input.Description,
		Category:    input.Category,
		Status:      "Open",
	}
	if err := config.DB.Create(&report).Error; err != nil {
		logrus.WithError(err).Error("create report: create failed")
		response.Internal(c, "Error creating report")
		return
	}

	response.Created(c, "report created", report)
}

// ListMyReports pages through the calling student's own tickets.
func ListMyReports(c *gin.Context) {
	ident, ok := guard.Student(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.ReportComplaint{}).
		Where("hostel_id = ? AND auth_id = ?", ident.HostelID, ident.AuthID)
	base = query.Filter(base, "status", c.Query("status"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list my reports: count failed")
		response.Internal(c, "Error listing reports")
		return
	}

	var reports []models.ReportComplaint
	if err := base.Order("created_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Preload("Replies").
		Find(&reports).Error; err != nil {
		logrus.WithError(err).Error("list my reports: query failed")
		response.Internal(c, "Error listing reports")
		return
	}

	response.Paged(c, reports, total, query.TotalPages(total, page.PageSize))
}

// ListReports pages through all tickets of the caller's hostel with
// search over subject/description and category/status filters.
func ListReports(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.ReportComplaint{}).Where("hostel_id = ?", ident.HostelID)
	base = query.Search(base, c.Query("search"), "subject", "description")
	base = query.Filter(base, "category", c.Query("category"))
	base = query.Filter(base, "status", c.Query("status"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list reports: count failed")
		response.Internal(c, "Error listing reports")
		return
	}

	var reports []models.ReportComplaint
	if err := base.Order("created_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Preload("Replies").
		Find(&reports).Error; err != nil {
		logrus.WithError(err).Error("list reports: query failed")
		response.Internal(c, "Error listing reports")
		return
	}

	response.Paged(c, reports, total, query.TotalPages(total, page.PageSize))
}

// ReplyToReport appends a message to a ticket's thread. Admins may reply
// to any ticket of their hostel; students only to their own.
func ReplyToReport(c *gin.Context) {
	ident, adminOK := guard.Admin(c)
	if !adminOK {
		var studentOK bool
		ident, studentOK = guard.Student(c)
		if !studentOK {
			response.NotAuthorized(c)
			return
		}
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	var body struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid reply payload: "+err.Error())
		return
	}

	q := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID)
	if ident.Role == models.RoleStudent {
		q = q.Where("auth_id = ?", ident.AuthID)
	}

	var report models.ReportComplaint
	if err := q.First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "report not found")
		} else {
			logrus.WithError(err).Error("reply to report: fetch failed")
			response.Internal(c, "Error replying to report")
		}
		return
	}

	reply := models.ReportReply{
		ReportID: report.ID,
		AuthID:   ident.AuthID,
		Message:  body.Message,
	}
	if err := config.DB.Create(&reply).Error; err != nil {
		logrus.WithError(err).Error("reply to report: create failed")
		response.Internal(c, "Error replying to report")
		return
	}

	response.Created(c, "reply added", reply)
}

// UpdateReportStatus moves a ticket between Open/InProgress/Resolved.
func UpdateReportStatus(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required,oneof=Open InProgress Resolved"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid status payload: "+err.Error())
		return
	}

	var report models.ReportComplaint
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "report not found")
		} else {
			logrus.WithError(err).Error("update report status: fetch failed")
			response.Internal(c, "Error updating report")
		}
		return
	}

	report.Status = body.Status
	if err := config.DB.Save(&report).Error; err != nil {
		logrus.WithError(err).Error("update report status: save failed")
		response.Internal(c, "Error updating report")
		return
	}

	response.OK(c, "report status updated", report)
}
