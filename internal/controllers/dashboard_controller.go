package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"hostelhub/internal/config"
	"hostelhub/internal/guard"
	"hostelhub/internal/models"
	"hostelhub/internal/response"
)

// monthWindow returns the half-open [year-month-01, year-(month+1)-01)
// range; AddDate handles the December rollover.
func monthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func parseMonthYear(c *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		return 0, 0, false
	}
	return month, year, true
}

// GetTotalRooms counts rooms of the caller's hostel created inside the
// given month window. Recomputed on every call; nothing is cached.
func GetTotalRooms(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	month, year, ok := parseMonthYear(c)
	if !ok {
		response.BadRequest(c, "month and year query parameters are required")
		return
	}
	start, end := monthWindow(month, year)

	var total int64
	if err := config.DB.Model(&models.HostelRoom{}).
		Where("hostel_id = ? AND created_at >= ? AND created_at < ?", ident.HostelID, start, end).
		Count(&total).Error; err != nil {
		logrus.WithError(err).Error("dashboard: room count failed")
		response.Internal(c, "Error fetching dashboard stats")
		return
	}

	response.OK(c, "ok", gin.H{"totalRooms": total, "month": month, "year": year})
}

// GetTotalStudents counts students of the caller's hostel created inside
// the given month window.
func GetTotalStudents(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	month, year, ok := parseMonthYear(c)
	if !ok {
		response.BadRequest(c, "month and year query parameters are required")
		return
	}
	start, end := monthWindow(month, year)

	var total int64
	if err := config.DB.Model(&models.HostelStudent{}).
		Where("hostel_id = ? AND created_at >= ? AND created_at < ?", ident.HostelID, start, end).
		Count(&total).Error; err != nil {
		logrus.WithError(err).Error("dashboard: student count failed")
		response.Internal(c, "Error fetching dashboard stats")
		return
	}

	response.OK(c, "ok", gin.H{"totalStudents": total, "month": month, "year": year})
}

// GetRevenue sums completed payments of the caller's hostel per month of
// the given year.
func GetRevenue(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		response.BadRequest(c, "year query parameter is required")
		return
	}

	monthly := make([]float64, 12)
	for m := 1; m <= 12; m++ {
		start, end := monthWindow(m, year)
		var sum float64
		if err := config.DB.Model(&models.Payment{}).
			Where("hostel_id = ? AND status = ? AND paid_at >= ? AND paid_at < ?",
				ident.HostelID, models.PaymentCompleted, start, end).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&sum).Error; err != nil {
			logrus.WithError(err).Error("dashboard: revenue sum failed")
			response.Internal(c, "Error fetching dashboard stats")
			return
		}
		monthly[m-1] = sum
	}

	response.OK(c, "ok", gin.H{"year": year, "monthly": monthly})
}
