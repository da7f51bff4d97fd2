package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/guard"
	"hostelhub/internal/models"
	"hostelhub/internal/query"
	"hostelhub/internal/response"
)

type recordPaymentInput struct {
	HostelID     uint    `json:"hostel_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Method       string  `json:"method" binding:"required,oneof=Cash Card BankTransfer UPI"`
	Status       string  `json:"status" binding:"omitempty,oneof=Pending Completed Failed"`
	CreditMonths int     `json:"credit_months"`
}

// RecordPayment books a subscription payment for a hostel. A Completed
// payment extends the hostel expiry by the credited months in the same
// transaction as the payment row.
func RecordPayment(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	var input recordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid payment payload: "+err.Error())
		return
	}
	if input.Status == "" {
		input.Status = models.PaymentCompleted
	}

	var payment models.Payment
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var hostel models.Hostel
		if err := tx.First(&hostel, input.HostelID).Error; err != nil {
			return err
		}

		payment = models.Payment{
			HostelID:     input.HostelID,
			Amount:       input.Amount,
			Method:       input.Method,
			Status:       input.Status,
			Reference:    uuid.NewString(),
			PaidAt:       time.Now(),
			CreditMonths: input.CreditMonths,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if payment.Status == models.PaymentCompleted && payment.CreditMonths > 0 {
			hostel.ExpiresAt = extendExpiry(hostel.ExpiresAt, payment.CreditMonths)
			return tx.Save(&hostel).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "hostel with the provided hostel_id does not exist")
			return
		}
		logrus.WithError(err).Error("record payment: transaction failed")
		response.Internal(c, "Error recording payment")
		return
	}

	response.Created(c, "payment recorded", payment)
}

// ListPayments pages through payments with status/hostel filters and
// search over the reference.
func ListPayments(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.Payment{})
	base = query.Search(base, c.Query("search"), "reference", "method")
	base = query.Filter(base, "status", c.Query("status"))
	base = query.Filter(base, "hostel_id", c.Query("hostelId"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list payments: count failed")
		response.Internal(c, "Error listing payments")
		return
	}

	var payments []models.Payment
	if err := base.Order("paid_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Find(&payments).Error; err != nil {
		logrus.WithError(err).Error("list payments: query failed")
		response.Internal(c, "Error listing payments")
		return
	}

	response.Paged(c, payments, total, query.TotalPages(total, page.PageSize))
}
