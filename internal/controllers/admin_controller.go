package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/guard"
	"hostelhub/internal/models"
	"hostelhub/internal/query"
	"hostelhub/internal/response"
)

type addAdminInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	HostelID    uint   `json:"hostel_id" binding:"required"`
	Designation string `json:"designation"`
}

type updateAdminInput struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Password    *string `json:"password"`
	HostelID    *uint   `json:"hostel_id"`
	Designation *string `json:"designation"`
}

// adminCredentialsTaken checks email/phone collisions across BOTH the
// Admin and Auth tables, excluding the record being edited.
func adminCredentialsTaken(db *gorm.DB, email, phone string, excludeAuthID uint) (bool, error) {
	taken, err := credentialsTaken(db, email, phone, excludeAuthID)
	if err != nil || taken {
		return taken, err
	}

	var count int64
	q := db.Model(&models.Admin{}).Where("email = ? OR phone = ?", email, phone)
	if excludeAuthID != 0 {
		q = q.Where("auth_id <> ?", excludeAuthID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddAdmin provisions a hostel administrator: credential row plus
// profile row in one transaction. New admins start active
// (Auth.Verified true).
func AddAdmin(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	var input addAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid admin payload: "+err.Error())
		return
	}

	var hostel models.Hostel
	if err := config.DB.First(&hostel, input.HostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "hostel with the provided hostel_id does not exist")
		} else {
			logrus.WithError(err).Error("add admin: hostel lookup failed")
			response.Internal(c, "Error adding admin")
		}
		return
	}

	taken, err := adminCredentialsTaken(config.DB, input.Email, input.Phone, 0)
	if err != nil {
		logrus.WithError(err).Error("add admin: uniqueness check failed")
		response.Internal(c, "Error adding admin")
		return
	}
	if taken {
		response.Fail(c, http.StatusConflict, "admin with this email or phone already exists")
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		response.Internal(c, "Error adding admin")
		return
	}

	var admin models.Admin
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		auth := models.Auth{
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			Password: hashedPassword,
			Role:     models.RoleAdmin,
			Verified: true,
			HostelID: &input.HostelID,
		}
		if err := tx.Create(&auth).Error; err != nil {
			return err
		}

		admin = models.Admin{
			AuthID:      auth.ID,
			HostelID:    input.HostelID,
			Name:        input.Name,
			Email:       input.Email,
			Phone:       input.Phone,
			Designation: input.Designation,
		}
		return tx.Create(&admin).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			response.Fail(c, http.StatusConflict, "admin with this email or phone already exists")
			return
		}
		logrus.WithError(err).Error("add admin: transaction failed")
		response.Internal(c, "Error adding admin")
		return
	}

	response.Created(c, "admin added", admin)
}

// UpdateAdmin edits an admin profile; mirrored name/email/phone land on
// the paired Auth row in the same transaction.
func UpdateAdmin(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid admin id")
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "admin not found")
		} else {
			logrus.WithError(err).Error("update admin: fetch failed")
			response.Internal(c, "Error updating admin")
		}
		return
	}

	var input updateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid admin payload: "+err.Error())
		return
	}

	if input.Email != nil || input.Phone != nil {
		email := admin.Email
		phone := admin.Phone
		if input.Email != nil {
			email = *input.Email
		}
		if input.Phone != nil {
			phone = *input.Phone
		}
		taken, err := adminCredentialsTaken(config.DB, email, phone, admin.AuthID)
		if err != nil {
			logrus.WithError(err).Error("update admin: uniqueness check failed")
			response.Internal(c, "Error updating admin")
			return
		}
		if taken {
			response.Fail(c, http.StatusConflict, "admin with this email or phone already exists")
			return
		}
	}

	if input.HostelID != nil {
		var hostel models.Hostel
		if err := config.DB.First(&hostel, *input.HostelID).Error; err != nil {
			response.BadRequest(c, "hostel with the provided hostel_id does not exist")
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var auth models.Auth
		if err := tx.First(&auth, admin.AuthID).Error; err != nil {
			return err
		}

		if input.Name != nil {
			admin.Name = *input.Name
			auth.Name = *input.Name
		}
		if input.Email != nil {
			admin.Email = *input.Email
			auth.Email = *input.Email
		}
		if input.Phone != nil {
			admin.Phone = *input.Phone
			auth.Phone = *input.Phone
		}
		if input.Password != nil {
			hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				return hashErr
			}
			auth.Password = string(hashed)
		}
		if input.HostelID != nil {
			admin.HostelID = *input.HostelID
			auth.HostelID = input.HostelID
		}
		if input.Designation != nil {
			admin.Designation = *input.Designation
		}

		if err := tx.Save(&auth).Error; err != nil {
			return err
		}
		return tx.Save(&admin).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			response.Fail(c, http.StatusConflict, "admin with this email or phone already exists")
			return
		}
		logrus.WithError(err).Error("update admin: transaction failed")
		response.Internal(c, "Error updating admin")
		return
	}

	response.OK(c, "admin updated", admin)
}

// DeleteAdmin removes the profile and its credential row in one
// transaction.
func DeleteAdmin(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid admin id")
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "admin not found")
		} else {
			logrus.WithError(err).Error("delete admin: fetch failed")
			response.Internal(c, "Error deleting admin")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&models.Admin{}, admin.ID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Auth{}, admin.AuthID).Error
	})
	if err != nil {
		logrus.WithError(err).Error("delete admin: transaction failed")
		response.Internal(c, "Error deleting admin")
		return
	}

	response.OK(c, "admin deleted", nil)
}

// ListAdmins pages through all admins, optionally narrowed to one hostel
// or searched by name/email/phone.
func ListAdmins(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.Admin{})
	base = query.Search(base, c.Query("search"), "name", "email", "phone")
	base = query.Filter(base, "hostel_id", c.Query("hostelId"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list admins: count failed")
		response.Internal(c, "Error listing admins")
		return
	}

	var admins []models.Admin
	if err := base.Order("created_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Preload("Auth").
		Find(&admins).Error; err != nil {
		logrus.WithError(err).Error("list admins: query failed")
		response.Internal(c, "Error listing admins")
		return
	}

	response.Paged(c, admins, total, query.TotalPages(total, page.PageSize))
}

// ToggleAdminStatus flips the paired Auth row's Verified flag. Admin
// activation is account verification here; the profile row carries no
// status of its own.
func ToggleAdminStatus(c *gin.Context) {
	if _, ok := guard.SuperAdmin(c); !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid admin id")
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "admin not found")
		} else {
			logrus.WithError(err).Error("toggle admin status: fetch failed")
			response.Internal(c, "Error updating admin")
		}
		return
	}

	var auth models.Auth
	if err := config.DB.First(&auth, admin.AuthID).Error; err != nil {
		logrus.WithError(err).Error("toggle admin status: auth fetch failed")
		response.Internal(c, "Error updating admin")
		return
	}

	auth.Verified = !auth.Verified
	if err := config.DB.Save(&auth).Error; err != nil {
		logrus.WithError(err).Error("toggle admin status: save failed")
		response.Internal(c, "Error updating admin")
		return
	}

	response.OK(c, "admin status updated", gin.H{
		"admin":    admin,
		"verified": auth.Verified,
	})
}
