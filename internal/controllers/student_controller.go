package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

type addStudentInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Password      string `json:"password" binding:"required,min=6"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
	Course        string `json:"course"`
	AcademicYear  string `json:"academic_year"`
	RoomID        *uint  `json:"room_id"`
}

type updateStudentInput struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Password      *string `json:"password"`
	GuardianName  *string `json:"guardian_name"`
	GuardianPhone *string `json:"guardian_phone"`
	Course        *string `json:"course"`
	AcademicYear  *string `json:"academic_year"`
	RoomID        *uint   `json:"room_id"`
}

// credentialsTaken reports whether email or phone is already claimed by
// an Auth row other than excludeAuthID.
func credentialsTaken(db *gorm.DB, email, phone string, excludeAuthID uint) (bool, error) {
	var count int64
	q := db.Model(&models.Auth{}).Where("email = ? OR phone = ?", email, phone)
	if excludeAuthID != 0 {
		q = q.Where("id <> ?", excludeAuthID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddStudent creates a student profile together with its credential row
// in one transaction. Duplicate email/phone fails before anything is
// written.
func AddStudent(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	var input addStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid student payload: "+err.Error())
		return
	}

	taken, err := credentialsTaken(config.DB, input.Email, input.Phone, 0)
	if err != nil {
		logrus.WithError(err).Error("add student: uniqueness check failed")
		response.Internal(c, "Error adding student")
		return
	}
	if taken {
		response.Fail(c, http.StatusConflict, "student with this email or phone already exists")
		return
	}

	if input.RoomID != nil {
		var room models.HostelRoom
		if err := config.DB.Where("id = ? AND hostel_id = ?", *input.RoomID, ident.HostelID).First(&room).Error; err != nil {
			response.BadRequest(c, "room does not exist in this hostel")
			return
		}
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		response.Internal(c, "Error adding student")
		return
	}

	var student models.HostelStudent
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		auth := models.Auth{
			Name:         input.Name,
			Email:        input.Email,
			Phone:        input.Phone,
			Password:     hashedPassword,
			Role:         models.RoleStudent,
			Verified:     true,
			HostelID:     &ident.HostelID,
			AcademicYear: input.AcademicYear,
		}
		if err := tx.Create(&auth).Error; err != nil {
			return err
		}

		student = models.HostelStudent{
			AuthID:        auth.ID,
			HostelID:      ident.HostelID,
			RoomID:        input.RoomID,
			Name:          input.Name,
			Email:         input.Email,
			Phone:         input.Phone,
			GuardianName:  input.GuardianName,
			GuardianPhone: input.GuardianPhone,
			Course:        input.Course,
			AcademicYear:  input.AcademicYear,
			Status:        models.StatusApproved,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			response.Fail(c, http.StatusConflict, "student with this email or phone already exists")
			return
		}
		logrus.WithError(err).Error("add student: transaction failed")
		response.Internal(c, "Error adding student")
		return
	}

	response.Created(c, "student added", student)
}

// UpdateStudent edits a student of the caller's hostel. Mirrored
// name/email/phone are written to the paired Auth row inside the same
// transaction.
func UpdateStudent(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid student id")
		return
	}

	var student models.HostelStudent
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "student not found")
		} else {
			logrus.WithError(err).Error("update student: fetch failed")
			response.Internal(c, "Error updating student")
		}
		return
	}

	var input updateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid student payload: "+err.Error())
		return
	}

	if input.Email != nil || input.Phone != nil {
		email := student.Email
		phone := student.Phone
		if input.Email != nil {
			email = *input.Email
		}
		if input.Phone != nil {
			phone = *input.Phone
		}
		taken, err := credentialsTaken(config.DB, email, phone, student.AuthID)
		if err != nil {
			logrus.WithError(err).Error("update student: uniqueness check failed")
			response.Internal(c, "Error updating student")
			return
		}
		if taken {
			response.Fail(c, http.StatusConflict, "student with this email or phone already exists")
			return
		}
	}

	if input.RoomID != nil {
		var room models.HostelRoom
		if err := config.DB.Where("id = ? AND hostel_id = ?", *input.RoomID, ident.HostelID).First(&room).Error; err != nil {
			response.BadRequest(c, "room does not exist in this hostel")
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var auth models.Auth
		if err := tx.First(&auth, student.AuthID).Error; err != nil {
			return err
		}

		if input.Name != nil {
			student.Name = *input.Name
			auth.Name = *input.Name
		}
		if input.Email != nil {
			student.Email = *input.Email
			auth.Email = *input.Email
		}
		if input.Phone != nil {
			student.Phone = *input.Phone
			auth.Phone = *input.Phone
		}
		if input.Password != nil {
			hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				return hashErr
			}
			auth.Password = string(hashed)
		}
		if input.GuardianName != nil {
			student.GuardianName = *input.GuardianName
		}
		if input.GuardianPhone != nil {
			student.GuardianPhone = *input.GuardianPhone
		}
		if input.Course != nil {
			student.Course = *input.Course
		}
		if input.AcademicYear != nil {
			student.AcademicYear = *input.AcademicYear
			auth.AcademicYear = *input.AcademicYear
		}
		if input.RoomID != nil {
			student.RoomID = input.RoomID
		}

		if err := tx.Save(&auth).Error; err != nil {
			return err
		}
		return tx.Save(&student).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			response.Fail(c, http.StatusConflict, "student with this email or phone already exists")
			return
		}
		logrus.WithError(err).Error("update student: transaction failed")
		response.Internal(c, "Error updating student")
		return
	}

	response.OK(c, "student updated", student)
}

// DeleteStudent removes the profile and its credential row together;
// a failure of either rolls back both.
func DeleteStudent(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid student id")
		return
	}

	var student models.HostelStudent
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "student not found")
		} else {
			logrus.WithError(err).Error("delete student: fetch failed")
			response.Internal(c, "Error deleting student")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&models.HostelStudent{}, student.ID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Auth{}, student.AuthID).Error
	})
	if err != nil {
		logrus.WithError(err).Error("delete student: transaction failed")
		response.Internal(c, "Error deleting student")
		return
	}

	response.OK(c, "student deleted", nil)
}

// ListStudents pages through the caller's hostel, with optional search
// over name/email/phone and status/room filters.
func ListStudents(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	page := query.ParsePagination(c)

	base := config.DB.Model(&models.HostelStudent{}).Where("hostel_id = ?", ident.HostelID)
	base = query.Search(base, c.Query("search"), "name", "email", "phone")
	base = query.Filter(base, "status", c.Query("status"))
	base = query.Filter(base, "room_id", c.Query("roomId"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list students: count failed")
		response.Internal(c, "Error listing students")
		return
	}

	var students []models.HostelStudent
	if err := base.Order("created_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Preload("Room").
		Find(&students).Error; err != nil {
		logrus.WithError(err).Error("list students: query failed")
		response.Internal(c, "Error listing students")
		return
	}

	response.Paged(c, students, total, query.TotalPages(total, page.PageSize))
}

// UpdateStudentStatus moves a student through the
// Pending/Approved/Rejected lifecycle; approval stamps the check-in
// date.
func UpdateStudentStatus(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid student id")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required,oneof=Pending Approved Rejected"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid status payload: "+err.Error())
		return
	}

	var student models.HostelStudent
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "student not found")
		} else {
			logrus.WithError(err).Error("update student status: fetch failed")
			response.Internal(c, "Error updating student")
		}
		return
	}

	student.Status = body.Status
	if body.Status == models.StatusApproved && student.CheckInDate == nil {
		now := time.Now()
		student.CheckInDate = &now
	}

	if err := config.DB.Save(&student).Error; err != nil {
		logrus.WithError(err).Error("update student status: save failed")
		response.Internal(c, "Error updating student")
		return
	}

	response.OK(c, "student status updated", student)
}
