package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/middleware"
	"hostelhub/internal/models"
	"hostelhub/internal/response"
)

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role"`

	// Student self-registration fields
	HostelID      uint   `json:"hostel_id"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
	Course        string `json:"course"`
	AcademicYear  string `json:"academic_year"`
}

// SignupUser registers a new account. Students get a paired
// HostelStudent profile in Pending state, created in the same
// transaction as the credential row.
func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid signup payload: "+err.Error())
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	input.Role = role

	if role == models.RoleStudent && input.HostelID == 0 {
		response.BadRequest(c, "hostel_id is required for student signup")
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		response.Internal(c, "could not hash password")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		response.Internal(c, "Error creating account")
		return
	}

	auth, err := createAuthRecord(tx, input, hashedPassword)
	if err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			response.Fail(c, http.StatusConflict, "email or phone already exists")
			return
		}
		logrus.WithError(err).Error("signup: failed to create auth record")
		response.Internal(c, "Error creating account")
		return
	}

	if err := createProfileRecord(tx, &auth, input); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "hostel with the provided hostel_id does not exist")
			return
		}
		logrus.WithError(err).Error("signup: failed to create profile record")
		response.Internal(c, "Error creating account")
		return
	}

	if err := tx.Commit().Error; err != nil {
		logrus.WithError(err).Error("signup: commit failed")
		response.Internal(c, "Error creating account")
		return
	}

	token, err := middleware.GenerateToken(auth.ID, auth.Role, derefHostelID(auth.HostelID), auth.AcademicYear)
	if err != nil {
		response.Internal(c, "could not generate token")
		return
	}

	response.Created(c, "account created", gin.H{
		"token": token,
		"user":  prepareAuthResponse(auth),
	})
}

// LoginUser authenticates by email and password and issues a token whose
// claims carry the caller's hostel scope.
func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var auth models.Auth
	query := config.DB.Where("email = ?", body.Email).
		Preload("Admin").
		Preload("Student")

	if err := query.First(&auth).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusUnauthorized, "user not found or invalid credentials")
		} else {
			logrus.WithError(err).Error("login: database error")
			response.Internal(c, "Error logging in")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(auth.Password), []byte(body.Password)); err != nil {
		response.Fail(c, http.StatusUnauthorized, "incorrect password")
		return
	}

	// Admin accounts deactivated by the super admin cannot log in.
	if auth.Role == models.RoleAdmin && !auth.Verified {
		response.Fail(c, http.StatusUnauthorized, "account is deactivated")
		return
	}

	token, err := middleware.GenerateToken(auth.ID, auth.Role, derefHostelID(auth.HostelID), auth.AcademicYear)
	if err != nil {
		response.Internal(c, "could not generate token")
		return
	}

	response.OK(c, "login successful", gin.H{
		"token": token,
		"user":  prepareAuthResponse(auth),
	})
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.TrimSpace(roleInput)
	if role == "" {
		role = models.RoleStudent
	}
	switch role {
	case models.RoleStudent, models.RoleUser:
		return role, nil
	case models.RoleAdmin, models.RoleSuperAdmin:
		// Privileged accounts are provisioned by the super admin, never
		// through public signup.
		return "", errors.New("role cannot be self-registered")
	default:
		return "", errors.New("invalid role")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// isUniqueViolation reports whether err is a duplicate-key error, either
// as Postgres code 23505 or GORM's translated form.
func isUniqueViolation(err error) bool {
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

func createAuthRecord(tx *gorm.DB, input signupInput, hashedPassword string) (models.Auth, error) {
	auth := models.Auth{
		Name:         input.Name,
		Email:        input.Email,
		Password:     hashedPassword,
		Phone:        input.Phone,
		Role:         input.Role,
		AcademicYear: input.AcademicYear,
	}
	if input.Role == models.RoleStudent {
		auth.HostelID = &input.HostelID
	}
	if err := tx.Create(&auth).Error; err != nil {
		return models.Auth{}, err
	}
	return auth, nil
}

func createProfileRecord(tx *gorm.DB, auth *models.Auth, input signupInput) error {
	if auth.Role != models.RoleStudent {
		return nil
	}

	var hostel models.Hostel
	if err := tx.First(&hostel, input.HostelID).Error; err != nil {
		return err
	}

	student := models.HostelStudent{
		AuthID:        auth.ID,
		HostelID:      input.HostelID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		GuardianName:  input.GuardianName,
		GuardianPhone: input.GuardianPhone,
		Course:        input.Course,
		AcademicYear:  input.AcademicYear,
		Status:        models.StatusPending,
	}
	if err := tx.Create(&student).Error; err != nil {
		return err
	}
	auth.Student = &student
	return nil
}

func derefHostelID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func prepareAuthResponse(auth models.Auth) gin.H {
	resp := gin.H{
		"ID":            auth.ID,
		"CreatedAt":     auth.CreatedAt,
		"name":          auth.Name,
		"email":         auth.Email,
		"phone":         auth.Phone,
		"role":          auth.Role,
		"verified":      auth.Verified,
		"academic_year": auth.AcademicYear,
	}
	if auth.HostelID != nil {
		resp["hostel_id"] = *auth.HostelID
	}
	if auth.Admin != nil {
		resp["admin"] = gin.H{
			"ID":          auth.Admin.ID,
			"hostel_id":   auth.Admin.HostelID,
			"designation": auth.Admin.Designation,
		}
	}
	if auth.Student != nil {
		resp["student"] = gin.H{
			"ID":        auth.Student.ID,
			"hostel_id": auth.Student.HostelID,
			"status":    auth.Student.Status,
			"room_id":   auth.Student.RoomID,
		}
	}
	return resp
}
