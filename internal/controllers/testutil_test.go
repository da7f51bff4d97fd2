package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostelhub/internal/config"
	"hostelhub/internal/models"
)

// envelope mirrors the wire shape every action returns.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
}

var testDBSeq int

// setupTestDB points config.DB at a fresh in-memory database. Each test
// gets its own schema; shared cache keeps it alive across connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDBSeq++
	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Auth{},
		&models.Hostel{},
		&models.Admin{},
		&models.HostelStudent{},
		&models.HostelRoom{},
		&models.TemporaryGuest{},
		&models.HostelAnnouncement{},
		&models.HostelEvent{},
		&models.MealPlan{},
		&models.ReportComplaint{},
		&models.ReportReply{},
		&models.Payment{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	config.DB = db
	return db
}

// newTestContext builds a Gin context with an optional JSON body and
// query string.
func newTestContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
	return ctx, w
}

// Claim helpers mimic what the JWT middleware stores; numbers arrive as
// float64 after the JSON round trip.

func asAdmin(ctx *gin.Context, authID, hostelID uint) {
	ctx.Set("auth_id", float64(authID))
	ctx.Set("role", models.RoleAdmin)
	ctx.Set("hostel_id", float64(hostelID))
	ctx.Set("academic_year", "2024-25")
}

func asSuperAdmin(ctx *gin.Context, authID uint) {
	ctx.Set("auth_id", float64(authID))
	ctx.Set("role", models.RoleSuperAdmin)
	ctx.Set("hostel_id", float64(0))
	ctx.Set("academic_year", "")
}

func asStudent(ctx *gin.Context, authID, hostelID uint) {
	ctx.Set("auth_id", float64(authID))
	ctx.Set("role", models.RoleStudent)
	ctx.Set("hostel_id", float64(hostelID))
	ctx.Set("academic_year", "2024-25")
}

func withParam(ctx *gin.Context, key string, value interface{}) {
	ctx.Params = append(ctx.Params, gin.Param{Key: key, Value: fmt.Sprint(value)})
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

// seedHostel inserts a tenant to hang test data off.
func seedHostel(t *testing.T, db *gorm.DB) models.Hostel {
	t.Helper()
	hostel := models.Hostel{Code: fmt.Sprintf("H-%d", testDBSeq), Name: "Test Hostel", Capacity: 100}
	if err := db.Create(&hostel).Error; err != nil {
		t.Fatalf("seed hostel: %v", err)
	}
	return hostel
}

func mustCount(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
