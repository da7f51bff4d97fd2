package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hostelhub/internal/models"
)

func addAdminPayload(hostelID uint, name, email, phone string) map[string]interface{} {
	return map[string]interface{}{
		"name":      name,
		"email":     email,
		"phone":     phone,
		"password":  "secret123",
		"hostel_id": hostelID,
	}
}

func seedAdmin(t *testing.T, db *gorm.DB, hostelID uint, email, phone string) models.Admin {
	t.Helper()

	ctx, w := newTestContext(t, http.MethodPost, "/superadmin/admins", addAdminPayload(hostelID, "Warden", email, phone))
	asSuperAdmin(ctx, 1)
	AddAdmin(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	var admin models.Admin
	require.NoError(t, db.Where("email = ?", email).First(&admin).Error)
	return admin
}

func TestAddAdminRejectsEmailAlreadyInAuth(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	// A student account already holds the email in the credentials table.
	require.NoError(t, db.Create(&models.Auth{
		Name:     "Existing Student",
		Email:    "taken@x.com",
		Phone:    "1112223333",
		Password: "x",
		Role:     models.RoleStudent,
		HostelID: &hostel.ID,
	}).Error)

	ctx, w := newTestContext(t, http.MethodPost, "/superadmin/admins", addAdminPayload(hostel.ID, "Warden", "taken@x.com", "4445556666"))
	asSuperAdmin(ctx, 1)
	AddAdmin(ctx)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "already exists")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Uniqueness spans both tables: no admin row, no second auth row.
	assert.EqualValues(t, 0, mustCount(t, db, &models.Admin{}))
	assert.EqualValues(t, 1, mustCount(t, db, &models.Auth{}))
}

func TestAddAdminRequiresExistingHostel(t *testing.T) {
	db := setupTestDB(t)

	ctx, w := newTestContext(t, http.MethodPost, "/superadmin/admins", addAdminPayload(42, "Warden", "w@x.com", "1234567890"))
	asSuperAdmin(ctx, 1)
	AddAdmin(ctx)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "does not exist")
	assert.EqualValues(t, 0, mustCount(t, db, &models.Auth{}))
}

func TestAddAdminRejectsNonSuperAdminCaller(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	ctx, w := newTestContext(t, http.MethodPost, "/superadmin/admins", addAdminPayload(hostel.ID, "Warden", "w@x.com", "1234567890"))
	asAdmin(ctx, 1, hostel.ID)
	AddAdmin(ctx)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.EqualValues(t, 0, mustCount(t, db, &models.Admin{}))
}

func TestUpdateAdminMirrorsAuthFields(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)
	admin := seedAdmin(t, db, hostel.ID, "warden@x.com", "1234567890")

	ctx, w := newTestContext(t, http.MethodPut, fmt.Sprintf("/superadmin/admins/%d", admin.ID), map[string]interface{}{
		"phone": "0987654321",
		"email": "head@x.com",
	})
	asSuperAdmin(ctx, 1)
	withParam(ctx, "id", admin.ID)
	UpdateAdmin(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	var auth models.Auth
	require.NoError(t, db.First(&auth, admin.AuthID).Error)
	assert.Equal(t, "0987654321", auth.Phone)
	assert.Equal(t, "head@x.com", auth.Email)

	require.NoError(t, db.First(&admin, admin.ID).Error)
	assert.Equal(t, "0987654321", admin.Phone)
	assert.Equal(t, "head@x.com", admin.Email)
}

func TestToggleAdminStatusFlipsAuthVerified(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)
	admin := seedAdmin(t, db, hostel.ID, "warden@x.com", "1234567890")

	var auth models.Auth
	require.NoError(t, db.First(&auth, admin.AuthID).Error)
	require.True(t, auth.Verified, "a freshly provisioned admin starts active")

	ctx, w := newTestContext(t, http.MethodPatch, fmt.Sprintf("/superadmin/admins/%d/status", admin.ID), nil)
	asSuperAdmin(ctx, 1)
	withParam(ctx, "id", admin.ID)
	ToggleAdminStatus(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	require.NoError(t, db.First(&auth, admin.AuthID).Error)
	assert.False(t, auth.Verified)

	// Toggling again restores the flag.
	ctx, w = newTestContext(t, http.MethodPatch, fmt.Sprintf("/superadmin/admins/%d/status", admin.ID), nil)
	asSuperAdmin(ctx, 1)
	withParam(ctx, "id", admin.ID)
	ToggleAdminStatus(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	require.NoError(t, db.First(&auth, admin.AuthID).Error)
	assert.True(t, auth.Verified)
}

func TestDeleteAdminRemovesBothRows(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)
	admin := seedAdmin(t, db, hostel.ID, "warden@x.com", "1234567890")

	ctx, w := newTestContext(t, http.MethodDelete, fmt.Sprintf("/superadmin/admins/%d", admin.ID), nil)
	asSuperAdmin(ctx, 1)
	withParam(ctx, "id", admin.ID)
	DeleteAdmin(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	assert.EqualValues(t, 0, mustCount(t, db, &models.Admin{}))
	assert.EqualValues(t, 0, mustCount(t, db, &models.Auth{}))
}

func TestListAdminsHostelFilterAllEqualsOmitted(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)
	other := models.Hostel{Code: "OTHER", Name: "Other Hostel"}
	require.NoError(t, db.Create(&other).Error)

	seedAdmin(t, db, hostel.ID, "warden1@x.com", "1111111111")
	seedAdmin(t, db, other.ID, "warden2@x.com", "2222222222")

	ctx, w := newTestContext(t, http.MethodGet, fmt.Sprintf("/superadmin/admins?hostelId=%d", hostel.ID), nil)
	asSuperAdmin(ctx, 1)
	ListAdmins(ctx)
	narrowed := decodeEnvelope(t, w)
	require.True(t, narrowed.Success, narrowed.Message)
	assert.EqualValues(t, 1, narrowed.Total)

	ctx, w = newTestContext(t, http.MethodGet, "/superadmin/admins?hostelId=All", nil)
	asSuperAdmin(ctx, 1)
	ListAdmins(ctx)
	all := decodeEnvelope(t, w)
	require.True(t, all.Success, all.Message)
	assert.EqualValues(t, 2, all.Total)

	ctx, w = newTestContext(t, http.MethodGet, "/superadmin/admins", nil)
	asSuperAdmin(ctx, 1)
	ListAdmins(ctx)
	omitted := decodeEnvelope(t, w)
	require.True(t, omitted.Success, omitted.Message)
	assert.Equal(t, all.Total, omitted.Total)
}
