package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hostelhub/internal/models"
)

func addStudentPayload(name, email, phone string) map[string]interface{} {
	return map[string]interface{}{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": "secret123",
	}
}

func TestAddStudentThenDuplicatePhone(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	ctx, w := newTestContext(t, http.MethodPost, "/admin/students", addStudentPayload("Jane Doe", "jane@x.com", "9999999999"))
	asAdmin(ctx, 1, hostel.ID)
	AddStudent(ctx)

	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "first add should succeed: %s", env.Message)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same phone, different email: must fail with an "already exists"
	// message and create no further rows.
	ctx, w = newTestContext(t, http.MethodPost, "/admin/students", addStudentPayload("John Doe", "john@x.com", "9999999999"))
	asAdmin(ctx, 1, hostel.ID)
	AddStudent(ctx)

	env = decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "already exists")
	assert.EqualValues(t, 1, mustCount(t, db, &models.HostelStudent{}))
	assert.EqualValues(t, 1, mustCount(t, db, &models.Auth{}))
}

func TestAddStudentCreatesPairedAuth(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	ctx, w := newTestContext(t, http.MethodPost, "/admin/students", addStudentPayload("Jane Doe", "jane@x.com", "9999999999"))
	asAdmin(ctx, 1, hostel.ID)
	AddStudent(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	var student models.HostelStudent
	require.NoError(t, db.First(&student).Error)

	var auth models.Auth
	require.NoError(t, db.First(&auth, student.AuthID).Error)
	assert.Equal(t, models.RoleStudent, auth.Role)
	assert.Equal(t, "jane@x.com", auth.Email)
	require.NotNil(t, auth.HostelID)
	assert.Equal(t, hostel.ID, *auth.HostelID)
}

func TestGuardedOperationsRejectMissingSession(t *testing.T) {
	db := setupTestDB(t)

	calls := []struct {
		name   string
		invoke func() envelope
	}{
		{"AddStudent", func() envelope {
			ctx, w := newTestContext(t, http.MethodPost, "/admin/students", addStudentPayload("A", "a@x.com", "1"))
			AddStudent(ctx)
			return decodeEnvelope(t, w)
		}},
		{"ListStudents", func() envelope {
			ctx, w := newTestContext(t, http.MethodGet, "/admin/students", nil)
			ListStudents(ctx)
			return decodeEnvelope(t, w)
		}},
		{"DeleteStudent", func() envelope {
			ctx, w := newTestContext(t, http.MethodDelete, "/admin/students/1", nil)
			withParam(ctx, "id", 1)
			DeleteStudent(ctx)
			return decodeEnvelope(t, w)
		}},
		{"AddAdmin", func() envelope {
			ctx, w := newTestContext(t, http.MethodPost, "/superadmin/admins", nil)
			AddAdmin(ctx)
			return decodeEnvelope(t, w)
		}},
		{"AddRoom", func() envelope {
			ctx, w := newTestContext(t, http.MethodPost, "/admin/rooms", map[string]interface{}{"room_no": "101"})
			AddRoom(ctx)
			return decodeEnvelope(t, w)
		}},
		{"RecordPayment", func() envelope {
			ctx, w := newTestContext(t, http.MethodPost, "/superadmin/payments", map[string]interface{}{
				"hostel_id": 1, "amount": 10.0, "method": "Cash",
			})
			RecordPayment(ctx)
			return decodeEnvelope(t, w)
		}},
	}

	for _, call := range calls {
		env := call.invoke()
		assert.False(t, env.Success, "%s must reject a missing session", call.name)
	}

	// No guard passed, so nothing may have been written.
	assert.EqualValues(t, 0, mustCount(t, db, &models.Auth{}))
	assert.EqualValues(t, 0, mustCount(t, db, &models.HostelStudent{}))
	assert.EqualValues(t, 0, mustCount(t, db, &models.Admin{}))
	assert.EqualValues(t, 0, mustCount(t, db, &models.HostelRoom{}))
	assert.EqualValues(t, 0, mustCount(t, db, &models.Payment{}))
}

func TestDeleteStudentRemovesBothRows(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	ctx, w := newTestContext(t, http.MethodPost, "/admin/students", addStudentPayload("Jane Doe", "jane@x.com", "9999999999"))
	asAdmin(ctx, 1, hostel.ID)
	AddStudent(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	var student models.HostelStudent
	require.NoError(t, db.First(&student).Error)

	ctx, w = newTestContext(t, http.MethodDelete, fmt.Sprintf("/admin/students/%d", student.ID), nil)
	asAdmin(ctx, 1, hostel.ID)
	withParam(ctx, "id", student.ID)
	DeleteStudent(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	assert.EqualValues(t, 0, mustCount(t, db, &models.HostelStudent{}))
	assert.EqualValues(t, 0, mustCount(t, db, &models.Auth{}))
}

func TestDeleteStudentRollsBackWhenAuthDeleteFails(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	ctx, w := newTestContext(t, http.MethodPost, "/admin/students", addStudentPayload("Jane Doe", "jane@x.com", "9999999999"))
	asAdmin(ctx, 1, hostel.ID)
	AddStudent(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	var student models.HostelStudent
	require.NoError(t, db.First(&student).Error)

	// Force the second statement of the delete transaction to fail.
	err := db.Callback().Delete().Before("gorm:delete").Register("force_auth_delete_failure", func(tx *gorm.DB) {
		if tx.Statement.Table == "auths" {
			tx.AddError(errors.New("forced failure"))
		}
	})
	require.NoError(t, err)
	defer db.Callback().Delete().Remove("force_auth_delete_failure")

	ctx, w = newTestContext(t, http.MethodDelete, fmt.Sprintf("/admin/students/%d", student.ID), nil)
	asAdmin(ctx, 1, hostel.ID)
	withParam(ctx, "id", student.ID)
	DeleteStudent(ctx)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)

	// Neither row may be gone.
	assert.EqualValues(t, 1, mustCount(t, db, &models.HostelStudent{}))
	assert.EqualValues(t, 1, mustCount(t, db, &models.Auth{}))
}

func TestUpdateStudentMirrorsAuthFields(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	ctx, w := newTestContext(t, http.MethodPost, "/admin/students", addStudentPayload("Jane Doe", "jane@x.com", "9999999999"))
	asAdmin(ctx, 1, hostel.ID)
	AddStudent(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	var student models.HostelStudent
	require.NoError(t, db.First(&student).Error)

	ctx, w = newTestContext(t, http.MethodPut, fmt.Sprintf("/admin/students/%d", student.ID), map[string]interface{}{
		"phone": "8888888888",
		"name":  "Jane Smith",
	})
	asAdmin(ctx, 1, hostel.ID)
	withParam(ctx, "id", student.ID)
	UpdateStudent(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	var auth models.Auth
	require.NoError(t, db.First(&auth, student.AuthID).Error)
	assert.Equal(t, "8888888888", auth.Phone)
	assert.Equal(t, "Jane Smith", auth.Name)

	require.NoError(t, db.First(&student, student.ID).Error)
	assert.Equal(t, "8888888888", student.Phone)
	assert.Equal(t, "Jane Smith", student.Name)
}

func TestListStudentsStatusAllEqualsOmitted(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	for i := 0; i < 4; i++ {
		status := models.StatusApproved
		if i%2 == 1 {
			status = models.StatusPending
		}
		require.NoError(t, db.Create(&models.HostelStudent{
			AuthID:   uint(100 + i),
			HostelID: hostel.ID,
			Name:     fmt.Sprintf("Student %d", i),
			Email:    fmt.Sprintf("s%d@x.com", i),
			Phone:    fmt.Sprintf("555000%d", i),
			Status:   status,
		}).Error)
	}

	ctx, w := newTestContext(t, http.MethodGet, "/admin/students?status=All", nil)
	asAdmin(ctx, 1, hostel.ID)
	ListStudents(ctx)
	withAll := decodeEnvelope(t, w)
	require.True(t, withAll.Success)

	ctx, w = newTestContext(t, http.MethodGet, "/admin/students", nil)
	asAdmin(ctx, 1, hostel.ID)
	ListStudents(ctx)
	omitted := decodeEnvelope(t, w)
	require.True(t, omitted.Success)

	assert.Equal(t, omitted.Total, withAll.Total)
	assert.Equal(t, string(omitted.Data), string(withAll.Data))

	// A concrete status narrows the set.
	ctx, w = newTestContext(t, http.MethodGet, "/admin/students?status=Pending", nil)
	asAdmin(ctx, 1, hostel.ID)
	ListStudents(ctx)
	pending := decodeEnvelope(t, w)
	assert.EqualValues(t, 2, pending.Total)
}

func TestListStudentsPaginationContract(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.HostelStudent{
			AuthID:   uint(200 + i),
			HostelID: hostel.ID,
			Name:     fmt.Sprintf("Student %d", i),
			Email:    fmt.Sprintf("p%d@x.com", i),
			Phone:    fmt.Sprintf("556000%d", i),
			Status:   models.StatusApproved,
		}).Error)
	}

	ctx, w := newTestContext(t, http.MethodGet, "/admin/students?page=1&pageSize=3", nil)
	asAdmin(ctx, 1, hostel.ID)
	ListStudents(ctx)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	assert.EqualValues(t, 7, env.Total)
	assert.Equal(t, 3, env.TotalPages) // ceil(7/3)

	var pageData []models.HostelStudent
	require.NoError(t, json.Unmarshal(env.Data, &pageData))
	assert.LessOrEqual(t, len(pageData), 3)

	// Last page holds the remainder.
	ctx, w = newTestContext(t, http.MethodGet, "/admin/students?page=3&pageSize=3", nil)
	asAdmin(ctx, 1, hostel.ID)
	ListStudents(ctx)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &pageData))
	assert.Len(t, pageData, 1)
}

func TestListStudentsScopedToCallersHostel(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)
	other := models.Hostel{Code: "OTHER", Name: "Other Hostel"}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, db.Create(&models.HostelStudent{
		AuthID: 300, HostelID: hostel.ID, Name: "Mine", Email: "mine@x.com", Phone: "1", Status: models.StatusApproved,
	}).Error)
	require.NoError(t, db.Create(&models.HostelStudent{
		AuthID: 301, HostelID: other.ID, Name: "Theirs", Email: "theirs@x.com", Phone: "2", Status: models.StatusApproved,
	}).Error)

	ctx, w := newTestContext(t, http.MethodGet, "/admin/students", nil)
	asAdmin(ctx, 1, hostel.ID)
	ListStudents(ctx)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	assert.EqualValues(t, 1, env.Total)
}

func TestListStudentsRoomFilterAllEqualsOmitted(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	room := models.HostelRoom{HostelID: hostel.ID, RoomNo: "101", Type: "Double", Capacity: 2}
	require.NoError(t, db.Create(&room).Error)

	require.NoError(t, db.Create(&models.HostelStudent{
		AuthID: 400, HostelID: hostel.ID, RoomID: &room.ID,
		Name: "Roomed", Email: "roomed@x.com", Phone: "557000", Status: models.StatusApproved,
	}).Error)
	require.NoError(t, db.Create(&models.HostelStudent{
		AuthID: 401, HostelID: hostel.ID,
		Name: "Unassigned", Email: "unassigned@x.com", Phone: "557001", Status: models.StatusApproved,
	}).Error)

	ctx, w := newTestContext(t, http.MethodGet, fmt.Sprintf("/admin/students?roomId=%d", room.ID), nil)
	asAdmin(ctx, 1, hostel.ID)
	ListStudents(ctx)
	narrowed := decodeEnvelope(t, w)
	require.True(t, narrowed.Success, narrowed.Message)
	assert.EqualValues(t, 1, narrowed.Total)

	ctx, w = newTestContext(t, http.MethodGet, "/admin/students?roomId=All", nil)
	asAdmin(ctx, 1, hostel.ID)
	ListStudents(ctx)
	all := decodeEnvelope(t, w)
	require.True(t, all.Success, all.Message)
	assert.EqualValues(t, 2, all.Total)
}
