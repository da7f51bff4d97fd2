package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub/internal/models"
)

func TestAddRoomDuplicateNumberWithinHostel(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	ctx, w := newTestContext(t, http.MethodPost, "/admin/rooms", map[string]interface{}{"room_no": "101", "capacity": 2})
	asAdmin(ctx, 1, hostel.ID)
	AddRoom(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	ctx, w = newTestContext(t, http.MethodPost, "/admin/rooms", map[string]interface{}{"room_no": "101", "capacity": 4})
	asAdmin(ctx, 1, hostel.ID)
	AddRoom(ctx)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.EqualValues(t, 1, mustCount(t, db, &models.HostelRoom{}))
}

func TestAddRoomSameNumberDifferentHostel(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)
	other := models.Hostel{Code: "OTHER", Name: "Other"}
	require.NoError(t, db.Create(&other).Error)

	ctx, w := newTestContext(t, http.MethodPost, "/admin/rooms", map[string]interface{}{"room_no": "101"})
	asAdmin(ctx, 1, hostel.ID)
	AddRoom(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	// Room numbers are unique per hostel, not globally.
	ctx, w = newTestContext(t, http.MethodPost, "/admin/rooms", map[string]interface{}{"room_no": "101"})
	asAdmin(ctx, 2, other.ID)
	AddRoom(ctx)
	require.True(t, decodeEnvelope(t, w).Success)

	assert.EqualValues(t, 2, mustCount(t, db, &models.HostelRoom{}))
}

func TestDeleteRoomRefusedWhileOccupied(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)

	room := models.HostelRoom{HostelID: hostel.ID, RoomNo: "101", Capacity: 2}
	require.NoError(t, db.Create(&room).Error)
	require.NoError(t, db.Create(&models.HostelStudent{
		AuthID:   1,
		HostelID: hostel.ID,
		RoomID:   &room.ID,
		Name:     "Resident",
		Email:    "r@x.com",
		Phone:    "123",
		Status:   models.StatusApproved,
	}).Error)

	ctx, w := newTestContext(t, http.MethodDelete, fmt.Sprintf("/admin/rooms/%d", room.ID), nil)
	asAdmin(ctx, 1, hostel.ID)
	withParam(ctx, "id", room.ID)
	DeleteRoom(ctx)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.EqualValues(t, 1, mustCount(t, db, &models.HostelRoom{}))
}

func TestUpdateRoomOtherHostelNotFound(t *testing.T) {
	db := setupTestDB(t)
	hostel := seedHostel(t, db)
	other := models.Hostel{Code: "OTHER", Name: "Other"}
	require.NoError(t, db.Create(&other).Error)

	room := models.HostelRoom{HostelID: other.ID, RoomNo: "101"}
	require.NoError(t, db.Create(&room).Error)

	ctx, w := newTestContext(t, http.MethodPut, fmt.Sprintf("/admin/rooms/%d", room.ID), map[string]interface{}{"capacity": 4})
	asAdmin(ctx, 1, hostel.ID)
	withParam(ctx, "id", room.ID)
	UpdateRoom(ctx)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
