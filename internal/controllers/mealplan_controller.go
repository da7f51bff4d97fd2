package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hostelhub/internal/config"
	"hostelhub/internal/guard"
	"hostelhub/internal/models"
	"hostelhub/internal/query"
	"hostelhub/internal/response"
)

type mealPlanInput struct {
	Day           string     `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	MealType      string     `json:"meal_type" binding:"required,oneof=Breakfast Lunch Dinner"`
	Items         string     `json:"items" binding:"required"`
	EffectiveFrom *time.Time `json:"effective_from"`
}

// AddMealPlan creates one menu slot of the caller's hostel week.
func AddMealPlan(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	var input mealPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid meal plan payload: "+err.Error())
		return
	}

	plan := models.MealPlan{
		HostelID:      ident.HostelID,
		Day:           input.Day,
		MealType:      input.MealType,
		Items:         input.Items,
		Status:        "Active",
		EffectiveFrom: input.EffectiveFrom,
	}
	if err := config.DB.Create(&plan).Error; err != nil {
		logrus.WithError(err).Error("add meal plan: create failed")
		response.Internal(c, "Error adding meal plan")
		return
	}

	response.Created(c, "meal plan added", plan)
}

// UpdateMealPlan edits a menu slot.
func UpdateMealPlan(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid meal plan id")
		return
	}

	var plan models.MealPlan
	if err := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "meal plan not found")
		} else {
			logrus.WithError(err).Error("update meal plan: fetch failed")
			response.Internal(c, "Error updating meal plan")
		}
		return
	}

	var input struct {
		Day           *string    `json:"day"`
		MealType      *string    `json:"meal_type"`
		Items         *string    `json:"items"`
		Status        *string    `json:"status"`
		EffectiveFrom *time.Time `json:"effective_from"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid meal plan payload: "+err.Error())
		return
	}

	if input.Day != nil {
		plan.Day = *input.Day
	}
	if input.MealType != nil {
		plan.MealType = *input.MealType
	}
	if input.Items != nil {
		plan.Items = *input.Items
	}
	if input.Status != nil {
		plan.Status = *input.Status
	}
	if input.EffectiveFrom != nil {
		plan.EffectiveFrom = input.EffectiveFrom
	}

	if err := config.DB.Save(&plan).Error; err != nil {
		logrus.WithError(err).Error("update meal plan: save failed")
		response.Internal(c, "Error updating meal plan")
		return
	}

	response.OK(c, "meal plan updated", plan)
}

// DeleteMealPlan removes a menu slot.
func DeleteMealPlan(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid meal plan id")
		return
	}

	res := config.DB.Where("id = ? AND hostel_id = ?", uint(id), ident.HostelID).Delete(&models.MealPlan{})
	if res.Error != nil {
		logrus.WithError(res.Error).Error("delete meal plan: delete failed")
		response.Internal(c, "Error deleting meal plan")
		return
	}
	if res.RowsAffected == 0 {
		response.NotFound(c, "meal plan not found")
		return
	}

	response.OK(c, "meal plan deleted", nil)
}

// ListMealPlans pages through the hostel menu with day/mealType/status
// filters.
func ListMealPlans(c *gin.Context) {
	ident, ok := guard.Admin(c)
	if !ok {
		response.NotAuthorized(c)
		return
	}
	listMealPlansFor(c, ident.HostelID)
}

func listMealPlansFor(c *gin.Context, hostelID uint) {
	page := query.ParsePagination(c)

	base := config.DB.Model(&models.MealPlan{}).Where("hostel_id = ?", hostelID)
	base = query.Search(base, c.Query("search"), "items")
	base = query.Filter(base, "day", c.Query("day"))
	base = query.Filter(base, "meal_type", c.Query("mealType"))
	base = query.Filter(base, "status", c.Query("status"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("list meal plans: count failed")
		response.Internal(c, "Error listing meal plans")
		return
	}

	var plans []models.MealPlan
	if err := base.Order("created_at DESC").
		Limit(page.PageSize).Offset(page.Offset()).
		Find(&plans).Error; err != nil {
		logrus.WithError(err).Error("list meal plans: query failed")
		response.Internal(c, "Error listing meal plans")
		return
	}

	response.Paged(c, plans, total, query.TotalPages(total, page.PageSize))
}
