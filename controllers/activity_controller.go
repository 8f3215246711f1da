package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oakmeet/meetup_backend/database"
	"github.com/oakmeet/meetup_backend/models"
)

// PageSize is the number of activities per listing page.
var PageSize = 5

type CreateActivityInput struct {
	Title           string    `json:"title" binding:"required" example:"Sunday five-a-side"`
	Description     string    `json:"description"`
	CategoryID      *uint     `json:"category_id"`
	DateTime        time.Time `json:"date_time" binding:"required"`
	Location        string    `json:"location" binding:"required"`
	MaxParticipants int       `json:"max_participants" binding:"required,gt=0" example:"10"`
}

type UpdateActivityInput struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CategoryID      *uint      `json:"category_id"`
	DateTime        *time.Time `json:"date_time"`
	Location        string     `json:"location"`
	MaxParticipants int        `json:"max_participants" binding:"omitempty,gt=0"`
}

// GetActivities godoc
// @Summary List activities
// @Description Lists activities with optional search, category filter, sorting and pagination
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search in title and description"
// @Param category query string false "Category name filter"
// @Param sort query string false "Sort order: time or almost_full"
// @Param page query int false "Page number"
// @Success 200 {object} map[string]interface{} "List of activities"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/activities [get]
func GetActivities(c *gin.Context) {
	query := database.DB.Model(&models.Activity{}).Preload("Owner").Preload("Category")

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = activities.category_id").
			Where("LOWER(categories.name) = LOWER(?)", category)
	}

	switch c.Query("sort") {
	case "time":
		query = query.Order("date_time ASC")
	case "almost_full":
		// Fill ratio = participants / capacity, fullest first.
		query = query.
			Select("activities.*, (SELECT COUNT(*) FROM activity_participants ap WHERE ap.activity_id = activities.id) * 1.0 / activities.max_participants AS fill_ratio").
			Order("fill_ratio DESC")
	default:
		query = query.Order("activities.created_at DESC")
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	var activities []models.Activity
	if err := query.Offset((page - 1) * PageSize).Limit(PageSize).Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"page":       page,
		"total":      total,
	})
}

// GetHotActivities godoc
// @Summary List top-rated activities
// @Description Returns the six activities with the highest average rating
// @Tags activities
// @Produce json
// @Success 200 {object} map[string]interface{} "Top activities"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/activities/hot [get]
func GetHotActivities(c *gin.Context) {
	type hotActivity struct {
		ID        uint     `json:"id"`
		Title     string   `json:"title"`
		AvgRating *float64 `json:"avg_rating"`
	}

	var hot []hotActivity
	if err := database.DB.Model(&models.Activity{}).
		Select("activities.id, activities.title, AVG(ratings.score) AS avg_rating").
		Joins("LEFT JOIN ratings ON ratings.activity_id = activities.id").
		Group("activities.id, activities.title").
		Order("avg_rating DESC NULLS LAST").
		Limit(6).
		Scan(&hot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": hot})
}

// CreateActivity godoc
// @Summary Create an activity
// @Description Creates an activity; the creator becomes the owner and the first participant
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activity body CreateActivityInput true "Activity"
// @Success 201 {object} map[string]interface{} "Activity created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/activities [post]
func CreateActivity(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity := models.Activity{
		OwnerID:         userID,
		Title:           input.Title,
		Description:     input.Description,
		CategoryID:      input.CategoryID,
		DateTime:        input.DateTime,
		Location:        input.Location,
		MaxParticipants: input.MaxParticipants,
		Status:          "active",
	}

	if err := database.DB.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	// The creator joins their own activity immediately.
	participant := models.ActivityParticipant{ActivityID: activity.ID, UserID: userID}
	if err := database.DB.Create(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add creator as participant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Activity created successfully",
		"activity": activity,
	})
}

// GetActivity godoc
// @Summary Get activity detail
// @Description Returns one activity with its participants and comments
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{} "Activity detail"
// @Failure 400 {object} map[string]string "Invalid activity ID"
// @Failure 404 {object} map[string]string "Activity not found"
// @Router /api/activities/{id} [get]
func GetActivity(c *gin.Context) {
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	var activity models.Activity
	if err := database.DB.Preload("Owner").Preload("Category").Preload("Participants").
		First(&activity, activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	var comments []models.Comment
	if err := database.DB.Where("activity_id = ?", activityID).
		Preload("User").Order("created_at DESC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity": activity,
		"comments": comments,
	})
}

// UpdateActivity godoc
// @Summary Update an activity
// @Description Updates activity fields; only the owner may update
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Param activity body UpdateActivityInput true "Fields to update"
// @Success 200 {object} map[string]interface{} "Activity updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Activity not found"
// @Router /api/activities/{id} [put]
func UpdateActivity(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	var activity models.Activity
	if err := database.DB.First(&activity, activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	if activity.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the activity owner can update it"})
		return
	}

	var input UpdateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != "" {
		activity.Title = input.Title
	}
	if input.Description != "" {
		activity.Description = input.Description
	}
	if input.CategoryID != nil {
		activity.CategoryID = input.CategoryID
	}
	if input.DateTime != nil {
		activity.DateTime = *input.DateTime
	}
	if input.Location != "" {
		activity.Location = input.Location
	}
	if input.MaxParticipants > 0 {
		activity.MaxParticipants = input.MaxParticipants
	}

	if err := database.DB.Save(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity updated successfully", "activity": activity})
}

// GetCategories godoc
// @Summary List categories
// @Tags activities
// @Produce json
// @Success 200 {object} map[string]interface{} "Categories"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/categories [get]
func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
