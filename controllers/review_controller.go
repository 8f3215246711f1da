package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oakmeet/meetup_backend/database"
	"github.com/oakmeet/meetup_backend/models"
	"gorm.io/gorm"
)

type AddCommentInput struct {
	Content string `json:"content" binding:"required"`
}

type AddReviewInput struct {
	Rating     int    `json:"rating" binding:"required,gte=1,lte=5" example:"4"`
	ReviewText string `json:"review_text" binding:"required"`
}

// AddComment godoc
// @Summary Comment on an activity
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Param comment body AddCommentInput true "Comment"
// @Success 201 {object} map[string]interface{} "Comment added"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Activity not found"
// @Router /api/activities/{id}/comments [post]
func AddComment(c *gin.Context) {
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

	var input AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{
		UserID:     userID,
		ActivityID: uint(activityID),
		Content:    input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added successfully", "comment": comment})
}

// AddReview godoc
// @Summary Rate and review an activity
// @Description Creates the user's review for the activity, or updates it if one exists
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Param review body AddReviewInput true "Review"
// @Success 200 {object} map[string]interface{} "Review saved"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Activity not found"
// @Router /api/activities/{id}/reviews [post]
func AddReview(c *gin.Context) {
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

	var input AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// One review per user per activity: update in place if it exists.
	var review models.Rating
	err = database.DB.Where("user_id = ? AND activity_id = ?", userID, activityID).First(&review).Error
	switch {
	case err == nil:
		review.Score = input.Rating
		review.ReviewText = input.ReviewText
		if err := database.DB.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Your review has been updated", "review": review})
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Rating{
			UserID:     userID,
			ActivityID: uint(activityID),
			Score:      input.Rating,
			ReviewText: input.ReviewText,
		}
		if err := database.DB.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Your review has been submitted", "review": review})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
	}
}

// GetReviews godoc
// @Summary List reviews for an activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{} "Reviews"
// @Failure 400 {object} map[string]string "Invalid activity ID"
// @Router /api/activities/{id}/reviews [get]
func GetReviews(c *gin.Context) {
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	var reviews []models.Rating
	if err := database.DB.Where("activity_id = ?", activityID).
		Preload("User").Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
