package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oakmeet/meetup_backend/database"
	"github.com/oakmeet/meetup_backend/models"
)

type CreateReportInput struct {
	IssueType int    `json:"issue_type" binding:"required,gte=1,lte=4" example:"1"`
	Detail    string `json:"detail" binding:"required"`
}

// CreateReport godoc
// @Summary Report an issue
// @Description Files an issue report (1=bug, 2=feedback, 3=suggestion, 4=other)
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param report body CreateReportInput true "Report"
// @Success 201 {object} map[string]interface{} "Report submitted"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/reports [post]
func CreateReport(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := models.IssueReport{
		UserID:    userID,
		IssueType: input.IssueType,
		Detail:    input.Detail,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Your report has been submitted successfully", "report": report})
}
