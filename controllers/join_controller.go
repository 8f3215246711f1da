package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oakmeet/meetup_backend/joins"
)

type HandleRequestInput struct {
	Action string `json:"action" binding:"required,oneof=accept reject" example:"accept"`
}

// JoinController exposes the join-request workflow over HTTP.
type JoinController struct {
	coordinator *joins.Coordinator
}

func NewJoinController(coordinator *joins.Coordinator) *JoinController {
	return &JoinController{coordinator: coordinator}
}

// RequestJoin godoc
// @Summary Request to join an activity
// @Description Files a pending join request for the authenticated user
// @Tags joins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 201 {object} map[string]interface{} "Request created"
// @Failure 400 {object} map[string]string "Invalid activity ID"
// @Failure 404 {object} map[string]string "Activity not found"
// @Failure 409 {object} map[string]string "Already participant, duplicate request, or activity full"
// @Router /api/activities/{id}/join [post]
func (jc *JoinController) RequestJoin(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	request, err := jc.coordinator.RequestJoin(c.Request.Context(), userID, uint(activityID))
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"message": "Your request to join has been sent",
			"request": request,
		})
	case errors.Is(err, joins.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
	case errors.Is(err, joins.ErrAlreadyParticipant):
		c.JSON(http.StatusConflict, gin.H{"error": "You are already a participant in this activity"})
	case errors.Is(err, joins.ErrDuplicatePending):
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a request for this activity"})
	case errors.Is(err, joins.ErrActivityFull):
		c.JSON(http.StatusConflict, gin.H{"error": "This activity is already full"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create join request"})
	}
}

// GetPendingRequests godoc
// @Summary List pending requests for the user's activities
// @Description Returns pending join requests across all activities owned by the authenticated user
// @Tags joins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Pending requests"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/requests [get]
func (jc *JoinController) GetPendingRequests(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	requests, err := jc.coordinator.PendingForOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// HandleRequest godoc
// @Summary Accept or reject a join request
// @Description Resolves a pending request; only the activity owner may act. An accept against a full activity resolves as rejected.
// @Tags joins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param decision body HandleRequestInput true "Decision"
// @Success 200 {object} map[string]interface{} "Request resolved"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not the activity owner"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Already handled or activity full"
// @Router /api/requests/{id} [post]
func (jc *JoinController) HandleRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input HandleRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := jc.coordinator.HandleRequest(c.Request.Context(), userID, uint(requestID), joins.Action(input.Action))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": "Request " + request.Status,
			"request": request,
		})
	case errors.Is(err, joins.ErrActivityFullAtAcceptance):
		// The request was resolved as rejected because the activity
		// filled up after it was filed.
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot accept request: activity is full",
			"request": request,
		})
	case errors.Is(err, joins.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
	case errors.Is(err, joins.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the activity owner can handle requests"})
	case errors.Is(err, joins.ErrAlreadyHandled):
		c.JSON(http.StatusConflict, gin.H{"error": "Request has already been handled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to handle request"})
	}
}
