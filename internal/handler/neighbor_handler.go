package handler

import (
	"errors"
	"net/http"
	"time"

	"blogring/backend/internal/database"
	"blogring/backend/internal/hub"
	"blogring/backend/internal/models"
	"blogring/backend/internal/relation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NeighborRequestInput carries the optional greeting message.
type NeighborRequestInput struct {
	Message string `json:"message" binding:"max=255"`
}

// NeighborRequestResponse defines the structure for a neighbor request.
type NeighborRequestResponse struct {
	ID           uint      `json:"id"`
	FromUserID   uint      `json:"from_user_id"`
	FromUsername string    `json:"from_username"`
	FromUserPic  string    `json:"from_user_pic"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// SendNeighborRequest godoc
// @Summary      Send a neighbor request
// @Description  Sends a mutual-neighbor request to another user. Duplicate requests in either direction and requests between existing neighbors are rejected.
// @Tags         neighbors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                  true  "Target User ID"
// @Param        input body NeighborRequestInput false "Request message"
// @Success      201  {object}  NeighborRequestResponse
// @Failure      400  {object}  ErrorResponse "Cannot request yourself"
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Duplicate request or already neighbors"
// @Router       /neighbors/{id}/request [post]
func SendNeighborRequest(c *gin.Context) {
	targetUserID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input NeighborRequestInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := relation.Request(database.DB, currentUserID(c), targetUserID, input.Message)
	if err != nil {
		abortWithError(c, err)
		return
	}

	hub.GlobalHub.Notify(targetUserID, hub.Event{
		Type:    hub.EventNeighborRequest,
		Payload: gin.H{"request_id": request.ID, "from_user_id": request.FromUserID},
	})

	c.JSON(http.StatusCreated, newNeighborRequestResponse(*request))
}

// GetNeighborRequests godoc
// @Summary      List incoming neighbor requests
// @Description  Returns the pending requests sent to the current user.
// @Tags         neighbors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   NeighborRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /neighbors/requests [get]
func GetNeighborRequests(c *gin.Context) {
	var requests []models.NeighborRequest
	err := database.DB.
		Where("to_user_id = ? AND status = ?", currentUserID(c), models.NeighborPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	responses := make([]NeighborRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, newNeighborRequestResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}

// AcceptNeighborRequest godoc
// @Summary      Accept a neighbor request
// @Description  Accepts a pending request addressed to the current user and registers the mutual relation for both profiles.
// @Tags         neighbors
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      403  {object}  ErrorResponse "Not the recipient"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Already accepted"
// @Router       /neighbors/requests/{id}/accept [post]
func AcceptNeighborRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request models.NeighborRequest
	if err := database.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := relation.Accept(database.DB, request.ID, currentUserID(c)); err != nil {
		abortWithError(c, err)
		return
	}

	hub.GlobalHub.Notify(request.FromUserID, hub.Event{
		Type:    hub.EventNeighborAccepted,
		Payload: gin.H{"by_user_id": currentUserID(c)},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// RejectNeighborRequest godoc
// @Summary      Reject a neighbor request
// @Description  Rejects a pending request addressed to the current user. The request is deleted; rejections are never stored.
// @Tags         neighbors
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Request rejected"}"
// @Failure      403  {object}  ErrorResponse "Not the recipient"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Already accepted"
// @Router       /neighbors/requests/{id}/reject [post]
func RejectNeighborRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := relation.Reject(database.DB, requestID, currentUserID(c)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}

func newNeighborRequestResponse(r models.NeighborRequest) NeighborRequestResponse {
	response := NeighborRequestResponse{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		Message:    r.Message,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
	if profile, err := profileOfUser(r.FromUserID); err == nil {
		response.FromUsername = profile.Username
		response.FromUserPic = profile.UserPic
	}
	return response
}
