package handler

import (
	"errors"

	apperrors "casetrack/internal/errors"
	"casetrack/internal/service"
	"casetrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// ActivityHandler handles HTTP requests for the activity log.
type ActivityHandler struct {
	service service.ActivityServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service service.ActivityServicer) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// ListUserActivity godoc
// @Summary      List a user's activity
// @Description  Retrieve a page of a user's audit log. Reading someone else's log requires rank over them.
// @Tags         activities
// @Produce      json
// @Param        userId  path      string  true   "User ID"
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 10)"
// @Success      200     {object}  response.Response{data=models.ActivityListResponse}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{userId}/activity [get]
func (h *ActivityHandler) ListUserActivity(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	page, limit := pagination(c)
	result, err := h.service.ListUserActivity(c.Request.Context(), actor, userID, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, apperrors.ErrForbidden):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Success(c, result)
}
