package handler

import (
	"errors"

	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/service"
	"casetrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service service.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service service.UserServicer) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers godoc
// @Summary      List users
// @Description  List the users the actor may read. Below managing advisor only the own account is visible.
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=models.UserListResponse}
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.service.ListUsers(c.Request.Context(), actor)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// GetUser godoc
// @Summary      Get a user
// @Description  Retrieve a user with the actor's computed privilege
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response{data=models.UserResponse}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}

	result, err := h.service.GetUser(c.Request.Context(), actor, id)
	if err != nil {
		writeUserError(c, err)
		return
	}

	response.Success(c, result)
}

// GetUserPrivilege godoc
// @Summary      Get the actor's privilege over a user
// @Description  Compute which controls the UI may show for the target user
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response{data=models.PrivilegeResponse}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{userId}/privileges [get]
func (h *UserHandler) GetUserPrivilege(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}

	result, err := h.service.GetUserPrivilege(c.Request.Context(), actor, id)
	if err != nil {
		writeUserError(c, err)
		return
	}

	response.Success(c, result)
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Create a user account on behalf of the actor. Requires managing advisor rank.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateUserRequest  true  "User details"
// @Success      201      {object}  response.Response{data=models.UserWithRole}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateUser(c.Request.Context(), actor, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			response.Conflict(c, err.Error())
			return
		}
		writeUserError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Update a user's profile fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId   path      string                    true  "User ID"
// @Param        request  body      models.UpdateUserRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.User}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{userId} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateUser(c.Request.Context(), actor, id, &req)
	if err != nil {
		writeUserError(c, err)
		return
	}

	response.Success(c, result)
}

// AssignRole godoc
// @Summary      Assign a role
// @Description  Change a user's role. Which roles the actor may hand out depends on their own rank.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId   path      string                    true  "User ID"
// @Param        request  body      models.AssignRoleRequest  true  "Role to assign"
// @Success      200      {object}  response.Response{data=models.UserWithRole}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{userId}/role [put]
func (h *UserHandler) AssignRole(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AssignRole(c.Request.Context(), actor, id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrRoleNotFound) {
			response.BadRequest(c, err.Error())
			return
		}
		writeUserError(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Soft-delete a user and revoke their sessions
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      204     "No Content"
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actor, id); err != nil {
		writeUserError(c, err)
		return
	}

	response.NoContent(c)
}

// writeUserError maps user service errors to HTTP responses.
func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c)
	}
}
