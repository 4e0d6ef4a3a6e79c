package handler

import (
	"errors"

	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/service"
	"casetrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	service service.ClientServicer
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service service.ClientServicer) *ClientHandler {
	return &ClientHandler{service: service}
}

// CreateClient godoc
// @Summary      Create a client
// @Description  Create a client together with its main note. Requires advisor rank.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateClientRequest  true  "Client details"
// @Success      201      {object}  response.Response{data=models.Client}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateClient(c.Request.Context(), actor, &req)
	if err != nil {
		writeClientError(c, err)
		return
	}

	response.Created(c, result)
}

// ListClients godoc
// @Summary      List clients
// @Description  List clients with the actor's privilege computed per item
// @Tags         clients
// @Produce      json
// @Param        page   query     int  false  "Page number (default: 1)"
// @Param        limit  query     int  false  "Items per page (default: 10)"
// @Success      200    {object}  response.Response{data=models.ClientListResponse}
// @Failure      401    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Security     BearerAuth
// @Router       /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	page, limit := pagination(c)
	result, err := h.service.ListClients(c.Request.Context(), actor, page, limit)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// GetClient godoc
// @Summary      Get a client
// @Description  Retrieve a client with its readable notes and the actor's privileges
// @Tags         clients
// @Produce      json
// @Param        clientId  path      string  true  "Client ID"
// @Success      200       {object}  response.Response{data=models.ClientDetailResponse}
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /clients/{clientId} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	result, err := h.service.GetClient(c.Request.Context(), actor, id)
	if err != nil {
		writeClientError(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateClient godoc
// @Summary      Update a client
// @Description  Update a client's profile fields
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        clientId  path      string                      true  "Client ID"
// @Param        request   body      models.UpdateClientRequest  true  "Fields to update"
// @Success      200       {object}  response.Response{data=models.Client}
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /clients/{clientId} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateClient(c.Request.Context(), actor, id, &req)
	if err != nil {
		writeClientError(c, err)
		return
	}

	response.Success(c, result)
}

// AssignClient godoc
// @Summary      Assign a client
// @Description  Assign a client to a user, or unassign it when no user id is given. Advisors may only assign to themselves.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        clientId  path      string                      true  "Client ID"
// @Param        request   body      models.AssignClientRequest  true  "Assignee"
// @Success      200       {object}  response.Response{data=models.Client}
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /clients/{clientId}/assign [put]
func (h *ClientHandler) AssignClient(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	var req models.AssignClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AssignClient(c.Request.Context(), actor, id, &req)
	if err != nil {
		writeClientError(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteClient godoc
// @Summary      Delete a client
// @Description  Soft-delete a client. Requires managing advisor rank.
// @Tags         clients
// @Produce      json
// @Param        clientId  path      string  true  "Client ID"
// @Success      204       "No Content"
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /clients/{clientId} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), actor, id); err != nil {
		writeClientError(c, err)
		return
	}

	response.NoContent(c)
}

// writeClientError maps client service errors to HTTP responses.
func writeClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrClientNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrUserNotFound):
		response.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c)
	}
}
