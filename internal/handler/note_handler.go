package handler

import (
	"errors"

	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/service"
	"casetrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// NoteHandler handles HTTP requests for note operations.
type NoteHandler struct {
	service service.NoteServicer
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service service.NoteServicer) *NoteHandler {
	return &NoteHandler{service: service}
}

// CreateNote godoc
// @Summary      Create a note
// @Description  Create a note on a client. With an attachment name the response carries a pre-signed upload URL.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        clientId  path      string                    true  "Client ID"
// @Param        request   body      models.CreateNoteRequest  true  "Note details"
// @Success      201       {object}  response.Response{data=models.CreateNoteResponse}
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /clients/{clientId}/notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateNote(c.Request.Context(), actor, clientID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrMainNoteExists) {
			response.Conflict(c, err.Error())
			return
		}
		writeNoteError(c, err)
		return
	}

	response.Created(c, result)
}

// ListNotes godoc
// @Summary      List notes of a client
// @Description  List the notes the actor may read, with the actor's privilege per note
// @Tags         notes
// @Produce      json
// @Param        clientId  path      string  true  "Client ID"
// @Success      200       {object}  response.Response{data=models.NoteListResponse}
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /clients/{clientId}/notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	result, err := h.service.ListNotes(c.Request.Context(), actor, clientID)
	if err != nil {
		writeNoteError(c, err)
		return
	}

	response.Success(c, result)
}

// GetNote godoc
// @Summary      Get a note
// @Description  Retrieve a note with the actor's computed privilege
// @Tags         notes
// @Produce      json
// @Param        noteId  path      string  true  "Note ID"
// @Success      200     {object}  response.Response{data=models.NoteWithPrivilege}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /notes/{noteId} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	result, err := h.service.GetNote(c.Request.Context(), actor, id)
	if err != nil {
		writeNoteError(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateNote godoc
// @Summary      Update a note
// @Description  Update a note's message or hidden flag. The main note can never be hidden.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        noteId   path      string                    true  "Note ID"
// @Param        request  body      models.UpdateNoteRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.Note}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /notes/{noteId} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	var req models.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateNote(c.Request.Context(), actor, id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrMainNoteCannotHide) {
			response.BadRequest(c, err.Error())
			return
		}
		writeNoteError(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteNote godoc
// @Summary      Delete a note
// @Description  Soft-delete a note. The main note can never be deleted, regardless of rank.
// @Tags         notes
// @Produce      json
// @Param        noteId  path      string  true  "Note ID"
// @Success      204     "No Content"
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /notes/{noteId} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	if err := h.service.DeleteNote(c.Request.Context(), actor, id); err != nil {
		if errors.Is(err, apperrors.ErrMainNoteUndeletable) {
			response.BadRequest(c, err.Error())
			return
		}
		writeNoteError(c, err)
		return
	}

	response.NoContent(c)
}

// writeNoteError maps note service errors to HTTP responses.
func writeNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNoteNotFound), errors.Is(err, apperrors.ErrClientNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c)
	}
}
