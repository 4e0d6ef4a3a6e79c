// Package handler contains HTTP handlers for the API.
package handler

import (
	"strconv"

	"casetrack/internal/middleware"
	"casetrack/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// actorID extracts the authenticated actor from the request context and
// writes the 401 response when it is missing.
func actorID(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.GetActorID(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
	}
	return id, ok
}

// pathID parses an ObjectID path parameter and writes the 400 response when
// it is malformed.
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name+" format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pagination reads the page and limit query parameters with defaults.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
