package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity actions.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionAssigned = "assigned"
)

// Activity resources.
const (
	ResourceClient = "client"
	ResourceNote   = "note"
	ResourceUser   = "user"
)

// Activity is an audit log entry recording a mutation performed by a user.
type Activity struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439041"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId" example:"507f1f77bcf86cd799439011"`
	Action     string             `json:"action" bson:"action" example:"deleted"`
	Resource   string             `json:"resource" bson:"resource" example:"note"`
	ResourceID primitive.ObjectID `json:"resourceId" bson:"resourceId" example:"507f1f77bcf86cd799439031"`
	Message    string             `json:"message" bson:"message" example:"Deleted note on client Jonas Weber"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
}

// ActivityListResponse is the response for listing a user's activity.
type ActivityListResponse struct {
	Items      []Activity `json:"items"`
	Pagination Pagination `json:"pagination"`
}
