package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client represents a case subject tracked by the service.
type Client struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439021"`
	FirstName string              `json:"firstName" bson:"firstName" example:"Jonas"`
	LastName  string              `json:"lastName" bson:"lastName" example:"Weber"`
	Birthdate *time.Time          `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Phone     string              `json:"phone,omitempty" bson:"phone,omitempty" example:"+41 76 123 45 67"`
	Email     string              `json:"email,omitempty" bson:"email,omitempty" example:"jonas@example.com"`
	UserID    *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"` // assigned user, nil = unassigned
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
	DeletedAt *time.Time          `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// CreateClientRequest is the payload for creating a client.
// The main note is created alongside the client with the given message.
type CreateClientRequest struct {
	FirstName       string  `json:"firstName" binding:"required,min=2,max=100" example:"Jonas"`
	LastName        string  `json:"lastName" binding:"required,min=2,max=100" example:"Weber"`
	Birthdate       *string `json:"birthdate" binding:"omitempty,datetime=2006-01-02" example:"1992-04-02"`
	Phone           string  `json:"phone" binding:"omitempty,max=30" example:"+41 76 123 45 67"`
	Email           string  `json:"email" binding:"omitempty,email" example:"jonas@example.com"`
	AssignedUserID  string  `json:"assignedUserId" binding:"omitempty,objectid"`
	MainNoteMessage string  `json:"mainNoteMessage" binding:"max=2000" example:"First contact via phone."`
}

// UpdateClientRequest is the payload for updating a client.
type UpdateClientRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=2,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,min=2,max=100"`
	Birthdate *string `json:"birthdate" binding:"omitempty,datetime=2006-01-02"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

// AssignClientRequest is the payload for assigning a client to a user.
// An empty user id unassigns the client.
type AssignClientRequest struct {
	UserID string `json:"userId" binding:"omitempty,objectid"`
}

// ClientWithPrivilege is a client list item with the actor's computed privilege.
type ClientWithPrivilege struct {
	Client
	Privilege string `json:"privilege" example:"update"`
}

// ClientListResponse is the response for listing clients.
type ClientListResponse struct {
	Items      []ClientWithPrivilege `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

// ClientDetailResponse is the response for reading a single client,
// with the notes the actor may read and the note-list privilege for the UI.
type ClientDetailResponse struct {
	Client        ClientWithPrivilege `json:"client"`
	Notes         []NoteWithPrivilege `json:"notes"`
	NotePrivilege string              `json:"notePrivilege" example:"only_create"`
}

// Pagination contains pagination metadata.
type Pagination struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"10"`
	TotalItems int `json:"totalItems" example:"42"`
	TotalPages int `json:"totalPages" example:"5"`
}
