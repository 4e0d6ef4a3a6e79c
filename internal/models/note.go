package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note represents a note attached to a client.
// Exactly one note per client is the main note: it is created together with
// the client and can never be deleted.
type Note struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439031"`
	ClientID      primitive.ObjectID `json:"clientId" bson:"clientId" example:"507f1f77bcf86cd799439021"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId" example:"507f1f77bcf86cd799439011"` // author
	Message       string             `json:"message" bson:"message" example:"Called the family, follow-up next week."`
	IsMain        bool               `json:"isMain" bson:"isMain" example:"false"`
	Hidden        bool               `json:"hidden" bson:"hidden" example:"false"`
	AttachmentKey string             `json:"-" bson:"attachmentKey,omitempty"` // S3 key, not exposed in JSON
	AttachmentURL string             `json:"attachmentUrl,omitempty" bson:"-"` // pre-signed URL, not stored in DB
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T10:00:00Z"`
	DeletedAt     *time.Time         `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// CreateNoteRequest is the payload for creating a note on a client.
type CreateNoteRequest struct {
	Message        string `json:"message" binding:"required,min=1,max=2000" example:"Called the family."`
	IsMain         bool   `json:"isMain" example:"false"`
	Hidden         bool   `json:"hidden" example:"false"`
	AttachmentName string `json:"attachmentName" binding:"omitempty,max=200" example:"report.pdf"`
}

// UpdateNoteRequest is the payload for updating a note.
type UpdateNoteRequest struct {
	Message *string `json:"message" binding:"omitempty,min=1,max=2000"`
	Hidden  *bool   `json:"hidden"`
}

// NoteWithPrivilege is a note with the actor's computed privilege.
type NoteWithPrivilege struct {
	Note
	Privilege string `json:"privilege" example:"delete"`
}

// CreateNoteResponse is the response for creating a note. UploadURL is only
// set when an attachment was requested.
type CreateNoteResponse struct {
	Note      Note   `json:"note"`
	UploadURL string `json:"uploadUrl,omitempty" example:"https://s3.amazonaws.com/bucket/notes/...?X-Amz-Algorithm=..."`
}

// NoteListResponse is the response for listing notes.
type NoteListResponse struct {
	Items []NoteWithPrivilege `json:"items"`
}
