package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role name constants, ordered by ascending privilege.
const (
	RoleNewcomer        = "newcomer"
	RoleAdvisor         = "advisor"
	RoleManagingAdvisor = "managing_advisor"
	RoleAdmin           = "admin"
)

// Role represents a user role with its hierarchy rank.
// A lower hierarchy number means more privilege. Ranks are stored data,
// loaded from the roles collection, never derived from declaration order.
type Role struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439012"`
	Name      string             `json:"name" bson:"name" example:"advisor"`
	Hierarchy int                `json:"hierarchy" bson:"hierarchy" example:"3"`
}
