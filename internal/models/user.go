package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngo-management-api/internal/validation"
)

// User is the identity anchor every donorId/managerId/organizerId
// reference resolves against.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         Role               `bson:"role" json:"role"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// UserRef is the inline summary used when a foreign key is expanded in
// a response.
type UserRef struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// Ref returns the expanded-reference view of the user.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserTable is the shared validation rule set for users. Email is
// trimmed and lower-cased before the unique check so casing never
// produces duplicate accounts.
var UserTable = validation.Table{
	Entity: "user",
	Rules: []validation.Rule{
		{Name: "name", Kind: validation.String, Required: true, MaxLen: 100},
		{Name: "email", Kind: validation.String, Required: true, Lower: true, MaxLen: 200},
		{Name: "role", Kind: validation.String, Required: true, Enum: RoleNames()},
		{Name: "password", Kind: validation.String, MaxLen: 100},
	},
}

func (u *User) document() map[string]any {
	return map[string]any{
		"name":  u.Name,
		"email": u.Email,
		"role":  string(u.Role),
	}
}

// Validate re-checks the document against the shared table; the store
// boundary calls this before any write.
func (u *User) Validate() error {
	if errs := UserTable.ValidateDocument(u.document()); len(errs) > 0 {
		return errs
	}
	return nil
}
