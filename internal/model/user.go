package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted user record. The password column holds an argon2id
// hash and is never returned to callers.
type User struct {
	ID          uuid.UUID    `json:"id"`
	Email       Email        `json:"email"`
	Name        Name         `json:"name"`
	PhoneNumber *PhoneNumber `json:"phone_number,omitempty"`
	Role        Role         `json:"roles"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewUser carries validated input for a registration, together with the
// audit identity of the admin performing it.
type NewUser struct {
	Email          Email
	Password       Password
	Name           Name
	PhoneNumber    *PhoneNumber
	Role           Role
	CreatedBy      uuid.UUID
	CreatedByName  Name
	CreatedByEmail Email
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	UserID        uuid.UUID
	Name          *Name
	PhoneNumber   *PhoneNumber
	Role          *Role
	EditedBy      uuid.UUID
	EditedByName  Name
	EditedByEmail Email
}
