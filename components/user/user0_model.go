package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoginRequest struct {
	Email string `json:"email"`
}

type ConfirmLoginRequest struct {
	JWT  string `json:"jwt"`
	Code string `json:"code"`
}

type GetUserRequest struct {
	UID string `json:"uid"`
}

type SetPhoneRequest struct {
	UID   string `json:"uid"`
	Phone string `json:"phone"`
}

type ResetAccountRequest struct {
	UID string `json:"uid"`
}

// LoginCode is the pending magic-link state on a profile; a new code
// overwrites the previous one.
type LoginCode struct {
	Code       string    `json:"code" bson:"code"`
	SendCodeAt time.Time `json:"sendcode_at,omitempty" bson:"sendcode_at,omitempty"`
}

type ResponseLogin struct {
	Email string `json:"email"`
	JWT   string `json:"jwt"`
}

type ResponseUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhoneNumber string `json:"phone_number"`
	JWT         string `json:"jwt,omitempty"`
}

type ResponseStatus struct {
	UID    string `json:"uid"`
	Status string `json:"status"`
}

type CreateUser struct {
	UID         string     `json:"uid" bson:"uid"`
	Email       string     `json:"email" bson:"email"`
	DisplayName string     `json:"display_name" bson:"display_name"`
	PhoneNumber string     `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	PhoneHash   string     `json:"phone_hash,omitempty" bson:"phone_hash,omitempty"`
	Reg         *LoginCode `json:"reg" bson:"reg"`
	CreatedAt   time.Time  `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type DBUser struct {
	Id          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UID         string             `json:"uid" bson:"uid"`
	Email       string             `json:"email" bson:"email"`
	DisplayName string             `json:"display_name" bson:"display_name"`
	PhoneNumber string             `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	PhoneHash   string             `json:"phone_hash,omitempty" bson:"phone_hash,omitempty"`
	Reg         *LoginCode         `json:"reg" bson:"reg"`
	CreatedAt   time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
