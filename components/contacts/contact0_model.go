package contacts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UploadContactsRequest struct {
	UID  string `json:"uid"`
	Text string `json:"text"`
}

type GetContactsRequest struct {
	UID   string `json:"uid"`
	Page  string `json:"page"`
	Limit string `json:"limit"`
}

type DeleteContactRequest struct {
	UID       string `json:"uid"`
	ContactId string `json:"contact_id"`
}

// ParsedContact is what the parser emits per accepted line; the phone
// is already canonical and hashed.
type ParsedContact struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	PhoneHash string `json:"phone_hash"`
}

type CreateContact struct {
	Owner     string    `json:"owner" bson:"owner"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone" bson:"phone"`
	PhoneHash string    `json:"phone_hash" bson:"phone_hash"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

type DBContact struct {
	Id        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Owner     string             `json:"owner" bson:"owner"`
	Name      string             `json:"name" bson:"name"`
	Phone     string             `json:"phone" bson:"phone"`
	PhoneHash string             `json:"phone_hash" bson:"phone_hash"`
	CreatedAt time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

type ResponseContact struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	PhoneHash string    `json:"phone_hash"`
	CreatedAt time.Time `json:"created_at"`
}

type ResponseUpload struct {
	Inserted   int                `json:"inserted"`
	Duplicates int                `json:"duplicates"`
	Notice     string             `json:"notice,omitempty"`
	Contacts   []*ResponseContact `json:"contacts"`
}

func toResponseContact(c *DBContact) *ResponseContact {
	return &ResponseContact{
		Id:        c.Id.Hex(),
		Name:      c.Name,
		Phone:     c.Phone,
		PhoneHash: c.PhoneHash,
		CreatedAt: c.CreatedAt,
	}
}
