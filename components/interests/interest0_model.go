package interests

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GetInterestsRequest struct {
	UID string `json:"uid"`
}

type SaveInterestsRequest struct {
	UID    string   `json:"uid"`
	Hashes []string `json:"hashes"`
}

// DBInterest is one directed edge: the owner is interested in whoever
// holds the target phone hash. The target may not even have an account
// yet; resolution happens lazily by hash equality.
type DBInterest struct {
	Id         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Owner      string             `json:"owner" bson:"owner"`
	TargetHash string             `json:"target_hash" bson:"target_hash"`
	CreatedAt  time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

type ResponseInterests struct {
	Hashes []string `json:"hashes"`
}
