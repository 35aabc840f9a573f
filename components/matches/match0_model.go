package matches

import (
	"time"
)

type GetMatchesRequest struct {
	UID string `json:"uid"`
}

// ResponseMatch is the derived, never-persisted match record. Name and
// phone come from the caller's own contact row for the counterpart, so
// everyone sees the name they themselves gave the person, not the
// counterpart's profile name.
type ResponseMatch struct {
	ContactId    string    `json:"contact_id"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	MatchedAt    time.Time `json:"matched_at"`
}
