package sessions

import "time"

// Session is a server-side admin session. The cookie only carries a signed reference to
// ID; the session itself lives in Redis, Mongo or memory.
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	Subject   string    `bson:"subject" json:"subject"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

// Expired reports whether s is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
