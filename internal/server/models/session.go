package models

import "time"

// Session is the server-side record backing an issued token. Its ID equals
// the token's jti claim; deleting the row revokes the token.
type Session struct {
	ID        string
	UserID    string
	Expires   time.Time
	CreatedAt time.Time
}
