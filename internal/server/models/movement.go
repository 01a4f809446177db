package models

import "time"

// Movement is a single balance change on an account, ordered by creation time.
type Movement struct {
	ID        string
	UserID    string
	Amount    int64
	CreatedAt time.Time
}
