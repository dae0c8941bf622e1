package domain

import (
	"encoding/json"
	"time"
)

// Game is a saved puzzle state owned by a single user. BoardState is opaque
// to the server; clients store whatever structure they need.
type Game struct {
	ID          int64
	UserID      int64
	BoardState  json.RawMessage
	IsCompleted bool
	ElapsedTime int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GameSummary is the listing view of a Game without the board blob.
type GameSummary struct {
	ID          int64
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
