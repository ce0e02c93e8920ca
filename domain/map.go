package domain

import (
	"time"

	"github.com/google/uuid"
)

// MapEntry is a map suggested in the room for the next game day.
type MapEntry struct {
	ID      uuid.UUID
	Name    string
	URL     string
	AddedAt time.Time
}
