package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const AlertLowProductivity = "LOW_PRODUCTIVITY"

type Alert struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Type      string          `json:"type"`
	Details   string          `json:"details"`
	Activity  json.RawMessage `json:"activity"`
	Timestamp time.Time       `json:"timestamp"`

	// Populated on joined reads for the admin dashboard.
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
