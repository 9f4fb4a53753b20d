package types

import (
	"encoding/json"
	"time"
)

// SaveRecord is one persisted save slot. Data holds the encoded progression
// state and is opaque to the stores.
type SaveRecord struct {
	ID        string          `json:"id"`
	Version   int             `json:"version"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}
