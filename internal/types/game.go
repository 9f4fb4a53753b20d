package types

import "time"

// Notice is a user-visible message raised by a game session.
type Notice struct {
	Level   string    `json:"level"` // "info", "success" or "failure"
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Settings mirrors the player preferences carried in a save.
type Settings struct {
	Autosave      bool   `json:"autosave"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
}

// GeneratorView is one generator row of a GameView.
type GeneratorView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Owned         int64   `json:"owned"`
	Cost          float64 `json:"cost"`
	CostDisplay   string  `json:"cost_display"`
	Output        float64 `json:"output"` // per unit, per second
	OutputDisplay string  `json:"output_display"`
	Affordable    bool    `json:"affordable"`
}

// GameView is the read model of a running game.
type GameView struct {
	ID string `json:"id"`

	Energy             float64 `json:"energy"`
	EnergyDisplay      string  `json:"energy_display"`
	TotalEnergy        float64 `json:"total_energy"`
	TotalEnergyDisplay string  `json:"total_energy_display"`
	Rate               float64 `json:"rate"`
	RateDisplay        string  `json:"rate_display"`
	ClickValue         float64 `json:"click_value"`
	ClickValueDisplay  string  `json:"click_value_display"`

	ResearchPoints        float64 `json:"research_points"`
	ResearchPointsDisplay string  `json:"research_points_display"`
	ResearchRate          float64 `json:"research_rate"`

	Shards           int64  `json:"shards"`
	ShardsDisplay    string `json:"shards_display"`
	NextAscendShards int64  `json:"next_ascend_shards"`
	CanAscend        bool   `json:"can_ascend"`
	Ascensions       int64  `json:"ascensions"`

	CombinedMultiplier        float64 `json:"combined_multiplier"`
	CombinedMultiplierDisplay string  `json:"combined_multiplier_display"`

	Generators      []GeneratorView `json:"generators"`
	Upgrades        []string        `json:"upgrades"`
	Research        []string        `json:"research"`
	Achievements    []string        `json:"achievements"`
	ActiveChallenge string          `json:"active_challenge,omitempty"`

	Settings Settings `json:"settings"`
	Notices  []Notice `json:"notices"`
}

// BuyRequest represents a request to buy generator units.
type BuyRequest struct {
	Generator string `json:"generator"`
	Amount    string `json:"amount,omitempty"` // positive integer or "max"; defaults to 1
}

// BuyResponse reports a buy.
type BuyResponse struct {
	Bought int64    `json:"bought"`
	Spent  float64  `json:"spent"`
	Game   GameView `json:"game"`
}

// PurchaseResponse reports an upgrade or research purchase.
type PurchaseResponse struct {
	Outcome string   `json:"outcome"` // "purchased", "already_owned" or "insufficient_funds"
	Game    GameView `json:"game"`
}

// ClickResponse reports a click.
type ClickResponse struct {
	Gained float64  `json:"gained"`
	Game   GameView `json:"game"`
}

// AscendResponse reports an ascension.
type AscendResponse struct {
	ShardsGained int64    `json:"shards_gained"`
	Game         GameView `json:"game"`
}

// ExportResponse carries export text.
type ExportResponse struct {
	Text string `json:"text"`
}

// ImportRequest carries export text to load.
type ImportRequest struct {
	Text string `json:"text"`
}

// SettingsRequest updates player preferences. Omitted fields are unchanged.
type SettingsRequest struct {
	Autosave      *bool   `json:"autosave,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	Theme         *string `json:"theme,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
