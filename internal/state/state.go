// Package state defines the progression state: the single mutable record that
// represents a player's save.
package state

import (
	"time"

	"github.com/quantum-forge/internal/catalog"
)

// Marker identifies a serialized progression state.
const Marker = "quantum-forge"

// CurrentVersion is the layout version written by this build.
const CurrentVersion = 2

// Settings are player preferences that survive ascension.
type Settings struct {
	Autosave      bool   `json:"autosave"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
}

// State is a player's progression. It is a flat, JSON-serializable record.
type State struct {
	Game    string `json:"game"`
	Version int    `json:"version"`

	Energy      float64 `json:"energy"`
	TotalEnergy float64 `json:"total_energy"` // lifetime earnings, never decreases

	ResearchPoints float64 `json:"research_points"`
	ResearchRate   float64 `json:"research_rate"`

	Shards int64 `json:"shards"`

	ClickPower      float64 `json:"click_power"`
	ClickShardScale bool    `json:"click_shard_scale"`

	Multipliers   Multipliers `json:"multipliers"`
	CostGrowth    float64     `json:"cost_growth"`
	OfflineGain   float64     `json:"offline_gain"`
	TieredSynergy bool        `json:"tiered_synergy"`

	Generators   map[string]int64 `json:"generators"`
	Upgrades     map[string]bool  `json:"upgrades"`
	Research     map[string]bool  `json:"research"`
	Achievements map[string]bool  `json:"achievements"`

	ActiveChallenge string `json:"active_challenge"`

	Clicks            int64 `json:"clicks"`
	ResearchCompleted int64 `json:"research_completed"`
	Ascensions        int64 `json:"ascensions"`

	LastObservedMs int64 `json:"last_observed_ms"`

	Settings Settings `json:"settings"`
}

// Default builds the canonical fresh state for cat, observed at now.
func Default(cat *catalog.Catalog, now time.Time) *State {
	tuning := cat.Tuning()
	gens := cat.Generators()

	st := &State{
		Game:         Marker,
		Version:      CurrentVersion,
		ResearchRate: tuning.BaseResearchRate,
		ClickPower:   tuning.BaseClickPower,
		Multipliers: Multipliers{
			Automation:  1,
			Global:      1,
			Achievement: 1,
			Generator:   make(map[string]float64, len(gens)),
		},
		CostGrowth:   1,
		OfflineGain:  1,
		Generators:   make(map[string]int64, len(gens)),
		Upgrades:     map[string]bool{},
		Research:     map[string]bool{},
		Achievements: map[string]bool{},
		Settings: Settings{
			Autosave:      true,
			Notifications: true,
			Theme:         "dark",
		},
	}
	for _, g := range gens {
		st.Generators[g.ID] = 0
		st.Multipliers.Generator[g.ID] = 1
	}
	st.SetLastObserved(now)
	return st
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Multipliers = s.Multipliers.clone()
	c.Generators = cloneMap(s.Generators)
	c.Upgrades = cloneMap(s.Upgrades)
	c.Research = cloneMap(s.Research)
	c.Achievements = cloneMap(s.Achievements)
	return &c
}

// LastObserved returns the last observed wall-clock time.
func (s *State) LastObserved() time.Time {
	return time.UnixMilli(s.LastObservedMs)
}

// SetLastObserved stamps the last observed wall-clock time.
func (s *State) SetLastObserved(t time.Time) {
	s.LastObservedMs = t.UnixMilli()
}

// Owned returns the owned count of a generator.
func (s *State) Owned(id string) int64 {
	return s.Generators[id]
}

// TotalOwned returns the number of units owned across the catalog's tiers.
// Counts under ids the catalog does not define are ignored.
func (s *State) TotalOwned(cat *catalog.Catalog) int64 {
	var n int64
	for _, g := range cat.Generators() {
		n += s.Generators[g.ID]
	}
	return n
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
