// Package save converts progression state to and from its persisted forms:
// the JSON record stored by the persistence backends and the base64 text
// players export and import.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// Errors
var (
	ErrMalformed = errors.New("malformed save data")
	ErrNotASave  = errors.New("not a save export")
)

// Encode serializes st as JSON. Non-finite numbers are rejected.
func Encode(st *state.State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// Decode parses a JSON record into a state. The record is applied over the
// default state for cat, so any field it lacks keeps its default. Older
// layouts are migrated forward and the result is validated before it is
// returned; nothing is returned for a record that fails.
func Decode(cat *catalog.Catalog, data []byte, now time.Time) (*state.State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty record", ErrMalformed)
	}

	if m, ok := raw["game"]; ok {
		var marker string
		if err := json.Unmarshal(m, &marker); err != nil || marker != state.Marker {
			return nil, fmt.Errorf("%w: foreign game marker %s", ErrMalformed, m)
		}
	}

	version := state.CurrentVersion
	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return nil, fmt.Errorf("%w: invalid version %s", ErrMalformed, v)
		}
	}
	if version < 1 || version > state.CurrentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, version)
	}

	st := state.Default(cat, now)
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := migrate(raw, st, version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	st.Game = state.Marker
	st.Version = state.CurrentVersion
	normalize(st)

	if err := validate(cat, st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return st, nil
}

// normalize replaces collections an explicit null cleared.
func normalize(st *state.State) {
	if st.Generators == nil {
		st.Generators = map[string]int64{}
	}
	if st.Upgrades == nil {
		st.Upgrades = map[string]bool{}
	}
	if st.Research == nil {
		st.Research = map[string]bool{}
	}
	if st.Achievements == nil {
		st.Achievements = map[string]bool{}
	}
	if st.Multipliers.Generator == nil {
		st.Multipliers.Generator = map[string]float64{}
	}
}
