package save

import (
	"encoding/json"
	"fmt"

	"github.com/quantum-forge/internal/state"
)

// migration upgrades a record from one layout version to the next. raw holds
// the record's top-level fields as written.
type migration func(raw map[string]json.RawMessage, st *state.State) error

// migrations is keyed by the version a step upgrades from.
var migrations = map[int]migration{
	1: migrateV1,
}

func migrate(raw map[string]json.RawMessage, st *state.State, from int) error {
	for v := from; v < state.CurrentVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return fmt.Errorf("no migration from version %d", v)
		}
		if err := step(raw, st); err != nil {
			return fmt.Errorf("migrate version %d: %w", v, err)
		}
	}
	return nil
}

// migrateV1 moves per-generator multipliers out of the flat specific_mult map
// that version 1 records used.
func migrateV1(raw map[string]json.RawMessage, st *state.State) error {
	data, ok := raw["specific_mult"]
	if !ok {
		return nil
	}
	var specific map[string]float64
	if err := json.Unmarshal(data, &specific); err != nil {
		return fmt.Errorf("specific_mult: %w", err)
	}
	if st.Multipliers.Generator == nil {
		st.Multipliers.Generator = make(map[string]float64, len(specific))
	}
	for id, v := range specific {
		st.Multipliers.Generator[id] = v
	}
	return nil
}
