package engine

import (
	"math"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// ShardsOnAscend returns the shards an ascension would grant now:
// floor(sqrt(lifetime energy / reset threshold)).
func ShardsOnAscend(cat *catalog.Catalog, st *state.State) int64 {
	ratio := st.TotalEnergy / cat.Tuning().ResetThreshold
	if !(ratio > 0) {
		return 0
	}
	return int64(math.Floor(math.Sqrt(ratio)))
}

// CanAscend reports whether ascending would grant at least one shard.
func CanAscend(cat *catalog.Catalog, st *state.State) bool {
	return ShardsOnAscend(cat, st) >= 1
}

// Ascend builds the post-prestige state. The result is a fresh default state
// that keeps only the shard balance (plus the newly earned shards), settings,
// unlocked achievements, the ascension count and the observation timestamp.
// The global multiplier is reseeded from the shard balance. st itself is
// never modified; when nothing would be gained ErrNothingToGain is returned.
func Ascend(cat *catalog.Catalog, st *state.State) (*state.State, int64, error) {
	gained := ShardsOnAscend(cat, st)
	if gained <= 0 {
		return nil, 0, ErrNothingToGain
	}

	next := state.Default(cat, st.LastObserved())
	next.Shards = st.Shards + gained
	next.Settings = st.Settings
	next.Ascensions = st.Ascensions + 1
	for id, done := range st.Achievements {
		next.Achievements[id] = done
	}
	next.Multipliers.Global = 1 + float64(next.Shards)*cat.Tuning().PrestigeBonusPerShard
	next.LastObservedMs = st.LastObservedMs

	return next, gained, nil
}
