package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardsOnAscend(t *testing.T) {
	tests := []struct {
		lifetime float64
		expected int64
	}{
		{lifetime: 0, expected: 0},
		{lifetime: 999_999, expected: 0},
		{lifetime: 1e6, expected: 1},
		{lifetime: 3_999_999, expected: 1},
		{lifetime: 4e6, expected: 2},
		{lifetime: 1e8, expected: 10},
	}

	for _, tt := range tests {
		cat, st := newState()
		st.TotalEnergy = tt.lifetime
		assert.Equal(t, tt.expected, ShardsOnAscend(cat, st), "lifetime %v", tt.lifetime)
		assert.Equal(t, tt.expected >= 1, CanAscend(cat, st))
	}
}

func TestAscend(t *testing.T) {
	cat, st := newState()
	st.Energy = 5e5
	st.TotalEnergy = 4e6
	st.ResearchPoints = 80
	st.Generators["gen1"] = 25
	st.Upgrades["click1"] = true
	st.Research["rp1"] = true
	st.Achievements["a1"] = true
	st.Multipliers.Achievement = 1.02
	st.Multipliers.Automation = 1.2
	st.ActiveChallenge = "c1"
	st.Clicks = 42
	st.Settings.Theme = "light"
	st.Settings.Autosave = false
	before := st.Clone()

	next, gained, err := Ascend(cat, st)
	require.NoError(t, err)

	assert.Equal(t, int64(2), gained)
	assert.Equal(t, int64(2), next.Shards)
	assert.Equal(t, int64(1), next.Ascensions)
	assert.InDelta(t, 1.1, next.Multipliers.Global, 1e-12)

	// reset
	assert.Zero(t, next.Energy)
	assert.Zero(t, next.TotalEnergy)
	assert.Zero(t, next.ResearchPoints)
	assert.Zero(t, next.Owned("gen1"))
	assert.Empty(t, next.Upgrades)
	assert.Empty(t, next.Research)
	assert.Empty(t, next.ActiveChallenge)
	assert.Zero(t, next.Clicks)
	assert.Equal(t, 1.0, next.Multipliers.Automation)
	assert.Equal(t, 1.0, next.Multipliers.Achievement)

	// carried
	assert.True(t, next.Achievements["a1"])
	assert.Equal(t, "light", next.Settings.Theme)
	assert.False(t, next.Settings.Autosave)
	assert.Equal(t, st.LastObservedMs, next.LastObservedMs)

	assert.Equal(t, before, st, "input state must not change")
}

func TestAscend_AccumulatesShards(t *testing.T) {
	cat, st := newState()
	st.Shards = 3
	st.Ascensions = 1
	st.TotalEnergy = 4e6

	next, gained, err := Ascend(cat, st)
	require.NoError(t, err)

	assert.Equal(t, int64(2), gained)
	assert.Equal(t, int64(5), next.Shards)
	assert.Equal(t, int64(2), next.Ascensions)
	assert.InDelta(t, 1.25, next.Multipliers.Global, 1e-12)
}

func TestAscend_NothingToGain(t *testing.T) {
	cat, st := newState()
	st.TotalEnergy = 5e5
	before := st.Clone()

	next, gained, err := Ascend(cat, st)

	assert.True(t, errors.Is(err, ErrNothingToGain))
	assert.Nil(t, next)
	assert.Zero(t, gained)
	assert.Equal(t, before, st)
}
