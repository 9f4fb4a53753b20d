package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTick_ClampsFrame(t *testing.T) {
	cat, st := newState()
	st.Generators["gen2"] = 10

	res := Tick(cat, st, 5)

	assert.Equal(t, 0.5, res.Elapsed)
	assert.InDelta(t, 5.0, res.Gain, 1e-9)
	assert.InDelta(t, 5.0, st.Energy, 1e-9)
	assert.InDelta(t, 5.0, st.TotalEnergy, 1e-9)
	assert.InDelta(t, 0.025, st.ResearchPoints, 1e-12)
}

func TestTick_DegenerateElapsed(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
	}{
		{name: "zero", elapsed: 0},
		{name: "negative", elapsed: -3},
		{name: "nan", elapsed: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, st := newState()
			st.Generators["gen2"] = 10

			res := Tick(cat, st, tt.elapsed)
			assert.Zero(t, res.Elapsed)
			assert.Zero(t, res.Gain)
			assert.Zero(t, st.Energy)
			assert.Zero(t, st.ResearchPoints)
		})
	}
}

func TestAdvance_Unclamped(t *testing.T) {
	cat, st := newState()
	st.Generators["gen2"] = 10

	res := Advance(cat, st, 5)

	assert.Equal(t, 5.0, res.Elapsed)
	assert.InDelta(t, 50.0, st.Energy, 1e-9)
	assert.InDelta(t, 0.25, st.ResearchPoints, 1e-12)
}

func TestAdvance_UnlocksAchievementsInOrder(t *testing.T) {
	cat, st := newState()
	st.Generators["gen2"] = 10

	res := Advance(cat, st, 100)

	assert.Equal(t, []string{"a1", "a2"}, res.Unlocked)
	assert.True(t, st.Achievements["a1"])
	assert.True(t, st.Achievements["a2"])
	assert.False(t, st.Achievements["a3"])
	assert.InDelta(t, 1.02*1.02, st.Multipliers.Achievement, 1e-12)

	// bonuses apply exactly once
	res = Advance(cat, st, 1)
	assert.Empty(t, res.Unlocked)
	assert.InDelta(t, 1.02*1.02, st.Multipliers.Achievement, 1e-12)
}

func TestAdvance_NonProductionConditions(t *testing.T) {
	cat, st := newState()
	st.Clicks = 500
	st.ResearchCompleted = 3
	st.Generators["gen1"] = 100

	res := Tick(cat, st, 0)

	assert.Equal(t, []string{"a4", "a5", "a6"}, res.Unlocked)
}

func TestAdvance_IgnoresUnknownGeneratorCounts(t *testing.T) {
	cat, st := newState()
	st.Generators["ghost"] = 100

	res := Advance(cat, st, 0)

	assert.Empty(t, res.Unlocked)
	assert.Equal(t, 1.0, st.Multipliers.Achievement)
}

func TestAdvance_LifetimeNeverDecreases(t *testing.T) {
	cat, st := newState()
	st.Generators["gen1"] = 40
	st.Energy = 1000

	prev := st.TotalEnergy
	for i := 0; i < 50; i++ {
		Tick(cat, st, 0.1)
		Buy(cat, st, "gen1", Single)
		PurchaseUpgrade(cat, st, "click1")
		Click(cat, st)

		assert.GreaterOrEqual(t, st.TotalEnergy, prev)
		assert.GreaterOrEqual(t, st.Energy, 0.0)
		prev = st.TotalEnergy
	}
}

func BenchmarkTick(b *testing.B) {
	cat, st := newState()
	for _, gen := range cat.Generators() {
		st.Generators[gen.ID] = 50
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Tick(cat, st, 0.1)
	}
}
