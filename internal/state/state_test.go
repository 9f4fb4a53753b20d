package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantum-forge/internal/catalog"
)

func TestDefault(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	st := Default(catalog.Default(), now)

	assert.Equal(t, Marker, st.Game)
	assert.Equal(t, CurrentVersion, st.Version)
	assert.Zero(t, st.Energy)
	assert.Equal(t, 0.05, st.ResearchRate)
	assert.Equal(t, 1.0, st.ClickPower)
	assert.Equal(t, 1.0, st.Multipliers.Fold(SourceAutomation, SourceGlobal, SourceAchievement))
	assert.Len(t, st.Generators, 5)
	assert.Len(t, st.Multipliers.Generator, 5)
	for id, owned := range st.Generators {
		assert.Zero(t, owned, id)
		assert.Equal(t, 1.0, st.Multipliers.ForGenerator(id))
	}
	assert.Empty(t, st.ActiveChallenge)
	assert.True(t, st.Settings.Autosave)
	assert.True(t, st.LastObserved().Equal(now))
}

func TestDefault_FreshMaps(t *testing.T) {
	cat := catalog.Default()
	a := Default(cat, time.Now())
	b := Default(cat, time.Now())

	a.Generators["gen1"] = 3
	a.Upgrades["click1"] = true

	assert.Zero(t, b.Generators["gen1"])
	assert.False(t, b.Upgrades["click1"])
}

func TestClone_IsDeep(t *testing.T) {
	st := Default(catalog.Default(), time.Now())
	st.Generators["gen2"] = 4
	st.Achievements["a1"] = true

	c := st.Clone()
	require.Equal(t, st, c)

	c.Generators["gen2"] = 9
	c.Multipliers.ScaleGenerator("gen3", 2)
	c.Achievements["a2"] = true

	assert.Equal(t, int64(4), st.Generators["gen2"])
	assert.Equal(t, 1.0, st.Multipliers.ForGenerator("gen3"))
	assert.False(t, st.Achievements["a2"])
}

func TestMultipliers_FoldAndScale(t *testing.T) {
	m := Multipliers{Automation: 1, Global: 1, Achievement: 1}

	m.Scale(SourceAutomation, 1.2)
	m.Scale(SourceGlobal, 1.5)
	m.Scale(SourceAchievement, 2)

	assert.InDelta(t, 1.2, m.Of(SourceAutomation), 1e-12)
	assert.InDelta(t, 3.6, m.Fold(SourceAutomation, SourceGlobal, SourceAchievement), 1e-12)
	assert.Equal(t, 1.0, m.Fold())
	assert.Equal(t, 1.0, m.Of(Source("unknown")))

	m.ScaleGenerator("gen3", 1.5)
	m.ScaleGenerator("gen3", 2)
	assert.InDelta(t, 3.0, m.ForGenerator("gen3"), 1e-12)
	assert.Equal(t, 1.0, m.ForGenerator("gen9"))
}

func TestTotalOwned(t *testing.T) {
	st := Default(catalog.Default(), time.Now())
	st.Generators["gen1"] = 10
	st.Generators["gen4"] = 2
	st.Generators["ghost"] = 100

	assert.Equal(t, int64(12), st.TotalOwned(catalog.Default()))
	assert.Equal(t, int64(10), st.Owned("gen1"))
	assert.Zero(t, st.Owned("missing"))
}
