package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseUpgrade(t *testing.T) {
	cat, st := newState()
	st.Energy = 100

	outcome, err := PurchaseUpgrade(cat, st, "click1")
	require.NoError(t, err)
	assert.Equal(t, Purchased, outcome)
	assert.Equal(t, 50.0, st.Energy)
	assert.Equal(t, 2.0, st.ClickPower)
	assert.True(t, st.Upgrades["click1"])

	// a second purchase neither charges nor re-applies
	outcome, err = PurchaseUpgrade(cat, st, "click1")
	require.NoError(t, err)
	assert.Equal(t, AlreadyOwned, outcome)
	assert.Equal(t, 50.0, st.Energy)
	assert.Equal(t, 2.0, st.ClickPower)
}

func TestPurchaseUpgrade_InsufficientFunds(t *testing.T) {
	cat, st := newState()
	st.Energy = 1499
	before := st.Clone()

	outcome, err := PurchaseUpgrade(cat, st, "auto1")
	require.NoError(t, err)
	assert.Equal(t, InsufficientFunds, outcome)
	assert.Equal(t, before, st)
}

func TestPurchaseUpgrade_Effects(t *testing.T) {
	tests := []struct {
		id   string
		cost float64
	}{
		{id: "auto1", cost: 1500},
		{id: "global1", cost: 5000},
		{id: "gen3b", cost: 8000},
		{id: "click2", cost: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cat, st := newState()
			st.Energy = tt.cost

			outcome, err := PurchaseUpgrade(cat, st, tt.id)
			require.NoError(t, err)
			require.Equal(t, Purchased, outcome)
			assert.Zero(t, st.Energy)

			switch tt.id {
			case "auto1":
				assert.InDelta(t, 1.2, st.Multipliers.Automation, 1e-12)
			case "global1":
				assert.InDelta(t, 1.15, st.Multipliers.Global, 1e-12)
			case "gen3b":
				assert.InDelta(t, 1.5, st.Multipliers.ForGenerator("gen3"), 1e-12)
				assert.Equal(t, 1.0, st.Multipliers.ForGenerator("gen2"))
			case "click2":
				assert.True(t, st.ClickShardScale)
			}
		})
	}
}

func TestPurchaseUpgrade_Unknown(t *testing.T) {
	cat, st := newState()
	_, err := PurchaseUpgrade(cat, st, "nope")
	assert.True(t, errors.Is(err, ErrUnknownUpgrade))
}

func TestCompleteResearch(t *testing.T) {
	cat, st := newState()
	st.ResearchPoints = 12

	outcome, err := CompleteResearch(cat, st, "rp1")
	require.NoError(t, err)
	assert.Equal(t, Purchased, outcome)
	assert.InDelta(t, 2.0, st.ResearchPoints, 1e-12)
	assert.InDelta(t, 0.055, st.ResearchRate, 1e-12)
	assert.Equal(t, int64(1), st.ResearchCompleted)

	outcome, err = CompleteResearch(cat, st, "rp1")
	require.NoError(t, err)
	assert.Equal(t, AlreadyOwned, outcome)
	assert.Equal(t, int64(1), st.ResearchCompleted)

	outcome, err = CompleteResearch(cat, st, "rp2")
	require.NoError(t, err)
	assert.Equal(t, InsufficientFunds, outcome)
	assert.Equal(t, 1.0, st.OfflineGain)

	_, err = CompleteResearch(cat, st, "rp9")
	assert.True(t, errors.Is(err, ErrUnknownResearch))
}

func TestCompleteResearch_EnablesSynergy(t *testing.T) {
	cat, st := newState()
	st.ResearchPoints = 200

	outcome, err := CompleteResearch(cat, st, "rp5")
	require.NoError(t, err)
	require.Equal(t, Purchased, outcome)
	assert.True(t, st.TieredSynergy)
}

func TestClick(t *testing.T) {
	cat, st := newState()

	gained := Click(cat, st)
	assert.Equal(t, 1.0, gained)
	assert.Equal(t, 1.0, st.Energy)
	assert.Equal(t, 1.0, st.TotalEnergy)
	assert.Equal(t, int64(1), st.Clicks)
}

func TestClick_IgnoredUnderSilence(t *testing.T) {
	cat, st := newState()
	_, err := StartChallenge(cat, st, "c3")
	require.NoError(t, err)

	assert.Zero(t, Click(cat, st))
	assert.Zero(t, st.Energy)
	assert.Zero(t, st.TotalEnergy)
	assert.Zero(t, st.Clicks)
}

func TestChallenges(t *testing.T) {
	cat, st := newState()

	ended, err := StartChallenge(cat, st, "c1")
	require.NoError(t, err)
	assert.Empty(t, ended)
	assert.Equal(t, "c1", st.ActiveChallenge)

	// starting the same challenge again changes nothing
	ended, err = StartChallenge(cat, st, "c1")
	require.NoError(t, err)
	assert.Empty(t, ended)
	assert.Equal(t, "c1", st.ActiveChallenge)

	// at most one challenge is active
	ended, err = StartChallenge(cat, st, "c2")
	require.NoError(t, err)
	assert.Equal(t, "c1", ended)
	assert.Equal(t, "c2", st.ActiveChallenge)

	_, err = StartChallenge(cat, st, "c7")
	assert.True(t, errors.Is(err, ErrUnknownChallenge))
	assert.Equal(t, "c2", st.ActiveChallenge)

	assert.Equal(t, "c2", StopChallenge(st))
	assert.Empty(t, st.ActiveChallenge)
	assert.Empty(t, StopChallenge(st))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "purchased", Purchased.String())
	assert.Equal(t, "already_owned", AlreadyOwned.String())
	assert.Equal(t, "insufficient_funds", InsufficientFunds.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
