package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOfflineCatchUp(t *testing.T) {
	cat, st := newState()
	st.Generators["gen2"] = 10
	now := epoch.Add(100 * time.Second)

	report := ApplyOfflineCatchUp(cat, st, now)

	assert.True(t, report.Applied)
	assert.Equal(t, 100.0, report.Elapsed)
	assert.InDelta(t, 500.0, report.Gain, 1e-9)
	assert.InDelta(t, 500.0, st.Energy, 1e-9)
	assert.InDelta(t, 500.0, st.TotalEnergy, 1e-9)
	// research accrues at the full rate
	assert.InDelta(t, 5.0, report.ResearchGain, 1e-9)
	assert.Equal(t, []string{"a1"}, report.Unlocked)
	assert.Equal(t, now.UnixMilli(), st.LastObservedMs)
}

func TestApplyOfflineCatchUp_OfflineGainResearch(t *testing.T) {
	cat, st := newState()
	st.Generators["gen2"] = 10
	st.ResearchPoints = 35

	outcome, err := CompleteResearch(cat, st, "rp2")
	require.NoError(t, err)
	require.Equal(t, Purchased, outcome)

	report := ApplyOfflineCatchUp(cat, st, epoch.Add(100*time.Second))
	assert.InDelta(t, 625.0, report.Gain, 1e-9)
}

func TestApplyOfflineCatchUp_Threshold(t *testing.T) {
	tests := []struct {
		name    string
		gap     time.Duration
		applied bool
	}{
		{name: "continuous play", gap: 2 * time.Second},
		{name: "exactly at threshold", gap: 3 * time.Second},
		{name: "just over threshold", gap: 3*time.Second + time.Millisecond, applied: true},
		{name: "clock skew", gap: -time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, st := newState()
			st.Generators["gen2"] = 10
			now := epoch.Add(tt.gap)

			report := ApplyOfflineCatchUp(cat, st, now)

			assert.Equal(t, tt.applied, report.Applied)
			if !tt.applied {
				assert.Zero(t, st.Energy)
			} else {
				assert.Greater(t, st.Energy, 0.0)
			}
			assert.Equal(t, now.UnixMilli(), st.LastObservedMs)
		})
	}
}

func TestApplyOfflineCatchUp_NotCreditedTwice(t *testing.T) {
	cat, st := newState()
	st.Generators["gen2"] = 10
	now := epoch.Add(time.Hour)

	first := ApplyOfflineCatchUp(cat, st, now)
	require.True(t, first.Applied)
	energy := st.Energy

	second := ApplyOfflineCatchUp(cat, st, now)
	assert.False(t, second.Applied)
	assert.Equal(t, energy, st.Energy)
}
