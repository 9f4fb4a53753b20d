package engine

import (
	"time"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// OfflineReport describes one offline catch-up.
type OfflineReport struct {
	Applied      bool
	Elapsed      float64 // seconds since the state was last observed
	Gain         float64
	ResearchGain float64
	Unlocked     []string
}

// ApplyOfflineCatchUp credits the time since the state was last observed as one
// production step. Gaps at or below the offline threshold count as continuous
// play and are skipped. Energy production runs at OfflineGain × OfflineEfficiency;
// research accrues at the full rate. The observation timestamp is always
// moved to now so the same idle time is never credited twice.
func ApplyOfflineCatchUp(cat *catalog.Catalog, st *state.State, now time.Time) OfflineReport {
	tuning := cat.Tuning()

	elapsed := now.Sub(st.LastObserved()).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	report := OfflineReport{Elapsed: elapsed}

	if elapsed > tuning.OfflineThresholdSeconds {
		res := advance(cat, st, elapsed, st.OfflineGain*tuning.OfflineEfficiency)
		report.Applied = true
		report.Gain = res.Gain
		report.ResearchGain = res.ResearchGain
		report.Unlocked = res.Unlocked
	}

	st.SetLastObserved(now)
	return report
}
