package engine

import (
	"math"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// AdvanceResult reports what one production clock step did.
type AdvanceResult struct {
	Elapsed      float64  // seconds actually simulated
	Gain         float64  // energy produced
	ResearchGain float64  // research points accrued
	Unlocked     []string // achievements unlocked, in catalog order
}

// Tick is the live-loop step. Elapsed is clamped to [0, MaxFrameSeconds] so a
// stalled frame cannot inflate production.
func Tick(cat *catalog.Catalog, st *state.State, elapsedSeconds float64) AdvanceResult {
	return advance(cat, st, clampElapsed(elapsedSeconds, cat.Tuning().MaxFrameSeconds), 1)
}

// Advance runs the production clock over elapsedSeconds without clamping.
// Negative or NaN durations advance nothing.
func Advance(cat *catalog.Catalog, st *state.State, elapsedSeconds float64) AdvanceResult {
	return advance(cat, st, clampElapsed(elapsedSeconds, math.Inf(1)), 1)
}

// advance applies production scaled by productionScale, research accrual at
// full rate, then evaluates achievements.
func advance(cat *catalog.Catalog, st *state.State, elapsed, productionScale float64) AdvanceResult {
	res := AdvanceResult{Elapsed: elapsed}
	if elapsed > 0 {
		res.Gain = TotalProductionRate(cat, st) * elapsed * productionScale
		st.Energy += res.Gain
		st.TotalEnergy += res.Gain

		res.ResearchGain = st.ResearchRate * elapsed
		st.ResearchPoints += res.ResearchGain
	}
	res.Unlocked = evaluateAchievements(cat, st)
	return res
}

// CheckAchievements unlocks achievements whose conditions hold after an
// operation outside the clock, such as a click or a purchase.
func CheckAchievements(cat *catalog.Catalog, st *state.State) []string {
	return evaluateAchievements(cat, st)
}

// evaluateAchievements unlocks, in catalog order, every achievement whose
// condition now holds, applying each bonus exactly once.
func evaluateAchievements(cat *catalog.Catalog, st *state.State) []string {
	var unlocked []string
	for _, a := range cat.Achievements() {
		if st.Achievements[a.ID] || !conditionMet(cat, st, a.Condition) {
			continue
		}
		st.Achievements[a.ID] = true
		applyEffects(st, a.Effects)
		unlocked = append(unlocked, a.ID)
	}
	return unlocked
}

func conditionMet(cat *catalog.Catalog, st *state.State, c catalog.Condition) bool {
	var v float64
	switch c.Kind {
	case catalog.ConditionLifetimeEnergy:
		v = st.TotalEnergy
	case catalog.ConditionClicks:
		v = float64(st.Clicks)
	case catalog.ConditionResearchCompleted:
		v = float64(st.ResearchCompleted)
	case catalog.ConditionGeneratorsOwned:
		v = float64(st.TotalOwned(cat))
	case catalog.ConditionShards:
		v = float64(st.Shards)
	default:
		return false
	}
	return v >= c.Threshold
}

func clampElapsed(elapsed, upper float64) float64 {
	if math.IsNaN(elapsed) || elapsed < 0 {
		return 0
	}
	return math.Min(elapsed, upper)
}
