// Package engine implements the progression rules: cost scaling, production,
// purchases, challenges, the production clock, offline catch-up and prestige.
//
// Everything here is synchronous and run-to-completion. Functions take the
// read-only catalog and mutate the given state in place; callers that share a
// state between goroutines must serialize access themselves.
package engine

import (
	"errors"
	"math"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// Errors
var (
	ErrUnknownGenerator = errors.New("unknown generator")
	ErrUnknownUpgrade   = errors.New("unknown upgrade")
	ErrUnknownResearch  = errors.New("unknown research")
	ErrUnknownChallenge = errors.New("unknown challenge")
	ErrBulkBuyDisabled  = errors.New("bulk buy is not available in this catalog")
	ErrInvalidAmount    = errors.New("invalid buy amount")
	ErrNothingToGain    = errors.New("nothing to gain from ascending")
)

// outputSources are the accumulators folded into per-unit generator output.
var outputSources = []state.Source{state.SourceAutomation, state.SourceGlobal, state.SourceAchievement}

// clickSources are the accumulators folded into click value.
var clickSources = []state.Source{state.SourceGlobal, state.SourceAchievement}

// CostOf returns the price of the next unit of gen when owned units are held:
// ceil(baseCost × (costGrowth × modifier)^owned) × challenge cost factor.
// The state's cost growth modifier is clamped to the catalog minimum.
func CostOf(cat *catalog.Catalog, gen catalog.Generator, owned int64, st *state.State) float64 {
	modifier := math.Max(st.CostGrowth, cat.Tuning().MinCostGrowthModifier)
	growth := gen.CostGrowth * modifier
	cost := math.Ceil(gen.BaseCost * math.Pow(growth, float64(owned)))
	if ch, ok := activeChallenge(cat, st); ok {
		cost *= ch.CostMultiplier
	}
	return cost
}

// OutputOf returns the per-unit output of gen, which sits at tier in the catalog.
func OutputOf(cat *catalog.Catalog, gen catalog.Generator, tier int, st *state.State) float64 {
	out := gen.BaseOutput * st.Multipliers.Fold(outputSources...) * st.Multipliers.ForGenerator(gen.ID)
	if ch, ok := activeChallenge(cat, st); ok {
		out *= ch.OutputMultiplier
	}
	if st.TieredSynergy && cat.Features().TieredSynergy {
		out *= 1 + cat.Tuning().SynergyRate*float64(tier)
	}
	return out
}

// TotalProductionRate returns energy per second across all owned generators.
func TotalProductionRate(cat *catalog.Catalog, st *state.State) float64 {
	var rate float64
	for tier, gen := range cat.Generators() {
		owned := st.Owned(gen.ID)
		if owned == 0 {
			continue
		}
		rate += float64(owned) * OutputOf(cat, gen, tier, st)
	}
	return rate
}

// ClickValue returns the energy granted by one manual click.
func ClickValue(cat *catalog.Catalog, st *state.State) float64 {
	if ch, ok := activeChallenge(cat, st); ok && ch.ClicksDisabled {
		return 0
	}
	shardBonus := 1.0
	if st.ClickShardScale {
		shardBonus = 1 + math.Log10(1+float64(st.Shards))
	}
	return st.ClickPower * st.Multipliers.Fold(clickSources...) * shardBonus
}

// CombinedMultiplier is the display multiplier: global × automation × achievement.
func CombinedMultiplier(st *state.State) float64 {
	return st.Multipliers.Fold(outputSources...)
}

func activeChallenge(cat *catalog.Catalog, st *state.State) (catalog.Challenge, bool) {
	if st.ActiveChallenge == "" {
		return catalog.Challenge{}, false
	}
	return cat.Challenge(st.ActiveChallenge)
}
