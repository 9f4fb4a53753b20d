package engine

import (
	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// ApplyEffect interprets one catalog effect against st. Effects the catalog
// validator would reject are ignored.
func ApplyEffect(st *state.State, e catalog.Effect) {
	switch e.Kind {
	case catalog.EffectMultiply:
		switch e.Target {
		case catalog.TargetAutomation:
			st.Multipliers.Scale(state.SourceAutomation, e.Value)
		case catalog.TargetGlobal:
			st.Multipliers.Scale(state.SourceGlobal, e.Value)
		case catalog.TargetAchievement:
			st.Multipliers.Scale(state.SourceAchievement, e.Value)
		case catalog.TargetGenerator:
			st.Multipliers.ScaleGenerator(e.Generator, e.Value)
		case catalog.TargetCostGrowth:
			st.CostGrowth *= e.Value
		case catalog.TargetOfflineGain:
			st.OfflineGain *= e.Value
		case catalog.TargetResearchRate:
			st.ResearchRate *= e.Value
		}
	case catalog.EffectAdd:
		if e.Target == catalog.TargetClickPower {
			st.ClickPower += e.Value
		}
	case catalog.EffectEnable:
		switch e.Target {
		case catalog.TargetClickShardScale:
			st.ClickShardScale = true
		case catalog.TargetTieredSynergy:
			st.TieredSynergy = true
		}
	}
}

func applyEffects(st *state.State, effects []catalog.Effect) {
	for _, e := range effects {
		ApplyEffect(st, e)
	}
}
