package catalog

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid catalog")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func validate(d Definitions) error {
	if len(d.Generators) == 0 {
		return invalidf("at least one generator is required")
	}

	genIDs := make(map[string]bool, len(d.Generators))
	for _, g := range d.Generators {
		if g.ID == "" {
			return invalidf("generator with empty id")
		}
		if genIDs[g.ID] {
			return invalidf("duplicate generator %q", g.ID)
		}
		genIDs[g.ID] = true
		if !positive(g.BaseCost) {
			return invalidf("generator %q: base_cost must be > 0", g.ID)
		}
		if !(g.CostGrowth > 1) || math.IsInf(g.CostGrowth, 0) {
			return invalidf("generator %q: cost_growth must be > 1", g.ID)
		}
		if g.BaseOutput < 0 || !finite(g.BaseOutput) {
			return invalidf("generator %q: base_output must be >= 0", g.ID)
		}
	}

	seen := map[string]bool{}
	for _, u := range d.Upgrades {
		if err := checkEntry("upgrade", u.ID, u.Cost, seen); err != nil {
			return err
		}
		if err := checkEffects("upgrade", u.ID, u.Effects, genIDs); err != nil {
			return err
		}
	}

	seen = map[string]bool{}
	for _, r := range d.Research {
		if err := checkEntry("research", r.ID, r.Cost, seen); err != nil {
			return err
		}
		if err := checkEffects("research", r.ID, r.Effects, genIDs); err != nil {
			return err
		}
	}

	seen = map[string]bool{}
	for _, c := range d.Challenges {
		if err := checkEntry("challenge", c.ID, 0, seen); err != nil {
			return err
		}
		if !positive(c.CostMultiplier) || !positive(c.OutputMultiplier) {
			return invalidf("challenge %q: multipliers must be > 0", c.ID)
		}
	}

	seen = map[string]bool{}
	for _, a := range d.Achievements {
		if err := checkEntry("achievement", a.ID, 0, seen); err != nil {
			return err
		}
		switch a.Condition.Kind {
		case ConditionLifetimeEnergy, ConditionClicks, ConditionResearchCompleted,
			ConditionGeneratorsOwned, ConditionShards:
		default:
			return invalidf("achievement %q: unknown condition %q", a.ID, a.Condition.Kind)
		}
		if a.Condition.Threshold < 0 || !finite(a.Condition.Threshold) {
			return invalidf("achievement %q: threshold must be >= 0", a.ID)
		}
		if err := checkEffects("achievement", a.ID, a.Effects, genIDs); err != nil {
			return err
		}
	}

	t := d.Tuning
	for name, v := range map[string]float64{
		"reset_threshold":           t.ResetThreshold,
		"prestige_bonus_per_shard":  t.PrestigeBonusPerShard,
		"offline_efficiency":        t.OfflineEfficiency,
		"offline_threshold_seconds": t.OfflineThresholdSeconds,
		"max_frame_seconds":         t.MaxFrameSeconds,
		"min_cost_growth_modifier":  t.MinCostGrowthModifier,
		"synergy_rate":              t.SynergyRate,
		"base_research_rate":        t.BaseResearchRate,
		"base_click_power":          t.BaseClickPower,
	} {
		if !positive(v) {
			return invalidf("tuning %s must be > 0", name)
		}
	}
	if t.MaxBuyIterations <= 0 {
		return invalidf("tuning max_buy_iterations must be > 0")
	}
	return nil
}

func checkEntry(kind, id string, cost float64, seen map[string]bool) error {
	if id == "" {
		return invalidf("%s with empty id", kind)
	}
	if seen[id] {
		return invalidf("duplicate %s %q", kind, id)
	}
	seen[id] = true
	if cost < 0 || !finite(cost) {
		return invalidf("%s %q: cost must be >= 0", kind, id)
	}
	return nil
}

func checkEffects(kind, id string, effects []Effect, generators map[string]bool) error {
	for _, e := range effects {
		if err := checkEffect(e, generators); err != nil {
			return invalidf("%s %q: %v", kind, id, err)
		}
	}
	return nil
}

func checkEffect(e Effect, generators map[string]bool) error {
	switch e.Kind {
	case EffectMultiply:
		switch e.Target {
		case TargetAutomation, TargetGlobal, TargetAchievement, TargetCostGrowth,
			TargetOfflineGain, TargetResearchRate:
		case TargetGenerator:
			if !generators[e.Generator] {
				return fmt.Errorf("effect references unknown generator %q", e.Generator)
			}
		default:
			return fmt.Errorf("cannot multiply %q", e.Target)
		}
		if !positive(e.Value) {
			return fmt.Errorf("multiply factor must be > 0")
		}
	case EffectAdd:
		if e.Target != TargetClickPower {
			return fmt.Errorf("cannot add to %q", e.Target)
		}
		if !finite(e.Value) {
			return fmt.Errorf("add value must be finite")
		}
	case EffectEnable:
		if e.Target != TargetClickShardScale && e.Target != TargetTieredSynergy {
			return fmt.Errorf("cannot enable %q", e.Target)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}

func positive(v float64) bool { return v > 0 && finite(v) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
