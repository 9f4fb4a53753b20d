package save

import (
	"fmt"
	"math"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

func validate(cat *catalog.Catalog, st *state.State) error {
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"energy", st.Energy},
		{"total_energy", st.TotalEnergy},
		{"research_points", st.ResearchPoints},
		{"research_rate", st.ResearchRate},
		{"click_power", st.ClickPower},
	}
	for _, f := range nonNegative {
		if !finite(f.v) || f.v < 0 {
			return fmt.Errorf("%s must be a non-negative number, got %v", f.name, f.v)
		}
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"multipliers.automation", st.Multipliers.Automation},
		{"multipliers.global", st.Multipliers.Global},
		{"multipliers.achievement", st.Multipliers.Achievement},
		{"cost_growth", st.CostGrowth},
		{"offline_gain", st.OfflineGain},
	}
	for _, f := range positive {
		if !finite(f.v) || f.v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", f.name, f.v)
		}
	}
	for id, v := range st.Multipliers.Generator {
		if _, _, ok := cat.Generator(id); !ok {
			return fmt.Errorf("unknown generator %q in multipliers.generator", id)
		}
		if !finite(v) || v <= 0 {
			return fmt.Errorf("multipliers.generator[%s] must be positive, got %v", id, v)
		}
	}

	counts := []struct {
		name string
		v    int64
	}{
		{"shards", st.Shards},
		{"clicks", st.Clicks},
		{"research_completed", st.ResearchCompleted},
		{"ascensions", st.Ascensions},
	}
	for _, c := range counts {
		if c.v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", c.name, c.v)
		}
	}
	for id, n := range st.Generators {
		if _, _, ok := cat.Generator(id); !ok {
			return fmt.Errorf("unknown generator %q", id)
		}
		if n < 0 {
			return fmt.Errorf("generators[%s] must not be negative, got %d", id, n)
		}
	}

	if st.ActiveChallenge != "" {
		if _, ok := cat.Challenge(st.ActiveChallenge); !ok {
			return fmt.Errorf("unknown active challenge %q", st.ActiveChallenge)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
