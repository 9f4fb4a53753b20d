package service

import (
	"sort"

	"github.com/quantum-forge/internal/display"
	"github.com/quantum-forge/internal/engine"
	"github.com/quantum-forge/internal/types"
)

// View builds the read model of the game.
func (g *Game) View() types.GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.st
	rate := engine.TotalProductionRate(g.cat, st)
	click := engine.ClickValue(g.cat, st)
	next := engine.ShardsOnAscend(g.cat, st)
	combined := engine.CombinedMultiplier(st)

	gens := make([]types.GeneratorView, 0, len(g.cat.Generators()))
	for tier, gen := range g.cat.Generators() {
		owned := st.Owned(gen.ID)
		cost := engine.CostOf(g.cat, gen, owned, st)
		output := engine.OutputOf(g.cat, gen, tier, st)
		gens = append(gens, types.GeneratorView{
			ID:            gen.ID,
			Name:          gen.Name,
			Owned:         owned,
			Cost:          cost,
			CostDisplay:   display.Number(cost),
			Output:        output,
			OutputDisplay: display.Rate(output),
			Affordable:    st.Energy >= cost,
		})
	}

	return types.GameView{
		ID: g.id,

		Energy:             st.Energy,
		EnergyDisplay:      display.Number(st.Energy),
		TotalEnergy:        st.TotalEnergy,
		TotalEnergyDisplay: display.Number(st.TotalEnergy),
		Rate:               rate,
		RateDisplay:        display.Rate(rate),
		ClickValue:         click,
		ClickValueDisplay:  display.Number(click),

		ResearchPoints:        st.ResearchPoints,
		ResearchPointsDisplay: display.Number(st.ResearchPoints),
		ResearchRate:          st.ResearchRate,

		Shards:           st.Shards,
		ShardsDisplay:    display.Count(st.Shards),
		NextAscendShards: next,
		CanAscend:        next >= 1,
		Ascensions:       st.Ascensions,

		CombinedMultiplier:        combined,
		CombinedMultiplierDisplay: display.Multiplier(combined),

		Generators:      gens,
		Upgrades:        members(st.Upgrades),
		Research:        members(st.Research),
		Achievements:    members(st.Achievements),
		ActiveChallenge: st.ActiveChallenge,

		Settings: types.Settings(st.Settings),
		Notices:  g.notices.list(),
	}
}

// members lists the ids set to true, sorted.
func members(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id, ok := range set {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
