package engine

import (
	"fmt"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// Outcome is the result of a purchase-once operation.
type Outcome int

const (
	Purchased Outcome = iota
	AlreadyOwned
	InsufficientFunds
)

func (o Outcome) String() string {
	switch o {
	case Purchased:
		return "purchased"
	case AlreadyOwned:
		return "already_owned"
	case InsufficientFunds:
		return "insufficient_funds"
	}
	return "unknown"
}

// PurchaseUpgrade buys an upgrade with energy and applies its effects once.
func PurchaseUpgrade(cat *catalog.Catalog, st *state.State, id string) (Outcome, error) {
	up, ok := cat.Upgrade(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUpgrade, id)
	}
	if st.Upgrades[id] {
		return AlreadyOwned, nil
	}
	if st.Energy < up.Cost {
		return InsufficientFunds, nil
	}
	st.Energy -= up.Cost
	applyEffects(st, up.Effects)
	st.Upgrades[id] = true
	return Purchased, nil
}

// CompleteResearch buys a research node with research points and applies its
// effects once.
func CompleteResearch(cat *catalog.Catalog, st *state.State, id string) (Outcome, error) {
	node, ok := cat.ResearchNode(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownResearch, id)
	}
	if st.Research[id] {
		return AlreadyOwned, nil
	}
	if st.ResearchPoints < node.Cost {
		return InsufficientFunds, nil
	}
	st.ResearchPoints -= node.Cost
	applyEffects(st, node.Effects)
	st.Research[id] = true
	st.ResearchCompleted++
	return Purchased, nil
}

// Click grants one click's worth of energy and returns it. While a
// clicks-disabled challenge is active the click is ignored entirely.
func Click(cat *catalog.Catalog, st *state.State) float64 {
	value := ClickValue(cat, st)
	if value <= 0 {
		return 0
	}
	st.Energy += value
	st.TotalEnergy += value
	st.Clicks++
	return value
}

// StartChallenge enters challenge id, ending whichever challenge was active.
// It returns the id of the challenge that was ended, if any. Starting the
// already-active challenge is a no-op.
func StartChallenge(cat *catalog.Catalog, st *state.State, id string) (string, error) {
	if _, ok := cat.Challenge(id); !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownChallenge, id)
	}
	if st.ActiveChallenge == id {
		return "", nil
	}
	ended := StopChallenge(st)
	st.ActiveChallenge = id
	return ended, nil
}

// StopChallenge leaves the active challenge and returns its id ("" when none).
func StopChallenge(st *state.State) string {
	ended := st.ActiveChallenge
	st.ActiveChallenge = ""
	return ended
}
