package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// Amount is how many generator units a buy asks for: a fixed count or as
// many as are affordable.
type Amount struct {
	Units int64
	Max   bool
}

// Single is a one-unit buy.
var Single = Amount{Units: 1}

// MaxAffordable buys until the balance runs out.
var MaxAffordable = Amount{Max: true}

// ParseAmount accepts "max" or a positive integer. An empty string means one unit.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return Single, nil
	case "max":
		return MaxAffordable, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Amount{Units: n}, nil
}

func (a Amount) String() string {
	if a.Max {
		return "max"
	}
	return strconv.FormatInt(a.Units, 10)
}

// BuyResult reports what a buy actually did.
type BuyResult struct {
	Bought int64
	Spent  float64
	// CapReached is set when the iteration bound stopped the loop rather than
	// the balance. It is not reachable with a sane catalog.
	CapReached bool
}

// Buy purchases generator units one at a time, re-pricing after each unit,
// and stops silently at the first unit it cannot afford. Partial fulfilment
// is the normal outcome; an unaffordable buy is a no-op, not an error.
func Buy(cat *catalog.Catalog, st *state.State, genID string, amount Amount) (BuyResult, error) {
	gen, _, ok := cat.Generator(genID)
	if !ok {
		return BuyResult{}, fmt.Errorf("%w: %s", ErrUnknownGenerator, genID)
	}
	if !cat.Features().BulkBuy && (amount.Max || amount.Units > 1) {
		return BuyResult{}, ErrBulkBuyDisabled
	}

	bound := cat.Tuning().MaxBuyIterations
	limit := bound
	if !amount.Max && amount.Units < limit {
		limit = amount.Units
	}

	var res BuyResult
	for res.Bought < limit {
		cost := CostOf(cat, gen, st.Generators[gen.ID], st)
		if st.Energy < cost {
			return res, nil
		}
		st.Energy -= cost
		st.Generators[gen.ID]++
		res.Bought++
		res.Spent += cost
	}
	res.CapReached = amount.Max || amount.Units > bound
	return res, nil
}
