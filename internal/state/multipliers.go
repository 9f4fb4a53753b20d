package state

// Source names one multiplier accumulator.
type Source string

const (
	SourceAutomation  Source = "automation"
	SourceGlobal      Source = "global"
	SourceAchievement Source = "achievement"
)

// Multipliers holds the running-product accumulators. They only ever grow or
// shrink by effect application; nothing divides a factor back out.
type Multipliers struct {
	Automation  float64            `json:"automation"`
	Global      float64            `json:"global"`
	Achievement float64            `json:"achievement"`
	Generator   map[string]float64 `json:"generator"`
}

// Of returns the value of a named source. Unknown sources are neutral.
func (m Multipliers) Of(src Source) float64 {
	switch src {
	case SourceAutomation:
		return m.Automation
	case SourceGlobal:
		return m.Global
	case SourceAchievement:
		return m.Achievement
	}
	return 1
}

// Fold multiplies the given sources in order.
func (m Multipliers) Fold(sources ...Source) float64 {
	product := 1.0
	for _, src := range sources {
		product *= m.Of(src)
	}
	return product
}

// ForGenerator returns the generator-specific multiplier, 1 when unset.
func (m Multipliers) ForGenerator(id string) float64 {
	if v, ok := m.Generator[id]; ok {
		return v
	}
	return 1
}

// Scale multiplies a named source by factor.
func (m *Multipliers) Scale(src Source, factor float64) {
	switch src {
	case SourceAutomation:
		m.Automation *= factor
	case SourceGlobal:
		m.Global *= factor
	case SourceAchievement:
		m.Achievement *= factor
	}
}

// ScaleGenerator multiplies the generator-specific multiplier by factor.
func (m *Multipliers) ScaleGenerator(id string, factor float64) {
	if m.Generator == nil {
		m.Generator = map[string]float64{}
	}
	m.Generator[id] = m.ForGenerator(id) * factor
}

func (m Multipliers) clone() Multipliers {
	m.Generator = cloneMap(m.Generator)
	return m
}
