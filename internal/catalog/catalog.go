// Package catalog holds the static definitions table: generator tiers, upgrades,
// research nodes, challenges, achievements and the tuning constants that drive
// the economy. A Catalog is built once at startup and is read-only afterwards,
// so it can be shared by every session without locking.
package catalog

// Generator is a passive producer owned in integer quantity.
type Generator struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	BaseCost   float64 `yaml:"base_cost" json:"base_cost"`
	CostGrowth float64 `yaml:"cost_growth" json:"cost_growth"`
	BaseOutput float64 `yaml:"base_output" json:"base_output"` // energy per second per unit
}

// Upgrade is a one-time purchase paid in energy.
type Upgrade struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Cost        float64  `yaml:"cost" json:"cost"`
	Effects     []Effect `yaml:"effects" json:"effects"`
}

// Research is a one-time purchase paid in research points.
type Research struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Cost        float64  `yaml:"cost" json:"cost"`
	Effects     []Effect `yaml:"effects" json:"effects"`
}

// Challenge is a temporary modifier regime. Entering it records its id on the
// state; the multipliers below apply for as long as it stays active.
type Challenge struct {
	ID               string  `yaml:"id" json:"id"`
	Name             string  `yaml:"name" json:"name"`
	Description      string  `yaml:"description" json:"description"`
	CostMultiplier   float64 `yaml:"cost_multiplier" json:"cost_multiplier"`
	OutputMultiplier float64 `yaml:"output_multiplier" json:"output_multiplier"`
	ClicksDisabled   bool    `yaml:"clicks_disabled" json:"clicks_disabled"`
}

// Achievement unlocks once, the first time its condition holds.
type Achievement struct {
	ID        string    `yaml:"id" json:"id"`
	Name      string    `yaml:"name" json:"name"`
	Condition Condition `yaml:"condition" json:"condition"`
	Effects   []Effect  `yaml:"effects" json:"effects"`
}

// ConditionKind names the quantity an achievement condition compares.
type ConditionKind string

const (
	ConditionLifetimeEnergy    ConditionKind = "lifetime_energy_at_least"
	ConditionClicks            ConditionKind = "clicks_at_least"
	ConditionResearchCompleted ConditionKind = "research_completed_at_least"
	ConditionGeneratorsOwned   ConditionKind = "generators_owned_at_least"
	ConditionShards            ConditionKind = "shards_at_least"
)

// Condition is a monotonic threshold predicate over the progression state.
type Condition struct {
	Kind      ConditionKind `yaml:"kind" json:"kind"`
	Threshold float64       `yaml:"threshold" json:"threshold"`
}

// EffectKind selects how an Effect changes its target.
type EffectKind string

const (
	EffectMultiply EffectKind = "multiply"
	EffectAdd      EffectKind = "add"
	EffectEnable   EffectKind = "enable"
)

// Target names the state field an Effect changes.
type Target string

const (
	TargetAutomation      Target = "automation"
	TargetGlobal          Target = "global"
	TargetAchievement     Target = "achievement"
	TargetGenerator       Target = "generator"
	TargetCostGrowth      Target = "cost_growth"
	TargetOfflineGain     Target = "offline_gain"
	TargetResearchRate    Target = "research_rate"
	TargetClickPower      Target = "click_power"
	TargetClickShardScale Target = "click_shard_scale"
	TargetTieredSynergy   Target = "tiered_synergy"
)

// Effect is a state transform described as data. Generator is only set for
// TargetGenerator; Value is ignored by EffectEnable.
type Effect struct {
	Kind      EffectKind `yaml:"kind" json:"kind"`
	Target    Target     `yaml:"target" json:"target"`
	Generator string     `yaml:"generator,omitempty" json:"generator,omitempty"`
	Value     float64    `yaml:"value,omitempty" json:"value,omitempty"`
}

// Tuning holds the economy constants.
type Tuning struct {
	ResetThreshold          float64 `yaml:"reset_threshold" json:"reset_threshold"`
	PrestigeBonusPerShard   float64 `yaml:"prestige_bonus_per_shard" json:"prestige_bonus_per_shard"`
	OfflineEfficiency       float64 `yaml:"offline_efficiency" json:"offline_efficiency"`
	OfflineThresholdSeconds float64 `yaml:"offline_threshold_seconds" json:"offline_threshold_seconds"`
	MaxFrameSeconds         float64 `yaml:"max_frame_seconds" json:"max_frame_seconds"`
	MaxBuyIterations        int64   `yaml:"max_buy_iterations" json:"max_buy_iterations"`
	MinCostGrowthModifier   float64 `yaml:"min_cost_growth_modifier" json:"min_cost_growth_modifier"`
	SynergyRate             float64 `yaml:"synergy_rate" json:"synergy_rate"`
	BaseResearchRate        float64 `yaml:"base_research_rate" json:"base_research_rate"`
	BaseClickPower          float64 `yaml:"base_click_power" json:"base_click_power"`
}

// Features gates behaviour that only some catalog versions ship.
type Features struct {
	TieredSynergy bool `yaml:"tiered_synergy" json:"tiered_synergy"`
	BulkBuy       bool `yaml:"bulk_buy" json:"bulk_buy"`
}

// Definitions is the on-disk shape of a catalog.
type Definitions struct {
	Version      int           `yaml:"version" json:"version"`
	Generators   []Generator   `yaml:"generators" json:"generators"`
	Upgrades     []Upgrade     `yaml:"upgrades" json:"upgrades"`
	Research     []Research    `yaml:"research" json:"research"`
	Challenges   []Challenge   `yaml:"challenges" json:"challenges"`
	Achievements []Achievement `yaml:"achievements" json:"achievements"`
	Tuning       Tuning        `yaml:"tuning" json:"tuning"`
	Features     Features      `yaml:"features" json:"features"`
}

// Catalog is the validated, indexed, read-only definitions table.
// Slices returned by its accessors are shared and must not be modified.
type Catalog struct {
	defs Definitions

	generators   map[string]int
	upgrades     map[string]int
	research     map[string]int
	challenges   map[string]int
	achievements map[string]int
}

// New validates defs and indexes them.
func New(defs Definitions) (*Catalog, error) {
	defs.Tuning = defs.Tuning.withDefaults()
	for i := range defs.Challenges {
		if defs.Challenges[i].CostMultiplier == 0 {
			defs.Challenges[i].CostMultiplier = 1
		}
		if defs.Challenges[i].OutputMultiplier == 0 {
			defs.Challenges[i].OutputMultiplier = 1
		}
	}
	if err := validate(defs); err != nil {
		return nil, err
	}

	c := &Catalog{
		defs:         defs,
		generators:   make(map[string]int, len(defs.Generators)),
		upgrades:     make(map[string]int, len(defs.Upgrades)),
		research:     make(map[string]int, len(defs.Research)),
		challenges:   make(map[string]int, len(defs.Challenges)),
		achievements: make(map[string]int, len(defs.Achievements)),
	}
	for i, g := range defs.Generators {
		c.generators[g.ID] = i
	}
	for i, u := range defs.Upgrades {
		c.upgrades[u.ID] = i
	}
	for i, r := range defs.Research {
		c.research[r.ID] = i
	}
	for i, ch := range defs.Challenges {
		c.challenges[ch.ID] = i
	}
	for i, a := range defs.Achievements {
		c.achievements[a.ID] = i
	}
	return c, nil
}

// Version returns the catalog version.
func (c *Catalog) Version() int { return c.defs.Version }

// Generators returns generator definitions in tier order.
func (c *Catalog) Generators() []Generator { return c.defs.Generators }

// Upgrades returns upgrade definitions in catalog order.
func (c *Catalog) Upgrades() []Upgrade { return c.defs.Upgrades }

// Research returns research definitions in catalog order.
func (c *Catalog) Research() []Research { return c.defs.Research }

// Challenges returns challenge definitions in catalog order.
func (c *Catalog) Challenges() []Challenge { return c.defs.Challenges }

// Achievements returns achievement definitions in evaluation order.
func (c *Catalog) Achievements() []Achievement { return c.defs.Achievements }

// Tuning returns the economy constants.
func (c *Catalog) Tuning() Tuning { return c.defs.Tuning }

// Features returns the feature flags.
func (c *Catalog) Features() Features { return c.defs.Features }

// Definitions returns a copy of the raw definitions, e.g. for serving to clients.
func (c *Catalog) Definitions() Definitions { return c.defs }

// Generator looks up a generator and its tier index.
func (c *Catalog) Generator(id string) (Generator, int, bool) {
	i, ok := c.generators[id]
	if !ok {
		return Generator{}, -1, false
	}
	return c.defs.Generators[i], i, true
}

// Upgrade looks up an upgrade by id.
func (c *Catalog) Upgrade(id string) (Upgrade, bool) {
	i, ok := c.upgrades[id]
	if !ok {
		return Upgrade{}, false
	}
	return c.defs.Upgrades[i], true
}

// ResearchNode looks up a research node by id.
func (c *Catalog) ResearchNode(id string) (Research, bool) {
	i, ok := c.research[id]
	if !ok {
		return Research{}, false
	}
	return c.defs.Research[i], true
}

// Challenge looks up a challenge by id.
func (c *Catalog) Challenge(id string) (Challenge, bool) {
	i, ok := c.challenges[id]
	if !ok {
		return Challenge{}, false
	}
	return c.defs.Challenges[i], true
}

// Achievement looks up an achievement by id.
func (c *Catalog) Achievement(id string) (Achievement, bool) {
	i, ok := c.achievements[id]
	if !ok {
		return Achievement{}, false
	}
	return c.defs.Achievements[i], true
}

func (t Tuning) withDefaults() Tuning {
	if t.ResetThreshold == 0 {
		t.ResetThreshold = 1e6
	}
	if t.PrestigeBonusPerShard == 0 {
		t.PrestigeBonusPerShard = 0.05
	}
	if t.OfflineEfficiency == 0 {
		t.OfflineEfficiency = 0.5
	}
	if t.OfflineThresholdSeconds == 0 {
		t.OfflineThresholdSeconds = 3
	}
	if t.MaxFrameSeconds == 0 {
		t.MaxFrameSeconds = 0.5
	}
	if t.MaxBuyIterations == 0 {
		t.MaxBuyIterations = 1_000_000
	}
	if t.MinCostGrowthModifier == 0 {
		t.MinCostGrowthModifier = 0.1
	}
	if t.SynergyRate == 0 {
		t.SynergyRate = 0.1
	}
	if t.BaseResearchRate == 0 {
		t.BaseResearchRate = 0.05
	}
	if t.BaseClickPower == 0 {
		t.BaseClickPower = 1
	}
	return t
}
