package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/clock"
	"github.com/quantum-forge/internal/config"
	"github.com/quantum-forge/internal/display"
	"github.com/quantum-forge/internal/engine"
	"github.com/quantum-forge/internal/save"
	"github.com/quantum-forge/internal/state"
	"github.com/quantum-forge/internal/store"
	"github.com/quantum-forge/internal/types"
	"github.com/quantum-forge/pkg/logger"
)

// saveTimeout bounds a background autosave write.
const saveTimeout = 5 * time.Second

// Game is one running save slot. Every command runs to completion under mu,
// so the live loop, HTTP handlers and autosave never observe a half-applied
// operation.
type Game struct {
	id     string
	cat    *catalog.Catalog
	store  store.Store
	clock  clock.Clock
	logger *logger.Logger
	cfg    config.GameConfig

	mu        sync.Mutex
	st        *state.State
	notices   noticeLog
	lastFrame time.Time

	cancel context.CancelFunc
	done   chan struct{}
	writes sync.WaitGroup
}

func newGame(id string, st *state.State, m *Manager) *Game {
	return &Game{
		id:     id,
		cat:    m.catalog,
		store:  m.store,
		clock:  m.clock,
		logger: m.logger,
		cfg:    m.cfg,
		st:     st,
	}
}

// ID returns the save slot id.
func (g *Game) ID() string {
	return g.id
}

// Buy purchases generator units.
func (g *Game) Buy(genID string, amount engine.Amount) (engine.BuyResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	res, err := engine.Buy(g.cat, g.st, genID, amount)
	if err != nil {
		return res, err
	}
	if res.CapReached {
		g.logger.Warn("Buy stopped at iteration cap",
			logger.F("game_id", g.id),
			logger.F("generator", genID),
			logger.F("amount", amount.String()),
			logger.Int("bought", res.Bought))
	}
	g.unlockAchievements(engine.CheckAchievements(g.cat, g.st))
	return res, nil
}

// PurchaseUpgrade buys an upgrade.
func (g *Game) PurchaseUpgrade(id string) (engine.Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	outcome, err := engine.PurchaseUpgrade(g.cat, g.st, id)
	if err != nil {
		return outcome, err
	}
	if outcome == engine.Purchased {
		up, _ := g.cat.Upgrade(id)
		g.notify(NoticeSuccess, "Purchased "+up.Name)
	}
	return outcome, nil
}

// CompleteResearch buys a research node.
func (g *Game) CompleteResearch(id string) (engine.Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	outcome, err := engine.CompleteResearch(g.cat, g.st, id)
	if err != nil {
		return outcome, err
	}
	if outcome == engine.Purchased {
		node, _ := g.cat.ResearchNode(id)
		g.notify(NoticeSuccess, "Research complete: "+node.Name)
		g.unlockAchievements(engine.CheckAchievements(g.cat, g.st))
	}
	return outcome, nil
}

// StartChallenge enters a challenge, ending any active one.
func (g *Game) StartChallenge(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	already := g.st.ActiveChallenge == id
	ended, err := engine.StartChallenge(g.cat, g.st, id)
	if err != nil || already {
		return err
	}
	if ended != "" {
		g.notifyChallengeEnded(ended)
	}
	ch, _ := g.cat.Challenge(id)
	g.notify(NoticeInfo, "Challenge started: "+ch.Name)
	return nil
}

// StopChallenge leaves the active challenge and returns its id.
func (g *Game) StopChallenge() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ended := engine.StopChallenge(g.st)
	if ended != "" {
		g.notifyChallengeEnded(ended)
	}
	return ended
}

// Click applies one manual click and returns the energy it granted.
func (g *Game) Click() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	gained := engine.Click(g.cat, g.st)
	if gained > 0 {
		g.unlockAchievements(engine.CheckAchievements(g.cat, g.st))
	}
	return gained
}

// Ascend performs the prestige reset and returns the shards gained.
func (g *Game) Ascend() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, gained, err := engine.Ascend(g.cat, g.st)
	if err != nil {
		return 0, err
	}
	g.st = next
	g.notify(NoticeSuccess, fmt.Sprintf("Ascended! +%s Shards", display.Count(gained)))
	g.logger.Info("Game ascended",
		logger.F("game_id", g.id),
		logger.Int("shards_gained", gained),
		logger.Int("shards", next.Shards),
		logger.Int("ascensions", next.Ascensions))
	return gained, nil
}

// Tick advances the live clock by elapsedSeconds (clamped to one frame).
func (g *Game) Tick(elapsedSeconds float64) engine.AdvanceResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := engine.Tick(g.cat, g.st, elapsedSeconds)
	g.unlockAchievements(res.Unlocked)
	return res
}

// ApplyOfflineCatchUp credits the time since the state was last observed.
func (g *Game) ApplyOfflineCatchUp(now time.Time) engine.OfflineReport {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.catchUp(now)
}

func (g *Game) catchUp(now time.Time) engine.OfflineReport {
	report := engine.ApplyOfflineCatchUp(g.cat, g.st, now)
	if report.Applied {
		away := time.Duration(report.Elapsed * float64(time.Second))
		g.notify(NoticeInfo, fmt.Sprintf("Welcome back! You were away %s and produced %s energy",
			display.Away(away), display.Number(report.Gain)))
		g.unlockAchievements(report.Unlocked)
	}
	g.lastFrame = now
	return report
}

// Snapshot returns a deep copy of the current state.
func (g *Game) Snapshot() state.State {
	g.mu.Lock()
	defer g.mu.Unlock()

	return *g.st.Clone()
}

// Serialize encodes the current state.
func (g *Game) Serialize() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return save.Encode(g.st)
}

// Export renders the current state as export text.
func (g *Game) Export() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return save.Export(g.st)
}

// Import replaces the state with one parsed from export text. A rejected
// import leaves the current state untouched.
func (g *Game) Import(text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	st, err := save.Import(g.cat, text, now)
	if err != nil {
		g.notify(NoticeFailure, "Import failed: the text is not a valid save")
		g.logger.Warn("Import rejected", logger.F("game_id", g.id), logger.Err(err))
		return err
	}
	st.SetLastObserved(now)
	g.st = st
	g.lastFrame = now
	g.notify(NoticeSuccess, "Save imported")
	return nil
}

// UpdateSettings applies the provided preference changes.
func (g *Game) UpdateSettings(req types.SettingsRequest) state.Settings {
	g.mu.Lock()
	defer g.mu.Unlock()

	if req.Autosave != nil {
		g.st.Settings.Autosave = *req.Autosave
	}
	if req.Notifications != nil {
		g.st.Settings.Notifications = *req.Notifications
	}
	if req.Theme != nil {
		g.st.Settings.Theme = *req.Theme
	}
	return g.st.Settings
}

// HardReset wipes all progress, including shards and settings.
func (g *Game) HardReset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	g.st = state.Default(g.cat, now)
	g.lastFrame = now
	g.notices = noticeLog{}
	g.notify(NoticeInfo, "Progress reset")
	g.logger.Info("Game reset", logger.F("game_id", g.id))
}

// Save writes the current state to the store and waits for the write.
func (g *Game) Save(ctx context.Context) error {
	record, err := g.record()
	if err != nil {
		return err
	}
	return g.write(ctx, record)
}

// Notices returns the most recent notices, oldest first.
func (g *Game) Notices() []types.Notice {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.notices.list()
}

// Run drives the production clock and autosave until ctx is cancelled.
func (g *Game) Run(ctx context.Context) {
	frames := time.NewTicker(g.cfg.FrameInterval)
	defer frames.Stop()
	autosave := time.NewTicker(g.cfg.AutosaveInterval)
	defer autosave.Stop()

	g.mu.Lock()
	g.lastFrame = g.clock.Now()
	g.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return
		case <-frames.C:
			g.frame()
		case <-autosave.C:
			g.autosave()
		}
	}
}

// frame runs one live-loop step using the time elapsed since the previous one.
func (g *Game) frame() engine.AdvanceResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	elapsed := now.Sub(g.lastFrame).Seconds()
	g.lastFrame = now

	res := engine.Tick(g.cat, g.st, elapsed)
	g.st.SetLastObserved(now)
	g.unlockAchievements(res.Unlocked)
	return res
}

// autosave snapshots the state under the lock and writes it in the
// background. The live loop never waits on the store.
func (g *Game) autosave() {
	g.mu.Lock()
	enabled := g.st.Settings.Autosave
	g.mu.Unlock()
	if !enabled {
		return
	}

	record, err := g.record()
	if err != nil {
		return
	}

	g.writes.Add(1)
	go func() {
		defer g.writes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		g.write(ctx, record)
	}()
}

// record stamps the observation time and encodes the state.
func (g *Game) record() (*types.SaveRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	g.st.SetLastObserved(now)
	data, err := save.Encode(g.st)
	if err != nil {
		g.logger.Error("Failed to encode save", logger.F("game_id", g.id), logger.Err(err))
		g.notify(NoticeFailure, "Save failed")
		return nil, fmt.Errorf("failed to encode save: %w", err)
	}
	return &types.SaveRecord{
		ID:        g.id,
		Version:   state.CurrentVersion,
		Data:      data,
		UpdatedAt: now,
	}, nil
}

func (g *Game) write(ctx context.Context, record *types.SaveRecord) error {
	if err := g.store.SaveGame(ctx, record); err != nil {
		g.logger.Error("Failed to write save", logger.F("game_id", g.id), logger.Err(err))
		g.mu.Lock()
		g.notify(NoticeFailure, "Save failed")
		g.mu.Unlock()
		return fmt.Errorf("failed to write save: %w", err)
	}
	g.logger.Debug("Game saved", logger.F("game_id", g.id))
	return nil
}

// start launches the live loop.
func (g *Game) start() {
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.done = make(chan struct{})
	go func() {
		defer close(g.done)
		g.Run(ctx)
	}()
}

// stop halts the live loop and waits for in-flight autosaves.
func (g *Game) stop() {
	if g.cancel != nil {
		g.cancel()
		<-g.done
		g.cancel = nil
	}
	g.writes.Wait()
}

// notify records a notice. Informational notices respect the player's
// notification setting; failures are always kept. Callers hold mu.
func (g *Game) notify(level, message string) {
	if level != NoticeFailure && !g.st.Settings.Notifications {
		return
	}
	g.notices.add(level, message, g.clock.Now())
}

func (g *Game) notifyChallengeEnded(id string) {
	if ch, ok := g.cat.Challenge(id); ok {
		g.notify(NoticeInfo, "Challenge ended: "+ch.Name)
	}
}

func (g *Game) unlockAchievements(ids []string) {
	for _, id := range ids {
		if a, ok := g.cat.Achievement(id); ok {
			g.notify(NoticeSuccess, "Achievement unlocked: "+a.Name)
		}
	}
}
