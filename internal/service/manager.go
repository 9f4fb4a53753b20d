package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/clock"
	"github.com/quantum-forge/internal/config"
	"github.com/quantum-forge/internal/save"
	"github.com/quantum-forge/internal/state"
	"github.com/quantum-forge/internal/store"
	"github.com/quantum-forge/pkg/logger"
)

// Errors
var (
	ErrGameNotFound = errors.New("game not found")
)

// Manager owns the running games and moves them in and out of the store.
// A save id is in at most one of games and busy; busy holds ids that are
// being loaded or closed, and its channel is closed when that finishes.
type Manager struct {
	store   store.Store
	catalog *catalog.Catalog
	clock   clock.Clock
	logger  *logger.Logger
	cfg     config.GameConfig

	mu    sync.Mutex
	games map[string]*Game
	busy  map[string]chan struct{}
}

// NewManager creates a game manager
func NewManager(s store.Store, cat *catalog.Catalog, clk clock.Clock, log *logger.Logger, cfg config.GameConfig) *Manager {
	return &Manager{
		store:   s,
		catalog: cat,
		clock:   clk,
		logger:  log,
		cfg:     cfg,
		games:   make(map[string]*Game),
		busy:    make(map[string]chan struct{}),
	}
}

// Catalog returns the definitions table games run against.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// Create starts a new game with a fresh save slot and persists it.
func (m *Manager) Create(ctx context.Context) (*Game, error) {
	id := "save_" + uuid.New().String()
	g := newGame(id, state.Default(m.catalog, m.clock.Now()), m)

	if err := g.Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	g.start()
	m.mu.Lock()
	m.games[id] = g
	m.mu.Unlock()

	m.logger.Info("Game created", logger.F("game_id", id))
	return g, nil
}

// Open returns the running game with id, loading it from the store if it is
// not running. A loaded game is credited for the time it spent offline.
// A stored save that cannot be decoded is replaced by a fresh state and the
// player is told so; the stored record is left for inspection until the next save.
// Open waits while the same id is being loaded or closed by another caller.
func (m *Manager) Open(ctx context.Context, id string) (*Game, error) {
	for {
		m.mu.Lock()
		if g, ok := m.games[id]; ok {
			m.mu.Unlock()
			return g, nil
		}
		if wait, ok := m.busy[id]; ok {
			m.mu.Unlock()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		done := m.claim(id)
		m.mu.Unlock()

		g, err := m.load(ctx, id)

		m.mu.Lock()
		if err == nil {
			m.games[id] = g
		}
		m.release(id, done)
		m.mu.Unlock()

		if err != nil {
			return nil, err
		}
		m.logger.Info("Game opened", logger.F("game_id", id))
		return g, nil
	}
}

// load reads a save and starts its live loop. It runs without m.mu held.
func (m *Manager) load(ctx context.Context, id string) (*Game, error) {
	record, err := m.store.LoadGame(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSaveNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	now := m.clock.Now()
	st, err := save.Decode(m.catalog, record.Data, now)
	g := newGame(id, st, m)
	if err != nil {
		m.logger.Warn("Stored save is unreadable, starting fresh",
			logger.F("game_id", id),
			logger.Err(err))
		g.st = state.Default(m.catalog, now)
		g.lastFrame = now
		g.notify(NoticeFailure, "Your save could not be loaded, a new game was started")
	} else {
		report := g.catchUp(now)
		if report.Applied {
			m.logger.Info("Offline progress applied",
				logger.F("game_id", id),
				logger.Num("elapsed_seconds", report.Elapsed),
				logger.Num("gain", report.Gain))
		}
	}

	g.start()
	return g, nil
}

// Get returns a running game.
func (m *Manager) Get(id string) (*Game, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[id]
	return g, ok
}

// Close stops a running game and saves it. The id stays busy until the
// final save is written, so a concurrent Open loads the saved progress.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	g, ok := m.games[id]
	if !ok {
		m.mu.Unlock()
		return ErrGameNotFound
	}
	delete(m.games, id)
	done := m.claim(id)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.release(id, done)
		m.mu.Unlock()
	}()

	g.stop()
	if err := g.Save(ctx); err != nil {
		return err
	}
	m.logger.Info("Game closed", logger.F("game_id", id))
	return nil
}

// Shutdown closes every running game, saving each one.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	games := make([]*Game, 0, len(m.games))
	claims := make([]chan struct{}, 0, len(m.games))
	for id, g := range m.games {
		games = append(games, g)
		claims = append(claims, m.claim(id))
		delete(m.games, id)
	}
	m.mu.Unlock()

	var errs []error
	for i, g := range games {
		g.stop()
		if err := g.Save(ctx); err != nil {
			errs = append(errs, fmt.Errorf("game %s: %w", g.id, err))
		}
		m.mu.Lock()
		m.release(g.id, claims[i])
		m.mu.Unlock()
	}
	m.logger.Info("Games saved on shutdown", logger.Int("games", int64(len(games))))
	return errors.Join(errs...)
}

// claim marks id busy. Callers hold m.mu.
func (m *Manager) claim(id string) chan struct{} {
	done := make(chan struct{})
	m.busy[id] = done
	return done
}

// release clears a claim and wakes its waiters. Callers hold m.mu.
func (m *Manager) release(id string, done chan struct{}) {
	delete(m.busy, id)
	close(done)
}
