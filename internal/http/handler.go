package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quantum-forge/internal/config"
	"github.com/quantum-forge/internal/engine"
	"github.com/quantum-forge/internal/save"
	"github.com/quantum-forge/internal/service"
	"github.com/quantum-forge/internal/types"
	"github.com/quantum-forge/pkg/logger"
)

// requestTimeout bounds every non-streaming request.
const requestTimeout = 5 * time.Second

// Handler holds HTTP handlers and dependencies
type Handler struct {
	games  *service.Manager
	logger *logger.Logger
	cfg    config.GameConfig
	clicks *clickLimiter
}

// NewHandler creates a new HTTP handler
func NewHandler(games *service.Manager, log *logger.Logger, cfg config.GameConfig) *Handler {
	return &Handler{
		games:  games,
		logger: log,
		cfg:    cfg,
		clicks: newClickLimiter(cfg.ClickRate, cfg.ClickBurst),
	}
}

// Routes sets up all HTTP routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		timed := r.With(middleware.Timeout(requestTimeout))
		timed.Get("/catalog", h.GetCatalog)
		timed.Post("/games", h.CreateGame)

		r.Route("/games/{id}", func(r chi.Router) {
			// Streams outlive the request timeout.
			r.Get("/stream", h.Stream)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(requestTimeout))

				r.Get("/", h.GetGame)
				r.Post("/buy", h.Buy)
				r.Post("/upgrades/{upgradeID}", h.PurchaseUpgrade)
				r.Post("/research/{researchID}", h.CompleteResearch)
				r.Post("/challenges/{challengeID}/start", h.StartChallenge)
				r.Post("/challenges/stop", h.StopChallenge)
				r.Post("/click", h.Click)
				r.Post("/ascend", h.Ascend)
				r.Post("/save", h.SaveGame)
				r.Get("/export", h.Export)
				r.Post("/import", h.Import)
				r.Put("/settings", h.UpdateSettings)
				r.Post("/reset", h.Reset)
				r.Post("/close", h.CloseGame)
			})
		})
	})

	return r
}

// Health handles health check requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetCatalog handles GET /v1/catalog
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.games.Catalog().Definitions())
}

// CreateGame handles POST /v1/games
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.games.Create(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to create game", err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, g.View())
}

// GetGame handles GET /v1/games/{id}
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, g.View())
}

// Buy handles POST /v1/games/{id}/buy
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	var req types.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Generator == "" {
		h.respondError(w, http.StatusBadRequest, "invalid generator", "generator is required")
		return
	}
	amount, err := engine.ParseAmount(req.Amount)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	g, ok := h.game(w, r)
	if !ok {
		return
	}
	res, err := g.Buy(req.Generator, amount)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, types.BuyResponse{
		Bought: res.Bought,
		Spent:  res.Spent,
		Game:   g.View(),
	})
}

// PurchaseUpgrade handles POST /v1/games/{id}/upgrades/{upgradeID}
func (h *Handler) PurchaseUpgrade(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	outcome, err := g.PurchaseUpgrade(chi.URLParam(r, "upgradeID"))
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, types.PurchaseResponse{Outcome: outcome.String(), Game: g.View()})
}

// CompleteResearch handles POST /v1/games/{id}/research/{researchID}
func (h *Handler) CompleteResearch(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	outcome, err := g.CompleteResearch(chi.URLParam(r, "researchID"))
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, types.PurchaseResponse{Outcome: outcome.String(), Game: g.View()})
}

// StartChallenge handles POST /v1/games/{id}/challenges/{challengeID}/start
func (h *Handler) StartChallenge(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	if err := g.StartChallenge(chi.URLParam(r, "challengeID")); err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, g.View())
}

// StopChallenge handles POST /v1/games/{id}/challenges/stop
func (h *Handler) StopChallenge(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	g.StopChallenge()
	h.respondJSON(w, http.StatusOK, g.View())
}

// Click handles POST /v1/games/{id}/click
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	if !h.clicks.allow(g.ID()) {
		h.respondError(w, http.StatusTooManyRequests, "too many clicks", "click rate limit exceeded")
		return
	}
	gained := g.Click()
	h.respondJSON(w, http.StatusOK, types.ClickResponse{Gained: gained, Game: g.View()})
}

// Ascend handles POST /v1/games/{id}/ascend
func (h *Handler) Ascend(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	gained, err := g.Ascend()
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, types.AscendResponse{ShardsGained: gained, Game: g.View()})
}

// SaveGame handles POST /v1/games/{id}/save
func (h *Handler) SaveGame(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	if err := g.Save(r.Context()); err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to save game", err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, g.View())
}

// Export handles GET /v1/games/{id}/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	text, err := g.Export()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to export game", err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, types.ExportResponse{Text: text})
}

// Import handles POST /v1/games/{id}/import
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req types.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	g, ok := h.game(w, r)
	if !ok {
		return
	}
	if err := g.Import(req.Text); err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, g.View())
}

// UpdateSettings handles PUT /v1/games/{id}/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req types.SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	g, ok := h.game(w, r)
	if !ok {
		return
	}
	g.UpdateSettings(req)
	h.respondJSON(w, http.StatusOK, g.View())
}

// Reset handles POST /v1/games/{id}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	g.HardReset()
	h.respondJSON(w, http.StatusOK, g.View())
}

// CloseGame handles POST /v1/games/{id}/close
func (h *Handler) CloseGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.games.Close(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			h.respondError(w, http.StatusNotFound, "game not running", err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "failed to close game", err.Error())
		return
	}
	h.clicks.forget(id)
	w.WriteHeader(http.StatusNoContent)
}

// game resolves the {id} path parameter to a running game, loading it if
// needed. It writes the error response itself when it returns false.
func (h *Handler) game(w http.ResponseWriter, r *http.Request) (*service.Game, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "invalid game id", "game id is required")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	g, err := h.games.Open(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			h.respondError(w, http.StatusNotFound, "game not found", err.Error())
			return nil, false
		}
		h.logger.Error("Failed to open game", logger.F("game_id", id), logger.Err(err))
		h.respondError(w, http.StatusInternalServerError, "failed to open game", err.Error())
		return nil, false
	}
	return g, true
}

// respondEngineError maps command errors to status codes.
func (h *Handler) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrUnknownGenerator),
		errors.Is(err, engine.ErrUnknownUpgrade),
		errors.Is(err, engine.ErrUnknownResearch),
		errors.Is(err, engine.ErrUnknownChallenge):
		h.respondError(w, http.StatusNotFound, "unknown id", err.Error())
	case errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrBulkBuyDisabled):
		h.respondError(w, http.StatusBadRequest, "invalid amount", err.Error())
	case errors.Is(err, engine.ErrNothingToGain):
		h.respondError(w, http.StatusConflict, "cannot ascend", err.Error())
	case errors.Is(err, save.ErrNotASave),
		errors.Is(err, save.ErrMalformed):
		h.respondError(w, http.StatusUnprocessableEntity, "import rejected", err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// respondJSON sends a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *Handler) respondError(w http.ResponseWriter, status int, errorMsg, message string) {
	h.respondJSON(w, status, types.ErrorResponse{
		Error:   errorMsg,
		Message: message,
	})
}
