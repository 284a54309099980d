// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/pickup/internal/domain/types"
	"github.com/okian/pickup/pkg/logger"
)

// PlayersDependencies defines the interface for reading the ratings board.
type PlayersDependencies interface {
	Players(ctx context.Context) ([]types.PlayerView, error)
	Player(ctx context.Context, name string) (types.PlayerView, error)
}

// PlayersHandler handles ratings board requests.
type PlayersHandler struct {
	deps   PlayersDependencies
	logger logger.Logger
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies, log logger.Logger) *PlayersHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PlayersHandler{deps: deps, logger: log}
}

// HandleListPlayers handles GET /players requests.
func (h *PlayersHandler) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"
	players, err := h.deps.Players(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleGetPlayer handles GET /players/{name} requests.
func (h *PlayersHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player"
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	player, err := h.deps.Player(r.Context(), name)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}
