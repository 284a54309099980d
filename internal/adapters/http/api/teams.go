// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/pickup/internal/domain/types"
	"github.com/okian/pickup/pkg/logger"
)

// TeamsDependencies defines the interface for team balancing.
type TeamsDependencies interface {
	Teams(ctx context.Context, seed *int64) (types.Lineup, error)
}

// TeamsHandler handles team balancing requests.
type TeamsHandler struct {
	deps   TeamsDependencies
	logger logger.Logger
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies, log logger.Logger) *TeamsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &TeamsHandler{deps: deps, logger: log}
}

// HandleGetTeams handles GET /teams[?seed=N] requests.
func (h *TeamsHandler) HandleGetTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teams"

	var seed *int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, fmt.Errorf("seed must be an integer: %q", raw)))
			return
		}
		seed = &n
	}

	lineup, err := h.deps.Teams(r.Context(), seed)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, lineup)
}
