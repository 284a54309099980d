package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/pickup/internal/adapters/repository"
	service "github.com/okian/pickup/internal/app"
	"github.com/okian/pickup/internal/domain/balance"
	"github.com/okian/pickup/pkg/logger"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBodyTooLarge = errors.New("request body too large")
)

// Messages returned instead of internal error text.
const (
	msgInsufficientPlayers = "Need at least 2 players to form teams."
	msgStoreUnavailable    = "rating store is unavailable, try again later"
	msgInternal            = "internal error"
)

// wrapKind annotates err with the operation and an API error kind.
func wrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// writeServiceError maps a service error to its HTTP status. Store and
// unexpected failures are logged and answered with a fixed message.
func writeServiceError(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSubmission):
		writeError(w, http.StatusBadRequest, "invalid_submission", err)
	case errors.Is(err, service.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, balance.ErrInsufficientPlayers):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: "insufficient_players", Message: msgInsufficientPlayers})
	case errors.Is(err, repository.ErrStoreUnavailable), errors.Is(err, service.ErrNotStarted):
		log.Error(ctx, "store unavailable", logger.String("op", op), logger.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Code: "store_unavailable", Message: msgStoreUnavailable})
	default:
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal_error", Message: msgInternal})
	}
}
