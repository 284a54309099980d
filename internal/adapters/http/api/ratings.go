// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/pickup/internal/domain/types"
	"github.com/okian/pickup/pkg/logger"
)

// RatingsDependencies defines the interface for rating submission.
type RatingsDependencies interface {
	Submit(ctx context.Context, req types.SubmitRequest) (types.SubmitResponse, error)
}

// RatingsHandler handles rating submissions.
type RatingsHandler struct {
	deps         RatingsDependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewRatingsHandler creates a new ratings handler.
func NewRatingsHandler(deps RatingsDependencies, maxBodyBytes int64, log logger.Logger) *RatingsHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RatingsHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: log}
}

// HandlePostRatings handles POST /ratings requests.
func (h *RatingsHandler) HandlePostRatings(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_ratings"

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	dec.DisallowUnknownFields()

	var req types.SubmitRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", wrapKind(op, ErrBodyTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}

	resp, err := h.deps.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
