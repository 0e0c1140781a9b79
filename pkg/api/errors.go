package api

import (
	"errors"
	"net/http"

	"github.com/fadedpez/cardvault/internal/types"
)

// ErrorResponse is the uniform failure envelope
type ErrorResponse struct {
	ErrorKind types.ErrorKind `json:"errorKind"`
	Detail    string          `json:"detail"`
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind types.ErrorKind) int {
	switch kind {
	case types.ErrGameNotFound, types.ErrGameMappingNotFound:
		return http.StatusNotFound
	case types.ErrInvalidSignature:
		return http.StatusUnauthorized
	case types.ErrPlayerNotInGame, types.ErrPlayerNotActive:
		return http.StatusForbidden
	case types.ErrInvalidCardIdentifier, types.ErrInvalidRequest:
		return http.StatusBadRequest
	case types.ErrShowdownNotReached:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := types.KindOf(err)
	detail := err.Error()

	var revealErr *types.RevealError
	if errors.As(err, &revealErr) {
		detail = revealErr.Message
	}
	if kind == types.ErrInternal {
		// Internal causes may carry storage details, keep them in the log
		s.logger.LogError(err)
		detail = "internal error"
	}

	s.writeJSON(w, StatusFor(kind), ErrorResponse{ErrorKind: kind, Detail: detail})
}
