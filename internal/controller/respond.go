// Package controller holds the HTTP handlers and route registration.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/rs/zerolog/log"
)

// writeError maps a service error onto an HTTP status and the error body.
// Errors outside the taxonomy are logged and returned as a plain 500.
func writeError(c *gin.Context, err error) {
	if kind, ok := apperr.KindOf(err); ok {
		c.JSON(statusOf(kind), dto.ErrorResponse{Error: err.Error()})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		// Validation and rule violations both read as bad requests.
		return http.StatusBadRequest
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

// pathID parses a numeric path parameter, writing the 400 itself on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// queryID parses a required numeric query parameter the same way.
func queryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing or invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}
