package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
	"github.com/ChrisMcGann/PepSeq/pkg/sequencing"
)

// Error kinds reported in the "status" field of error bodies.
const (
	KindInvalidSpectrum  = "invalid_spectrum"
	KindIncomplete       = "incomplete"
	KindResourceExceeded = "resource_exceeded"
	KindRateLimited      = "rate_limited"
	KindInternal         = "internal"
)

// classify maps an engine error to an HTTP status and error kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidSpectrum):
		return http.StatusBadRequest, KindInvalidSpectrum
	case errors.Is(err, sequencing.ErrIncomplete):
		return http.StatusGatewayTimeout, KindIncomplete
	case errors.Is(err, sequencing.ErrResourceExceeded):
		return http.StatusUnprocessableEntity, KindResourceExceeded
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

func abortWithError(c *gin.Context, err error) {
	code, kind := classify(err)
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error(), "status": kind})
}
