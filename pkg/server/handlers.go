package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
)

// SequencingRequest is the body accepted by every sequencing endpoint.
type SequencingRequest struct {
	TargetSpectrum []int `json:"target_spectrum" binding:"required"`
}

type runFunc func(ctx context.Context, spectrum core.Spectrum) (any, error)

// sequence wraps a sequencer call with binding, validation, the request
// deadline and the response cache.
func (s *Server) sequence(endpoint string, run runFunc) gin.HandlerFunc {
	cacheable := s.cache != nil && endpoint != EndpointTimedExecutions
	timeout := s.cfg.timeoutFor(endpoint)

	return func(c *gin.Context) {
		var req SequencingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":  "invalid request body: " + err.Error(),
				"status": KindInvalidSpectrum,
			})
			return
		}

		spectrum := core.Spectrum(req.TargetSpectrum)
		if err := spectrum.Validate(); err != nil {
			abortWithError(c, err)
			return
		}
		key := spectrum.String()

		if cacheable {
			body, ok, err := s.cache.Get(endpoint, key)
			if err != nil {
				log.Printf("Warning: %v", err)
			} else if ok {
				c.Data(http.StatusOK, "application/json; charset=utf-8", body)
				return
			}
		}

		ctx := c.Request.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		res, err := run(ctx, spectrum)
		if err != nil {
			log.Printf("%s %s: %v", endpoint, key, err)
			abortWithError(c, err)
			return
		}

		body, err := json.Marshal(res)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if cacheable {
			if err := s.cache.Put(endpoint, key, body); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

func (s *Server) bruteForce(ctx context.Context, spectrum core.Spectrum) (any, error) {
	return s.seq.BruteForce(ctx, spectrum)
}

func (s *Server) branchAndBound(ctx context.Context, spectrum core.Spectrum) (any, error) {
	return s.seq.BranchAndBound(ctx, spectrum)
}

func (s *Server) leaderboard(ctx context.Context, spectrum core.Spectrum) (any, error) {
	return s.seq.Leaderboard(ctx, spectrum)
}

func (s *Server) convolution(ctx context.Context, spectrum core.Spectrum) (any, error) {
	return s.seq.Convolution(ctx, spectrum)
}

func (s *Server) timedExecutions(ctx context.Context, spectrum core.Spectrum) (any, error) {
	return s.runner.Run(ctx, spectrum)
}
