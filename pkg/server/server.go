// Package server exposes the sequencers over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"

	"github.com/ChrisMcGann/PepSeq/pkg/cache/sqlite"
	"github.com/ChrisMcGann/PepSeq/pkg/sequencing"
)

// Endpoint names, also used as cache namespaces.
const (
	EndpointBruteForce      = "brute_force"
	EndpointBranchAndBound  = "branch_and_bound"
	EndpointLeaderboard     = "leaderboard"
	EndpointConvolution     = "spectral_convolution"
	EndpointTimedExecutions = "timed_executions"
)

const shutdownTimeout = 5 * time.Second

// Server serves the sequencing endpoints
type Server struct {
	cfg    Config
	seq    *sequencing.Sequencer
	runner *sequencing.Runner
	cache  *sqlite.Cache
	engine *gin.Engine
}

// New creates a server. Sequencing endpoints always return traces; the
// timed_executions endpoint never does.
func New(cfg Config, opts sequencing.Options) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	opts.Trace = true
	seq, err := sequencing.New(opts)
	if err != nil {
		return nil, err
	}

	runner := sequencing.NewRunner(seq)
	runner.Repeat = cfg.TimingRepeat
	runner.Timeout = cfg.TimingTimeout

	s := &Server{cfg: cfg, seq: seq, runner: runner}

	if !cfg.DisableCache {
		s.cache, err = sqlite.NewCache(cfg.CacheDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open response cache: %w", err)
		}
	}

	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", s.health)

	api := r.Group("/sequencing")
	if s.cfg.RatePerSecond > 0 {
		api.Use(rateLimit(rate.NewLimiter(rate.Limit(s.cfg.RatePerSecond), s.cfg.Burst)))
	}
	api.POST("/brute_force/", s.sequence(EndpointBruteForce, s.bruteForce))
	api.POST("/branch_and_bound/", s.sequence(EndpointBranchAndBound, s.branchAndBound))
	api.POST("/leaderboard/", s.sequence(EndpointLeaderboard, s.leaderboard))
	api.POST("/spectral_convolution/", s.sequence(EndpointConvolution, s.convolution))
	api.POST("/timed_executions/", s.sequence(EndpointTimedExecutions, s.timedExecutions))

	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. At most Config.MaxConns connections are open at once.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Printf("Listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Close releases the response cache.
func (s *Server) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if s.cache != nil {
		stats, err := s.cache.Stats()
		if err != nil {
			log.Printf("cache stats: %v", err)
		} else {
			body["cache_entries"] = stats.Entries
			body["cache_hits"] = stats.Hits
		}
	}
	c.JSON(http.StatusOK, body)
}
