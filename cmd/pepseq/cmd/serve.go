package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/PepSeq/pkg/server"
)

var serveConfig = server.DefaultConfig()

var debug bool

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&serveConfig.Addr, "addr", serveConfig.Addr, "Listen address")
	flags.DurationVar(&serveConfig.RequestTimeout, "request-timeout", serveConfig.RequestTimeout, "Deadline of one sequencing request (0 = no limit)")
	flags.Float64Var(&serveConfig.RatePerSecond, "rate", serveConfig.RatePerSecond, "Sustained sequencing requests per second (0 = unlimited)")
	flags.IntVar(&serveConfig.Burst, "burst", serveConfig.Burst, "Requests allowed above the sustained rate")
	flags.IntVar(&serveConfig.MaxConns, "max-conns", serveConfig.MaxConns, "Concurrent connections accepted (0 = unlimited)")
	flags.StringVar(&serveConfig.CacheDSN, "cache", "", "SQLite DSN of the response cache (default: in-memory)")
	flags.BoolVar(&serveConfig.DisableCache, "no-cache", false, "Disable the response cache")
	flags.IntVar(&serveConfig.TimingRepeat, "timing-repeat", serveConfig.TimingRepeat, "Runs per sequencer on /sequencing/timed_executions/")
	flags.DurationVar(&serveConfig.TimingTimeout, "timing-timeout", serveConfig.TimingTimeout, "Deadline of each timed run (0 = no limit)")
	flags.BoolVar(&debug, "debug", false, "Run gin in debug mode")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sequencers over HTTP",
	Long: `Start the HTTP API. Every endpoint accepts POST {"target_spectrum": [...]}:

  /sequencing/brute_force/
  /sequencing/branch_and_bound/
  /sequencing/leaderboard/
  /sequencing/spectral_convolution/
  /sequencing/timed_executions/

Examples:
  pepseq serve --addr :8000 --request-timeout 30s --max-candidates 2000000`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.New(serveConfig, buildOptions())
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}
