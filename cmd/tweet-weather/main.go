package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/i474232898/tweet-weather/internal/app"
	"github.com/i474232898/tweet-weather/internal/config"
	"github.com/i474232898/tweet-weather/internal/logging"
)

func main() {
	os.Exit(execute(os.Stdout, os.Stderr))
}

// execute runs the program and reports a failure as a single
// "Error: ..." line on stderr. It returns the process exit code.
func execute(stdout, stderr io.Writer) int {
	if err := run(stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to stderr so dry-run output on stdout stays clean.
	log := logging.New(stderr, cfg, app.AppName)

	// Transport defaults only; a run is never retried.
	httpClient := &http.Client{}
	publisher := app.NewPublisher(cfg, httpClient, stdout, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunMode == config.RunModeServe {
		return app.Serve(ctx, publisher, cfg, log)
	}

	res, err := app.RunOnce(ctx, publisher, cfg)
	if err != nil {
		return err
	}
	log.Info("done", "status_id", res.StatusID)
	return nil
}
