package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	plhttp "github.com/pagelens/pagelens/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := plhttp.NewServer(deps.Scraper,
		plhttp.WithAddr(c.Addr),
		plhttp.WithLogger(deps.Logger),
	)

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		fmt.Fprintln(deps.Stdout, "shutting down")
		return server.Shutdown(deps.Ctx)
	}
}
