package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CK6170/vectorkit/internal/server"
)

const serveLongDesc string = `Run the vectorkit HTTP API.

Endpoints:
  GET  /api/health
  POST /api/vectors            create from {"components": [...]}
  GET  /api/vectors/get?id=
  POST /api/vectors/index      {"id", "index": "2" | "1:3" | "::-1"}
  POST /api/vectors/format     {"id", "spec"}
  POST /api/vectors/decode     {"bytes": base64}
  POST /api/eval               {"op", "left", "right"}
  GET  /ws/events              vector.created and eval events`

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP + WebSocket API",
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringP("listen", "l", "", "HTTP listen address (default 127.0.0.1:8080)")
	cmd.Flags().Int64("max-body", 0, "Maximum request body size in bytes")
	cmd.Flags().Int("max-vectors", 0, "Stored vectors kept before the oldest are evicted")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	s := server.New(server.Options{
		Logger:     a.log,
		MaxBody:    a.cfg.Server.MaxBody,
		MaxVectors: a.cfg.Server.MaxVectors,
	})
	defer s.Close()

	// Bind early so we fail fast if the port is in use.
	ln, err := net.Listen("tcp", a.cfg.Server.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Server.Listen, err)
	}

	hs := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	a.log.Info("serving", "addr", ln.Addr().String(), "url", baseURL(ln.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-sigChan:
		a.log.Info("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
		a.log.Info("context done, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

// baseURL turns a listen address into a reachable URL. Wildcard hosts are
// replaced with 127.0.0.1.
func baseURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Sprintf("http://%s/", strings.TrimSpace(addr))
	}
	if host == "" || host == "0.0.0.0" || host == "::" || host == "[::]" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
