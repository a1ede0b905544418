package server

import (
	"context"
	"net"
	"net/http"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/api"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// ListenAndServe initializes a server to respond to HTTP network requests.
// It returns nil once ctx is cancelled and in-flight requests have drained.
func ListenAndServe(ctx context.Context, router api.Router, cfg *config.Config, logger lumber.Logger) error {
	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}
	return serve(ctx, router, ln, logger)
}

func serve(ctx context.Context, router api.Router, ln net.Listener, logger lumber.Logger) error {
	// set gin to release mode
	gin.SetMode(gin.ReleaseMode)

	logger.Infof("Setting up http handler")

	errChan := make(chan error, 1)

	// HTTP server instance
	srv := &http.Server{
		Handler:           router.Handler(),
		ReadHeaderTimeout: global.DefaultHTTPTimeout,
	}

	go func() {
		logger.Infof("Starting server on %s", ln.Addr())
		// service connections
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Errorf("listen: %#v", err)
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Infof("Caller has requested graceful shutdown. shutting down the server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), global.GracefulTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server Shutdown: %v", err)
			return err
		}
		return nil
	case err := <-errChan:
		return err
	}
}
