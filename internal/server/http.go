// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPServer serves the player and admin API.
type HTTPServer struct {
	server      *http.Server
	port        int
	handler     http.Handler
	serviceName string
}

// NewHTTPServer creates a new HTTP server instance for handler.
func NewHTTPServer(port int, handler http.Handler, serviceName string) *HTTPServer {
	return &HTTPServer{
		port:        port,
		handler:     handler,
		serviceName: serviceName,
	}
}

// Setup wraps the handler with OpenTelemetry instrumentation.
func (s *HTTPServer) Setup() error {
	if s.handler == nil {
		return errors.New("http handler is required")
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           otelhttp.NewHandler(s.handler, s.serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Start begins serving HTTP on the configured port.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("HTTP server listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones. Hijacked
// WebSocket connections are not tracked and are closed by their handlers.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down HTTP server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("HTTP server stopped")
	return nil
}
