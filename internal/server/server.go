// Package server runs the HTTP and gRPC listeners side by side and shuts
// both down when the context is cancelled or either one fails.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johssalinas/backend-accenture/pkg/grpc"
	"github.com/johssalinas/backend-accenture/pkg/logger"
)

type Options struct {
	HTTPAddr string
	Handler  http.Handler
	// GRPCAddr and GRPC are optional.
	GRPCAddr string
	GRPC     *grpc.Server
	// ShutdownTimeout bounds the HTTP drain; defaults to 15s.
	ShutdownTimeout time.Duration
}

// Run blocks until ctx is done or a listener fails.
func Run(ctx context.Context, opts Options) error {
	httpLis, err := net.Listen("tcp", opts.HTTPAddr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", opts.HTTPAddr, err)
	}
	var grpcLis net.Listener
	if opts.GRPC != nil {
		grpcLis, err = net.Listen("tcp", opts.GRPCAddr)
		if err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("server: listen %s: %w", opts.GRPCAddr, err)
		}
	}
	return Serve(ctx, httpLis, grpcLis, opts)
}

// Serve is Run on already-open listeners.
func Serve(ctx context.Context, httpLis, grpcLis net.Listener, opts Options) error {
	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	srv := &http.Server{
		Handler:           opts.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", zap.String("addr", httpLis.Addr().String()))
		if err := srv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: http: %w", err)
		}
		return nil
	})

	if opts.GRPC != nil && grpcLis != nil {
		g.Go(func() error {
			if err := opts.GRPC.Serve(grpcLis); err != nil {
				return fmt.Errorf("server: grpc: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if opts.GRPC != nil {
			opts.GRPC.Stop()
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
