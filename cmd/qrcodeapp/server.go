// Copyright (c) 2026 WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/client"
	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/config"
	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/qr"
	transport "github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/transport/http"
	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/web"
)

// newRESTServer wires the QR service behind the REST router.
func newRESTServer(cfg *config.Config, log *zap.Logger) *http.Server {
	svc := qr.NewService(log, cfg.MinSize, cfg.MaxSize, cfg.DefaultSize)
	log.Debug("QR service initialized")

	h := transport.NewHandler(svc, log, cfg.MaxBodySize)
	log.Debug("HTTP handler initialized", zap.Int64("max_body_size", cfg.MaxBodySize))

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           transport.NewRouter(h, log),
		ReadTimeout:       cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       60 * time.Second,
	}
}

// newWebServer wires the backend client, the controller and the gin engine.
func newWebServer(cfg *config.Config, log *zap.Logger) (*http.Server, error) {
	if !log.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	c := client.NewRestClient(cfg.Web.BackendAddress, cfg.Web.ClientTimeout.Duration, log)
	ctl, err := web.NewController(c, log, cfg.MinSize, cfg.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("create web controller: %w", err)
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Web.Port),
		Handler:           web.NewRouter(ctl, log),
		ReadTimeout:       cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: 2 * time.Second,
		// Covers the backend call made while rendering the page
		WriteTimeout: cfg.WriteTimeout.Duration + cfg.Web.ClientTimeout.Duration,
		IdleTimeout:  60 * time.Second,
	}, nil
}

// serve runs srv until ctx is cancelled, then shuts it down within shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log *zap.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...", zap.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Warn("Shutdown timeout exceeded, closing connections")
				srv.Close()
			}
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	log.Info("Server exited gracefully")
	return nil
}
