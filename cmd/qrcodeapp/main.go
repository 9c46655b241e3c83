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

// Package main is the entry point for the QR code application.
// The same binary runs the REST service that generates QR code PNGs, the web front end
// that calls it, and a few operator commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/client"
	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/config"
	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/logger"
	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/qr"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "qrcodeapp",
		Short:        "QR code generation service and web front end",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "Path to config file")

	root.AddCommand(
		a.restCmd(),
		a.webCmd(),
		a.generateCmd(),
		a.healthCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qrcodeapp %s (commit %s, built %s)\n", Version, GitCommit, BuildTime)
		},
	}
	// No config needed to print the version
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {}
	return cmd
}

// init loads .env, the logger and the configuration.
func (a *app) init() error {
	// Load .env file (optional in production)
	envErr := godotenv.Load()

	a.log = logger.InitLogger()
	if envErr != nil {
		a.log.Debug("No .env file found, using environment variables")
	} else {
		a.log.Info(".env file loaded successfully")
	}

	cfg, err := config.LoadConfig(a.configPath, a.log)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	a.log.Debug("Configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("web_port", cfg.Web.Port),
		zap.String("backend_address", cfg.Web.BackendAddress),
		zap.Int("min_size", cfg.MinSize),
		zap.Int("max_size", cfg.MaxSize),
		zap.Int("default_size", cfg.DefaultSize),
	)
	return nil
}

func (a *app) restCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rest",
		Short: "Run the QR code REST service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.log.Info("Starting QR code REST service",
				zap.String("version", Version),
				zap.String("git_commit", GitCommit),
			)
			return serve(ctx, newRESTServer(a.cfg, a.log), a.cfg.ShutdownTimeout.Duration, a.log)
		},
	}
}

func (a *app) webCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Run the QR code web front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := newWebServer(a.cfg, a.log)
			if err != nil {
				return err
			}

			a.log.Info("Starting QR code web front end",
				zap.String("version", Version),
				zap.String("backend_address", a.cfg.Web.BackendAddress),
			)
			return serve(ctx, srv, a.cfg.ShutdownTimeout.Duration, a.log)
		},
	}
}

func (a *app) generateCmd() *cobra.Command {
	var (
		url  string
		size int
		out  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a QR code PNG for a URL to a local file",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := qr.NewService(a.log, a.cfg.MinSize, a.cfg.MaxSize, a.cfg.DefaultSize)
			if err := svc.WriteFile(qr.NewRequest(url, size), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "QR code generated and saved to: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "URL to encode")
	cmd.Flags().IntVar(&size, "size", 0, "Image width and height in pixels (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "qrcode.png", "Output file")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func (a *app) healthCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the REST service is ready",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Web.BackendAddress
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Web.ClientTimeout.Duration)
			defer cancel()

			c := client.NewRestClient(addr, a.cfg.Web.ClientTimeout.Duration, a.log)
			if !c.IsReady(ctx) {
				return fmt.Errorf("backend at %s is not ready", addr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backend at %s is ready\n", addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "REST service address (default from config)")
	return cmd
}
