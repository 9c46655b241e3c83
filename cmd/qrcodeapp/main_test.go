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
	"bytes"
	"context"
	"image"
	_ "image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/config"
	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/qr"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.yaml")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "qrcodeapp dev")
}

func TestGenerateCommand(t *testing.T) {
	t.Run("writes a png", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "code.png")
		out, err := runCmd(t, "generate",
			"--url", "https://example.com/sample.pdf",
			"--size", "200",
			"--out", path,
			"--config", missingConfig(t),
		)
		require.NoError(t, err)
		assert.Contains(t, out, "QR code generated and saved to: "+path)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		cfg, format, err := image.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 200, cfg.Width)
		assert.Equal(t, 200, cfg.Height)
	})

	t.Run("rejects a size out of range", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "code.png")
		_, err := runCmd(t, "generate",
			"--url", "https://example.com",
			"--size", "50",
			"--out", path,
			"--config", missingConfig(t),
		)
		require.Error(t, err)
		kind, ok := qr.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, qr.InvalidSize, kind)
		assert.NoFileExists(t, path)
	})

	t.Run("requires a url", func(t *testing.T) {
		_, err := runCmd(t, "generate", "--config", missingConfig(t))
		assert.Error(t, err)
	})
}

func TestHealthCommand(t *testing.T) {
	cfg := config.Default()
	backend := httptest.NewServer(newRESTServer(cfg, zap.NewNop()).Handler)
	defer backend.Close()

	out, err := runCmd(t, "health", "--addr", backend.URL, "--config", missingConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "is ready")

	backend.Close()
	_, err = runCmd(t, "health", "--addr", backend.URL, "--config", missingConfig(t))
	assert.Error(t, err)
}

func TestNewRESTServer(t *testing.T) {
	cfg := config.Default()
	srv := newRESTServer(cfg, zap.NewNop())
	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, cfg.ReadTimeout.Duration, srv.ReadTimeout)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"READY"}`, rec.Body.String())
}

func TestNewWebServer(t *testing.T) {
	cfg := config.Default()
	srv, err := newWebServer(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ":8081", srv.Addr)
	assert.Equal(t, cfg.WriteTimeout.Duration+cfg.Web.ClientTimeout.Duration, srv.WriteTimeout)
}

func TestServe(t *testing.T) {
	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

		done := make(chan error, 1)
		go func() { done <- serve(ctx, srv, time.Second, zap.NewNop()) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after cancel")
		}
	})

	t.Run("reports listen failures", func(t *testing.T) {
		srv := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}
		err := serve(context.Background(), srv, time.Second, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server failed")
	})
}
