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

// Package client talks to the QR code REST service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/qr"
	transport "github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/transport/http"
)

const maxErrorBodySize = 64 << 10

// Client is what the web front end needs from the backend.
type Client interface {
	// IsReady reports whether the backend answers its health probe with READY.
	IsReady(ctx context.Context) bool
	// GetQRCode asks the backend for a PNG of url. A nil size selects the backend default.
	GetQRCode(ctx context.Context, url string, size *int) ([]byte, error)
}

// APIError is returned when the backend answers with a non-success status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return e.Message
}

// RestClient implements Client over HTTP.
type RestClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRestClient creates a client for the backend at backendAddress (scheme and host, no path).
func NewRestClient(backendAddress string, timeout time.Duration, logger *zap.Logger) *RestClient {
	return &RestClient{
		baseURL:    strings.TrimRight(backendAddress, "/") + transport.APIBasePath,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *RestClient) IsReady(ctx context.Context) bool {
	c.logger.Debug("Checking whether backend is up and running")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		c.logger.Error("Failed to build health request", zap.Error(err))
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Backend is not up and running", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	var status transport.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		c.logger.Error("Backend health response could not be decoded",
			zap.Error(err),
			zap.Int("status_code", resp.StatusCode),
		)
		return false
	}

	ready := resp.StatusCode == http.StatusOK && status.Status == transport.StatusReady
	c.logger.Info("Backend health checked", zap.Bool("ready", ready), zap.String("status", status.Status))
	return ready
}

func (c *RestClient) GetQRCode(ctx context.Context, url string, size *int) ([]byte, error) {
	body, err := json.Marshal(qr.Request{URL: &url, Size: size})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	c.logger.Debug("Getting QR code", zap.String("url", url), zap.Any("size", size))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp transport.ErrorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&errResp); err == nil {
			apiErr.Message = errResp.Message
		}
		c.logger.Warn("QR code generation rejected by backend",
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	var result transport.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding backend response: %w", err)
	}
	if len(result.Output) == 0 {
		c.logger.Error("QR code generation response with no body")
		return nil, fmt.Errorf("backend returned an empty QR code")
	}

	c.logger.Debug("QR code retrieved", zap.Int("bytes", len(result.Output)))
	return result.Output, nil
}
