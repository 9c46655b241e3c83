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

// Package http provides the HTTP transport layer for the QR code generation service.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/qr"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// Health status values reported by GET /health.
const (
	StatusReady       = "READY"
	StatusUnavailable = "UNAVAILABLE"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// GenerateResponse is the body of a successful POST /generate. Output is base64 in JSON.
type GenerateResponse struct {
	Output []byte `json:"output"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	svc         qr.Service
	logger      *zap.Logger
	maxBodySize int64
}

// NewHandler creates a new HTTP handler for QR code generation.
func NewHandler(svc qr.Service, logger *zap.Logger, maxBodySize int64) *Handler {
	return &Handler{
		svc:         svc,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

// Generate handles POST /generate requests with a JSON body {"url": "...", "size": 300}.
// Responds 201 with the PNG as base64, or 400 with the generation error message.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With(zap.String("request_id", RequestIDFromContext(r.Context())))

	if h.svc == nil {
		log.Error("QR service is not available")
		writeJSON(w, log, http.StatusServiceUnavailable, ErrorResponse{Message: "Service unavailable"})
		return
	}

	// Fast fail for obvious oversized requests
	if r.ContentLength > h.maxBodySize {
		log.Warn("Request body too large (ContentLength check)",
			zap.Int64("content_length", r.ContentLength),
			zap.Int64("max_allowed", h.maxBodySize),
		)
		writeJSON(w, log, http.StatusRequestEntityTooLarge, ErrorResponse{Message: "Request body too large"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req qr.Request
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&req)
	if err == nil && !errors.Is(dec.Decode(&struct{}{}), io.EOF) {
		err = errTrailingData
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			log.Warn("Request body too large", zap.Int64("max_allowed", h.maxBodySize))
			writeJSON(w, log, http.StatusRequestEntityTooLarge, ErrorResponse{Message: "Request body too large"})
		case errors.Is(err, io.EOF):
			log.Warn("Empty request body received")
			writeJSON(w, log, http.StatusBadRequest, ErrorResponse{Message: "Request body is empty"})
		default:
			log.Warn("Malformed request body", zap.Error(err))
			writeJSON(w, log, http.StatusBadRequest, ErrorResponse{Message: "Malformed request body"})
		}
		return
	}

	png, err := h.svc.Generate(req)
	if err != nil {
		if kind, ok := qr.KindOf(err); ok && kind != qr.EncodingFailure {
			log.Warn("QR code request rejected", zap.Stringer("kind", kind), zap.Error(err))
		} else {
			log.Error("QR code generation failed", zap.Error(err))
		}
		writeJSON(w, log, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	log.Debug("QR code generated", zap.Int("png_size", len(png)))
	writeJSON(w, log, http.StatusCreated, GenerateResponse{Output: png})
}

// HealthCheck handles GET /health requests for liveness/readiness probes.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With(zap.String("request_id", RequestIDFromContext(r.Context())))

	if h.svc == nil {
		log.Error("Application is not ready")
		writeJSON(w, log, http.StatusServiceUnavailable, HealthResponse{Status: StatusUnavailable})
		return
	}

	log.Debug("Application is ready")
	writeJSON(w, log, http.StatusOK, HealthResponse{Status: StatusReady})
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", zap.Error(err), zap.Int("status", status))
	}
}
