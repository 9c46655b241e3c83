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

// Package qr provides QR code generation functionality: input validation, matrix encoding
// and PNG rendering behind a single Service.
package qr

import (
	"fmt"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
)

const maxLoggedURLLength = 64

// Request is the input of a generation. A nil URL means the caller did not send one;
// a nil Size selects the service default.
type Request struct {
	URL  *string `json:"url"`
	Size *int    `json:"size,omitempty"`
}

// NewRequest builds a Request for url with an optional size (0 means default).
func NewRequest(url string, size int) Request {
	req := Request{URL: &url}
	if size != 0 {
		req.Size = &size
	}
	return req
}

type Service interface {
	Generate(req Request) ([]byte, error)
	WriteFile(req Request, path string) error
}

type service struct {
	logger      *zap.Logger
	validator   Validator
	defaultSize int
	encoder     Encoder
	renderer    Renderer
}

// NewService creates a QR code generation service backed by go-qrcode and a PNG renderer.
func NewService(logger *zap.Logger, minSize, maxSize, defaultSize int) Service {
	return NewServiceWith(logger, NewValidator(minSize, maxSize), defaultSize, NewSkipEncoder(), NewPNGRenderer())
}

// NewServiceWith creates a service with explicit collaborators.
func NewServiceWith(logger *zap.Logger, validator Validator, defaultSize int, encoder Encoder, renderer Renderer) Service {
	return &service{
		logger:      logger,
		validator:   validator,
		defaultSize: defaultSize,
		encoder:     encoder,
		renderer:    renderer,
	}
}

// Generate validates req, encodes its URL into a square matrix and returns it as PNG bytes.
// Every failure is a *GenerationError.
func (s *service) Generate(req Request) ([]byte, error) {
	size := s.defaultSize
	if req.Size != nil {
		size = *req.Size
	} else {
		s.logger.Debug("Using default size", zap.Int("size", size))
	}

	if err := s.validator.Validate(req.URL, size); err != nil {
		s.logger.Warn("QR code generation rejected",
			zap.Error(err),
			zap.Int("size", size),
			zap.Int("min", s.validator.MinSize),
			zap.Int("max", s.validator.MaxSize),
		)
		return nil, err
	}

	url := *req.URL
	s.logger.Debug("Encoding QR code",
		zap.String("url", truncateString(url, maxLoggedURLLength)),
		zap.Int("size", size),
	)

	matrix, err := s.encoder.Encode(url, size, size)
	if err != nil {
		s.logger.Error("Failed to encode QR code",
			zap.Error(err),
			zap.Int("url_length", len(url)),
			zap.Int("size", size),
		)
		return nil, wrapEncodingFailure(err)
	}

	png, err := s.renderer.Render(matrix)
	if err != nil {
		s.logger.Error("Failed to render QR code",
			zap.Error(err),
			zap.Int("width", matrix.Width),
			zap.Int("height", matrix.Height),
		)
		return nil, wrapEncodingFailure(err)
	}

	s.logger.Debug("QR code generated successfully",
		zap.Int("output_size_bytes", len(png)),
		zap.String("image_dimensions", fmt.Sprintf("%dx%d", matrix.Width, matrix.Height)),
	)
	return png, nil
}

// WriteFile generates the QR code for req and writes it to path.
func (s *service) WriteFile(req Request, path string) error {
	png, err := s.Generate(req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("writing QR code to %s: %w", path, err)
	}
	s.logger.Info("QR code written", zap.String("path", path), zap.Int("bytes", len(png)))
	return nil
}

// truncateString truncates a string to maxLen runes for safe logging.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
