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

package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Matrix is a pixel-level bit grid of a QR code. A set bit is a dark pixel.
type Matrix struct {
	Width  int
	Height int
	bits   []bool
}

// NewMatrix returns an all-light matrix of the given dimensions.
func NewMatrix(width, height int) *Matrix {
	return &Matrix{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// Get reports whether the pixel at (x, y) is dark.
func (m *Matrix) Get(x, y int) bool {
	return m.bits[y*m.Width+x]
}

// Set marks the pixel at (x, y) dark.
func (m *Matrix) Set(x, y int) {
	m.bits[y*m.Width+x] = true
}

// setRegion marks a w*h rectangle starting at (left, top) dark.
func (m *Matrix) setRegion(left, top, w, h int) {
	for y := top; y < top+h; y++ {
		row := y * m.Width
		for x := left; x < left+w; x++ {
			m.bits[row+x] = true
		}
	}
}

// Encoder turns text into a QR code matrix of the requested pixel dimensions.
type Encoder interface {
	Encode(text string, width, height int) (*Matrix, error)
}

// SkipEncoder encodes with github.com/skip2/go-qrcode.
type SkipEncoder struct {
	Level qrcode.RecoveryLevel
}

// NewSkipEncoder returns an encoder with Medium error recovery (15%).
func NewSkipEncoder() *SkipEncoder {
	return &SkipEncoder{Level: qrcode.Medium}
}

// Encode builds the QR symbol for text and scales its modules onto a width*height grid.
// Modules are drawn at the largest integer scale that fits and the symbol is centred.
// When the symbol has more modules than requested pixels, the matrix grows to the module count.
func (e *SkipEncoder) Encode(text string, width, height int) (*Matrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("requested dimensions are too small: %dx%d", width, height)
	}

	code, err := qrcode.New(text, e.Level)
	if err != nil {
		return nil, err
	}

	// Bitmap includes the quiet zone and is indexed [y][x]
	modules := code.Bitmap()
	n := len(modules)

	outWidth := max(width, n)
	outHeight := max(height, n)
	multiple := min(outWidth/n, outHeight/n)
	left := (outWidth - n*multiple) / 2
	top := (outHeight - n*multiple) / 2

	m := NewMatrix(outWidth, outHeight)
	for y, row := range modules {
		for x, dark := range row {
			if dark {
				m.setRegion(left+x*multiple, top+y*multiple, multiple, multiple)
			}
		}
	}
	return m, nil
}
