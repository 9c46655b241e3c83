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
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// Renderer serializes a matrix into image bytes.
type Renderer interface {
	Render(m *Matrix) ([]byte, error)
}

// PNGRenderer writes black-on-white grayscale PNGs.
type PNGRenderer struct {
	Compression png.CompressionLevel
}

// NewPNGRenderer returns a renderer using the best PNG compression.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Compression: png.BestCompression}
}

func (r *PNGRenderer) Render(m *Matrix) ([]byte, error) {
	if m == nil || m.Width <= 0 || m.Height <= 0 {
		return nil, errors.New("cannot render an empty matrix")
	}

	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(r.Compression)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
