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

import "strings"

const (
	// DefaultMinSize and DefaultMaxSize bound the image side length in pixels.
	DefaultMinSize = 100
	DefaultMaxSize = 500
	// DefaultSize is used when a request does not carry a size.
	DefaultSize = 300
)

// Validator checks generation input before any encoding work is done.
// The zero value is not useful; use NewValidator.
type Validator struct {
	MinSize int
	MaxSize int
}

// NewValidator returns a Validator accepting sizes in [minSize, maxSize].
func NewValidator(minSize, maxSize int) Validator {
	return Validator{MinSize: minSize, MaxSize: maxSize}
}

// Validate checks, in order, that url is set, that it is not blank and that size is in range.
// The first failing rule is reported.
func (v Validator) Validate(url *string, size int) error {
	if url == nil {
		return &GenerationError{Kind: NullInput, Message: msgNullInput}
	}
	if strings.TrimSpace(*url) == "" {
		return &GenerationError{Kind: EmptyInput, Message: msgEmptyInput}
	}
	if size < v.MinSize || size > v.MaxSize {
		return newInvalidSizeError(v.MinSize, v.MaxSize)
	}
	return nil
}
