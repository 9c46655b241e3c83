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
	"errors"
	"fmt"
)

// ErrorKind classifies why a QR code could not be generated.
type ErrorKind int

const (
	// NullInput means no URL was supplied at all.
	NullInput ErrorKind = iota + 1
	// EmptyInput means the URL was empty or whitespace only.
	EmptyInput
	// InvalidSize means the requested size is outside the accepted range.
	InvalidSize
	// EncodingFailure wraps any fault raised while encoding the matrix or writing the PNG.
	EncodingFailure
)

const (
	msgNullInput   = "Input URL is null"
	msgEmptyInput  = "Input URL is empty"
	msgInvalidSize = "Size must be between %d and %d"
)

func (k ErrorKind) String() string {
	switch k {
	case NullInput:
		return "NULL_INPUT"
	case EmptyInput:
		return "EMPTY_INPUT"
	case InvalidSize:
		return "INVALID_SIZE"
	case EncodingFailure:
		return "ENCODING_FAILURE"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// GenerationError is the single error type returned by Validator and Service.
// Message is safe to return to API callers.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err if it is (or wraps) a *GenerationError.
func KindOf(err error) (ErrorKind, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return 0, false
}

func newInvalidSizeError(minSize, maxSize int) *GenerationError {
	return &GenerationError{Kind: InvalidSize, Message: fmt.Sprintf(msgInvalidSize, minSize, maxSize)}
}

// wrapEncodingFailure keeps the collaborator's message as the public message.
func wrapEncodingFailure(err error) *GenerationError {
	return &GenerationError{Kind: EncodingFailure, Message: err.Error(), Err: err}
}
