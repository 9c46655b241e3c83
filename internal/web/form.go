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

package web

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxURLLength = 255

var (
	httpURLPattern = regexp.MustCompile(`^(http|https)://`)

	registerOnce sync.Once
	registerErr  error
)

// InputForm is the data posted by the main page's form. Size stays a string so that an
// empty field means "use the backend default" instead of zero.
type InputForm struct {
	URL  string `form:"url" binding:"required,httpurl,max=255"`
	Size string `form:"size" binding:"omitempty,numeric"`
}

// FieldErrors maps form field names to the message shown next to them.
type FieldErrors map[string]string

// registerValidations installs the custom tags used by InputForm on gin's validator.
func registerValidations() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding validator is not go-playground/validator")
			return
		}
		registerErr = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return httpURLPattern.MatchString(fl.Field().String())
		})
	})
	return registerErr
}

// bindingErrors converts validator errors into user-facing messages.
func bindingErrors(err error) FieldErrors {
	fieldErrs := FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrs["form"] = "Invalid form submission"
		return fieldErrs
	}

	for _, fe := range verrs {
		switch fe.Field() {
		case "URL":
			switch fe.Tag() {
			case "required":
				fieldErrs["url"] = "URL must not be empty or blank"
			case "httpurl":
				fieldErrs["url"] = "URL must start with either http:// or https://"
			default:
				fieldErrs["url"] = fmt.Sprintf("URL size must be between 1 and %d characters", maxURLLength)
			}
		case "Size":
			fieldErrs["size"] = "Size must be a number"
		}
	}
	return fieldErrs
}

// SizeValue parses the size field and checks it against [minSize, maxSize].
// An empty field yields nil.
func (f InputForm) SizeValue(minSize, maxSize int) (*int, string) {
	if f.Size == "" {
		return nil, ""
	}
	size, err := strconv.Atoi(f.Size)
	if err != nil {
		return nil, "Size must be a number"
	}
	if size < minSize {
		return nil, fmt.Sprintf("Size must not be less than %d", minSize)
	}
	if size > maxSize {
		return nil, fmt.Sprintf("Size must not be bigger than %d", maxSize)
	}
	return &size, ""
}
