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
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/client"
)

type mockClient struct {
	ready bool
	data  []byte
	err   error

	calls    int
	lastURL  string
	lastSize *int
}

func (m *mockClient) IsReady(ctx context.Context) bool {
	return m.ready
}

func (m *mockClient) GetQRCode(ctx context.Context, url string, size *int) ([]byte, error) {
	m.calls++
	m.lastURL = url
	m.lastSize = size
	return m.data, m.err
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T, c client.Client) *gin.Engine {
	t.Helper()
	ctl, err := NewController(c, zap.NewNop(), 100, 500)
	require.NoError(t, err)
	return NewRouter(ctl, zap.NewNop())
}

func postForm(router http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestShowPage(t *testing.T) {
	t.Run("backend ready shows the form", func(t *testing.T) {
		router := newTestRouter(t, &mockClient{ready: true})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/qrcode", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<form method="post" action="/generate">`)
		assert.NotContains(t, rec.Body.String(), "backend-warning")
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	})

	t.Run("backend down shows a warning", func(t *testing.T) {
		router := newTestRouter(t, &mockClient{ready: false})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/qrcode", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "backend-warning")
		assert.NotContains(t, rec.Body.String(), "<form")
	})

	t.Run("root redirects", func(t *testing.T) {
		router := newTestRouter(t, &mockClient{ready: true})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/qrcode", rec.Header().Get("Location"))
	})
}

func TestGenerate_Send(t *testing.T) {
	t.Run("shows the image", func(t *testing.T) {
		mc := &mockClient{ready: true, data: []byte{34, 56, 102}}
		rec := postForm(newTestRouter(t, mc), url.Values{
			"action": {"Send"},
			"url":    {"https://example.com/sample.pdf"},
			"size":   {"200"},
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `src="data:image/png;base64,Ijhm"`)
		assert.Equal(t, "https://example.com/sample.pdf", mc.lastURL)
		require.NotNil(t, mc.lastSize)
		assert.Equal(t, 200, *mc.lastSize)
	})

	t.Run("empty size uses backend default", func(t *testing.T) {
		mc := &mockClient{ready: true, data: []byte{1}}
		rec := postForm(newTestRouter(t, mc), url.Values{
			"action": {"Send"},
			"url":    {"http://example.com"},
			"size":   {""},
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, mc.lastSize)
	})

	tests := []struct {
		name    string
		values  url.Values
		errID   string
		message string
	}{
		{"missing url", url.Values{"url": {""}}, "url-error", "URL must not be empty or blank"},
		{"bad scheme", url.Values{"url": {"ftp://example.com"}}, "url-error", "URL must start with either http:// or https://"},
		{"url too long", url.Values{"url": {"https://" + strings.Repeat("a", 250)}}, "url-error", "URL size must be between 1 and 255 characters"},
		{"size not a number", url.Values{"url": {"https://example.com"}, "size": {"big"}}, "size-error", "Size must be a number"},
		{"size too small", url.Values{"url": {"https://example.com"}, "size": {"50"}}, "size-error", "Size must not be less than 100"},
		{"negative size", url.Values{"url": {"https://example.com"}, "size": {"-5"}}, "size-error", "Size must not be less than 100"},
		{"fractional size", url.Values{"url": {"https://example.com"}, "size": {"150.5"}}, "size-error", "Size must be a number"},
		{"size too big", url.Values{"url": {"https://example.com"}, "size": {"900"}}, "size-error", "Size must not be bigger than 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &mockClient{ready: true}
			tt.values.Set("action", "Send")
			rec := postForm(newTestRouter(t, mc), tt.values)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `id="`+tt.errID+`"`)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.Equal(t, 0, mc.calls)
		})
	}

	t.Run("backend validation error", func(t *testing.T) {
		mc := &mockClient{ready: true, err: &client.APIError{StatusCode: http.StatusBadRequest, Message: "Input URL is empty"}}
		rec := postForm(newTestRouter(t, mc), url.Values{"action": {"Send"}, "url": {"https://example.com"}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Input URL is empty")
	})

	t.Run("backend unreachable", func(t *testing.T) {
		mc := &mockClient{ready: true, err: errors.New("calling backend: connection refused")}
		rec := postForm(newTestRouter(t, mc), url.Values{"action": {"Send"}, "url": {"https://example.com"}})

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection refused")
	})
}

func TestGenerate_OtherActions(t *testing.T) {
	t.Run("clear resets the form", func(t *testing.T) {
		mc := &mockClient{ready: true}
		rec := postForm(newTestRouter(t, mc), url.Values{"action": {"Clear"}, "url": {"https://example.com"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="url" value=""`)
		assert.NotContains(t, rec.Body.String(), `id="qrcode"`)
		assert.Equal(t, 0, mc.calls)
	})

	t.Run("unknown action", func(t *testing.T) {
		rec := postForm(newTestRouter(t, &mockClient{ready: true}), url.Values{"action": {"Print"}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unknown action")
	})
}
