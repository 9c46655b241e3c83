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

// Package web serves the HTML front end: a form that asks the backend for a QR code
// and shows the returned image.
package web

import (
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qrcode-app/internal/client"
)

const (
	mainPage = "qrcode.html"

	actionSend  = "Send"
	actionClear = "Clear"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pageData is the model of the main page.
type pageData struct {
	ShowMainPage bool
	ShowQRCode   bool
	Input        InputForm
	QRCode       template.URL
	Errors       FieldErrors
	Error        string
	MinSize      int
	MaxSize      int
}

// Controller handles the main page and its form actions.
type Controller struct {
	client  client.Client
	logger  *zap.Logger
	minSize int
	maxSize int
}

// NewController creates a controller that validates sizes against [minSize, maxSize].
func NewController(c client.Client, logger *zap.Logger, minSize, maxSize int) (*Controller, error) {
	if err := registerValidations(); err != nil {
		return nil, err
	}
	return &Controller{
		client:  c,
		logger:  logger,
		minSize: minSize,
		maxSize: maxSize,
	}, nil
}

func (ctl *Controller) page() pageData {
	return pageData{
		ShowMainPage: true,
		MinSize:      ctl.minSize,
		MaxSize:      ctl.maxSize,
	}
}

// ShowPage renders the form when the backend is ready, or a warning otherwise.
func (ctl *Controller) ShowPage(c *gin.Context) {
	data := ctl.page()
	if !ctl.client.IsReady(c.Request.Context()) {
		ctl.logger.Warn("Backend is not ready to use, hiding the form")
		data.ShowMainPage = false
	}
	c.HTML(http.StatusOK, mainPage, data)
}

// Generate dispatches the form's Send and Clear actions.
func (ctl *Controller) Generate(c *gin.Context) {
	switch action := c.PostForm("action"); action {
	case actionSend:
		ctl.send(c)
	case actionClear:
		ctl.logger.Debug("Cleaning up the page")
		c.HTML(http.StatusOK, mainPage, ctl.page())
	default:
		ctl.logger.Warn("Unknown form action", zap.String("action", action))
		data := ctl.page()
		data.Error = "Unknown action"
		c.HTML(http.StatusBadRequest, mainPage, data)
	}
}

func (ctl *Controller) send(c *gin.Context) {
	data := ctl.page()

	var form InputForm
	if err := c.ShouldBind(&form); err != nil {
		data.Input = form
		data.Errors = bindingErrors(err)
		ctl.logger.Debug("Form rejected", zap.Any("errors", data.Errors))
		c.HTML(http.StatusBadRequest, mainPage, data)
		return
	}
	data.Input = form

	size, msg := form.SizeValue(ctl.minSize, ctl.maxSize)
	if msg != "" {
		data.Errors = FieldErrors{"size": msg}
		c.HTML(http.StatusBadRequest, mainPage, data)
		return
	}

	png, err := ctl.client.GetQRCode(c.Request.Context(), form.URL, size)
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			status = http.StatusBadRequest
		}
		ctl.logger.Error("QR code generation failed", zap.Error(err), zap.Int("status", status))
		data.Error = err.Error()
		c.HTML(status, mainPage, data)
		return
	}

	data.ShowQRCode = true
	data.QRCode = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	c.HTML(http.StatusOK, mainPage, data)
}

// NewRouter builds the gin engine serving the front end.
func NewRouter(ctl *Controller, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.Use(Logger(logger))
	router.Use(ErrorHandler(logger))
	router.Use(SecurityHeaders())

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/qrcode")
	})
	router.GET("/qrcode", ctl.ShowPage)
	router.POST("/generate", ctl.Generate)

	return router
}
