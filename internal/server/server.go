// Package server exposes the translation pipeline over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valpere/medtran/internal/pipeline"
	"github.com/valpere/medtran/internal/translator"
)

// Runner is satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, text, sourceLang, targetLang string) pipeline.Result
}

type Handler struct {
	runner  Runner
	service string
}

func NewHandler(runner Runner, service string) *Handler {
	return &Handler{runner: runner, service: service}
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang" binding:"required"`
}

type outcomeBody struct {
	Kind           string `json:"kind"`
	TranslatedText string `json:"translated_text,omitempty"`
	EstimatedTime  string `json:"estimated_time,omitempty"`
	StatusCode     int    `json:"status_code,omitempty"`
	Detail         string `json:"detail,omitempty"`
	Service        string `json:"service"`
	Model          string `json:"model,omitempty"`
	LatencyMs      int64  `json:"latency_ms"`
}

func newOutcomeBody(o translator.Outcome) outcomeBody {
	return outcomeBody{
		Kind:           o.Kind.String(),
		TranslatedText: o.TranslatedText,
		EstimatedTime:  o.EstimatedTime,
		StatusCode:     o.StatusCode,
		Detail:         o.Detail,
		Service:        o.Service,
		Model:          o.Model,
		LatencyMs:      o.Latency.Milliseconds(),
	}
}

// Translate answers 200 for every outcome; the body says whether the
// translation succeeded. Only a malformed request gets a 4xx.
func (h *Handler) Translate(c *gin.Context) {
	var request TranslateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid_request",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	res := h.runner.Run(c.Request.Context(), request.Text, request.SourceLang, request.TargetLang)
	ok, msg := res.Result()

	body := gin.H{
		"success":     ok,
		"message":     msg,
		"request_id":  res.RequestID,
		"source_lang": res.SourceLang,
		"target_lang": res.TargetLang,
		"outcome":     newOutcomeBody(res.Outcome),
	}
	if res.Warning != "" {
		body["warning"] = res.Warning
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   "not_found",
		"message": "Route not found",
	})
}

// NewRouter wires the routes; middleware such as gin.Logger() runs after
// the recovery handler.
func NewRouter(h *Handler, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)

	router.GET("/healthz", h.Health)
	router.POST("/api/translate", h.Translate)
	router.NoRoute(h.NotFound)

	return router
}
