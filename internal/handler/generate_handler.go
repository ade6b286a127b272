package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailgenie/internal/gateway"
	"mailgenie/internal/model"
	"mailgenie/pkg/logger"
)

const (
	msgRateLimited     = "Rate limit exceeded. Please try again in a moment."
	msgCreditsDepleted = "AI credits depleted. Please add more credits to continue."
	msgInvalidBody     = "invalid request body"
)

type generator interface {
	Generate(ctx context.Context, emailType model.Kind, form model.FormData) (string, error)
}

// generateRequest is model.EmailRequest with formData required.
type generateRequest struct {
	EmailType model.Kind      `json:"emailType"`
	FormData  *model.FormData `json:"formData"`
}

type GenerateHandler struct {
	generator generator
	logger    *zap.Logger
}

func NewGenerateHandler(g generator, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: g,
		logger:    logger,
	}
}

// GenerateEmail handles POST /generate-email
func (h *GenerateHandler) GenerateEmail(c *gin.Context) {
	log := logger.WithTrace(c.Request.Context(), h.logger)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FormData == nil {
		log.Error("Error in generate-email handler", zap.Error(err), zap.Bool("form_data", req.FormData != nil))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInvalidBody})
		return
	}

	generated, err := h.generator.Generate(c.Request.Context(), req.EmailType, *req.FormData)
	if err != nil {
		status, msg := errorResponse(err)
		if status == http.StatusInternalServerError {
			log.Error("Error in generate-email handler", zap.Error(err))
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generatedEmail": generated})
}

// errorResponse maps a generation error onto the status and message the
// client sees. Only upstream 429 and 402 keep their status.
func errorResponse(err error) (int, string) {
	var upstreamErr *gateway.UpstreamError
	if errors.As(err, &upstreamErr) {
		switch {
		case upstreamErr.IsRateLimited():
			return http.StatusTooManyRequests, msgRateLimited
		case upstreamErr.IsBillingExhausted():
			return http.StatusPaymentRequired, msgCreditsDepleted
		}
	}
	return http.StatusInternalServerError, err.Error()
}
