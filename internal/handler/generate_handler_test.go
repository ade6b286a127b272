package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailgenie/internal/gateway"
	"mailgenie/internal/handler"
	"mailgenie/internal/model"
	"mailgenie/internal/prompt"
	"mailgenie/internal/service/email"
)

type generatorMock struct {
	GenerateFunc func(ctx context.Context, emailType model.Kind, form model.FormData) (string, error)
}

func (m *generatorMock) Generate(ctx context.Context, emailType model.Kind, form model.FormData) (string, error) {
	return m.GenerateFunc(ctx, emailType, form)
}

func serve(t *testing.T, g *generatorMock, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/generate-email", handler.NewGenerateHandler(g, zap.NewNop()).GenerateEmail)

	req := httptest.NewRequest(http.MethodPost, "/generate-email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateEmailSuccess(t *testing.T) {
	var gotType model.Kind
	var gotForm model.FormData
	g := &generatorMock{GenerateFunc: func(_ context.Context, k model.Kind, f model.FormData) (string, error) {
		gotType, gotForm = k, f
		return "Dear team,", nil
	}}

	w := serve(t, g, `{"emailType":"new","formData":{"recipient":"","subject":"Hi","context":"Hello","existingEmail":"","tone":"formal"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"generatedEmail":"Dear team,"}`, w.Body.String())
	assert.Equal(t, model.KindNew, gotType)
	assert.Equal(t, model.FormData{Subject: "Hi", Context: "Hello", Tone: model.ToneFormal}, gotForm)
}

func TestGenerateEmailErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			err:      &gateway.UpstreamError{StatusCode: 429},
			wantCode: http.StatusTooManyRequests,
			wantMsg:  "Rate limit exceeded. Please try again in a moment.",
		},
		{
			err:      &gateway.UpstreamError{StatusCode: 402},
			wantCode: http.StatusPaymentRequired,
			wantMsg:  "AI credits depleted. Please add more credits to continue.",
		},
		{
			err:      &gateway.UpstreamError{StatusCode: 503},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "AI gateway error: 503",
		},
		{
			err:      fmt.Errorf("wrapped: %w", &gateway.UpstreamError{StatusCode: 429}),
			wantCode: http.StatusTooManyRequests,
			wantMsg:  "Rate limit exceeded. Please try again in a moment.",
		},
		{
			err:      prompt.ErrInvalidEmailType,
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Invalid email type",
		},
		{
			err:      email.ErrMissingAPIKey,
			wantCode: http.StatusInternalServerError,
			wantMsg:  "AI_GATEWAY_API_KEY is not configured",
		},
		{
			err:      errors.New("connection reset"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "connection reset",
		},
	}

	for _, tc := range cases {
		t.Run(tc.wantMsg, func(t *testing.T) {
			g := &generatorMock{GenerateFunc: func(context.Context, model.Kind, model.FormData) (string, error) {
				return "", tc.err
			}}

			w := serve(t, g, `{"emailType":"reply","formData":{"existingEmail":"x","tone":"formal"}}`)

			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.wantMsg), w.Body.String())
		})
	}
}

func TestGenerateEmailInvalidBody(t *testing.T) {
	bodies := map[string]string{
		"malformed json":    `{not json`,
		"missing form data": `{"emailType":"reply"}`,
		"null form data":    `{"emailType":"reply","formData":null}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			g := &generatorMock{GenerateFunc: func(context.Context, model.Kind, model.FormData) (string, error) {
				require.Fail(t, "generator must not be called")
				return "", nil
			}}

			w := serve(t, g, body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"invalid request body"}`, w.Body.String())
		})
	}
}
