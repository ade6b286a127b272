package email

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mailgenie/internal/gateway"
	"mailgenie/internal/model"
	"mailgenie/internal/prompt"
	"mailgenie/pkg/logger"
	"mailgenie/pkg/metrics"
)

// ErrMissingAPIKey means the service was built without an upstream credential.
var ErrMissingAPIKey = errors.New("AI_GATEWAY_API_KEY is not configured")

type Service struct {
	apiKey    string
	completer gateway.Completer
	logger    *zap.Logger
}

// NewService takes the upstream credential explicitly so that a missing key
// is reported per request rather than read from the environment.
func NewService(apiKey string, completer gateway.Completer, logger *zap.Logger) *Service {
	return &Service{
		apiKey:    apiKey,
		completer: completer,
		logger:    logger,
	}
}

// Generate builds the prompt for emailType and asks the model once.
func (s *Service) Generate(ctx context.Context, emailType model.Kind, form model.FormData) (string, error) {
	log := logger.WithTrace(ctx, s.logger).With(zap.String("email_type", string(emailType)))

	if s.apiKey == "" {
		metrics.IncrementEmailGeneration(kindLabel(emailType), "not_configured")
		return "", ErrMissingAPIKey
	}

	p, err := prompt.Build(emailType, form)
	if err != nil {
		metrics.IncrementEmailGeneration("invalid", "invalid_type")
		return "", err
	}

	log.Info("Generating email")

	content, err := s.completer.Complete(ctx, p.System, p.User)
	if err != nil {
		metrics.IncrementEmailGeneration(string(emailType), outcome(err))
		return "", err
	}

	metrics.IncrementEmailGeneration(string(emailType), "success")
	log.Info("Email generated successfully", zap.Int("length", len(content)))

	return content, nil
}

func outcome(err error) string {
	var upstreamErr *gateway.UpstreamError
	if errors.As(err, &upstreamErr) {
		switch {
		case upstreamErr.IsRateLimited():
			return "rate_limited"
		case upstreamErr.IsBillingExhausted():
			return "credits_depleted"
		}
	}
	return "failed"
}

// kindLabel keeps arbitrary client input out of metric labels.
func kindLabel(k model.Kind) string {
	if _, err := model.ParseKind(string(k)); err != nil {
		return "invalid"
	}
	return string(k)
}
