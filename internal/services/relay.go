package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"simplifai-backend/internal/logger"
	"simplifai-backend/internal/metrics"
	"simplifai-backend/internal/models"
)

const (
	opSimplify  = "simplify"
	opTranslate = "translate"
	opChat      = "chat"
)

// RelayService turns simplify, translate and chat requests into a single
// Gemini call each. It holds no per-request state.
type RelayService struct {
	keys        *KeyResolver
	provider    Provider
	strictRoles bool
	log         *logger.Logger
}

func NewRelayService(keys *KeyResolver, provider Provider, strictRoles bool, log *logger.Logger) *RelayService {
	return &RelayService{
		keys:        keys,
		provider:    provider,
		strictRoles: strictRoles,
		log:         log.WithComponent("relay"),
	}
}

// HasFallbackKey reports whether requests without api_key can be served.
func (s *RelayService) HasFallbackKey() bool {
	return s.keys.HasFallback()
}

func (s *RelayService) Simplify(ctx context.Context, req models.TextProcessRequest) (string, error) {
	key, err := s.resolveKey(opSimplify, req.APIKey)
	if err != nil {
		return "", err
	}

	metrics.InputChars.WithLabelValues(opSimplify).Observe(float64(len(req.Text)))
	prompt := buildSimplifyPrompt(req.Text)

	return s.call(ctx, opSimplify, func() (string, error) {
		return s.provider.Generate(ctx, key, prompt)
	})
}

// Translate uses DefaultTargetLanguage when targetLanguage is empty.
func (s *RelayService) Translate(ctx context.Context, req models.TextProcessRequest, targetLanguage string) (string, error) {
	key, err := s.resolveKey(opTranslate, req.APIKey)
	if err != nil {
		return "", err
	}

	metrics.InputChars.WithLabelValues(opTranslate).Observe(float64(len(req.Text)))
	prompt := buildTranslatePrompt(targetLanguage, req.Text)

	return s.call(ctx, opTranslate, func() (string, error) {
		return s.provider.Generate(ctx, key, prompt)
	})
}

func (s *RelayService) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	if s.strictRoles {
		if err := validateHistory(req.History); err != nil {
			metrics.RelayTotal.WithLabelValues(opChat, "invalid").Inc()
			return "", err
		}
	}

	key, err := s.resolveKey(opChat, req.APIKey)
	if err != nil {
		return "", err
	}

	metrics.InputChars.WithLabelValues(opChat).Observe(float64(len(req.Message)))
	metrics.ChatHistoryTurns.Observe(float64(len(req.History)))

	return s.call(ctx, opChat, func() (string, error) {
		return s.provider.Chat(ctx, key, req.History, req.Message)
	})
}

func (s *RelayService) resolveKey(op, requestKey string) (string, error) {
	key, err := s.keys.Resolve(requestKey)
	if err != nil {
		metrics.RelayTotal.WithLabelValues(op, "missing_key").Inc()
		return "", err
	}
	return key, nil
}

func (s *RelayService) call(ctx context.Context, op string, fn func() (string, error)) (string, error) {
	start := time.Now()
	text, err := fn()
	elapsed := time.Since(start)
	metrics.ProviderDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	if err != nil {
		metrics.RelayTotal.WithLabelValues(op, "provider_error").Inc()
		s.log.WithContext(ctx).Error("gemini call failed",
			slog.String("operation", op),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		return "", &ProviderError{Op: op, Err: err}
	}

	metrics.RelayTotal.WithLabelValues(op, "ok").Inc()
	s.log.WithContext(ctx).Debug("gemini call completed",
		slog.String("operation", op),
		slog.Duration("duration", elapsed),
	)
	return text, nil
}

func validateHistory(history []models.ChatMessage) error {
	fieldErrors := make(map[string]string)
	for i, msg := range history {
		if !msg.Role.Valid() {
			fieldErrors[fmt.Sprintf("history[%d].role", i)] = fmt.Sprintf("role must be %q or %q, got %q", models.ChatRoleUser, models.ChatRoleModel, msg.Role)
		}
	}
	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}
	return nil
}
