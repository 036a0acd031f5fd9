package infra

import (
	"context"
	"fmt"

	"yatrojana/internal/config"
	"yatrojana/pkg/utils"

	"go.uber.org/zap"
)

// InitAIClient connects to the configured generative backend.
func InitAIClient(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (utils.AIClientInterface, error) {
	logger.Info("initializing ai backend", zap.String("provider", cfg.Provider))

	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := utils.NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	case config.ProviderGeminiSDK:
		client, err := utils.NewGeminiSDKClient(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini SDK client: %w", err)
		}
		return client, nil
	case config.ProviderOpenAI:
		client, err := utils.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %s", utils.ErrUnsupportedModel, cfg.Provider)
	}
}

func CloseAIClient(client utils.AIClientInterface, logger *zap.Logger) {
	if err := client.Close(); err != nil {
		logger.Warn("error closing ai backend", zap.Error(err))
	}
}
