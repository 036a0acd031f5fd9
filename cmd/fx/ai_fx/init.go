package ai_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"yatrojana/internal/config"
	"yatrojana/internal/infra"
	"yatrojana/pkg/utils"
)

var Module = fx.Provide(ProvideAIClient)

// ProvideAIClient creates the backend selected by AI_PROVIDER
func ProvideAIClient(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (utils.AIClientInterface, error) {
	client, err := infra.InitAIClient(context.Background(), cfg.AI, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseAIClient(client, logger)
			return nil
		},
	})
	return client, nil
}
