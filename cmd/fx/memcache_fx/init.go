package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"yatrojana/internal/config"
	mem "yatrojana/pkg/memcache"
)

const sweepInterval = time.Minute

var Module = fx.Provide(provideChatSessionStore)

// provideChatSessionStore also runs a janitor that drops expired sessions.
func provideChatSessionStore(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) mem.ChatSessionStore {
	store := mem.NewChatSessions(cfg.ChatTTL)
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := store.Sweep(); n > 0 {
							logger.Debug("expired chat sessions removed", zap.Int("count", n))
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return store
}
