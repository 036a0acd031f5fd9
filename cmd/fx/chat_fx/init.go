package chat_fx

import (
	"go.uber.org/fx"
	"yatrojana/cmd/fx/memcache_fx"
	"yatrojana/internal/services"
)

var Module = fx.Options(
	memcache_fx.Module,
	fx.Provide(services.NewChatService))
