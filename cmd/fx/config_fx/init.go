package config_fx

import (
	"go.uber.org/fx"
	"yatrojana/internal/config"
)

var Module = fx.Provide(config.Load)
