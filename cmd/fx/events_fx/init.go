package events_fx

import (
	"go.uber.org/fx"
	"yatrojana/internal/events"
)

var Module = fx.Provide(events.NewBus)
