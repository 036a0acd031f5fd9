package controllers_fx

import (
	"go.uber.org/fx"
	"yatrojana/internal/api/controllers"
	"yatrojana/internal/events"
)

var Module = fx.Options(
	fx.Provide(controllers.NewTravelController),
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewDiscoveryController),
	fx.Provide(func(bus *events.Bus) *controllers.EventsController {
		return controllers.NewEventsController(bus)
	}))
