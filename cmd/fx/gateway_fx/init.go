package gateway_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"yatrojana/internal/events"
	"yatrojana/internal/services"
)

var Module = fx.Provide(
	services.NewTravelGateway,
	services.NewSearchService,
	ProvideDiscoveryService)

func ProvideDiscoveryService(
	gateway services.TravelGatewayInterface,
	bus *events.Bus,
	logger *zap.Logger,
) services.DiscoveryServiceInterface {
	return services.NewDiscoveryService(gateway, bus, logger)
}
