package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"yatrojana/cmd/fx/ai_fx"
	"yatrojana/cmd/fx/chat_fx"
	"yatrojana/cmd/fx/config_fx"
	"yatrojana/cmd/fx/controllers_fx"
	"yatrojana/cmd/fx/events_fx"
	"yatrojana/cmd/fx/gateway_fx"
	"yatrojana/cmd/fx/logger_fx"
	"yatrojana/internal/api/controllers"
	"yatrojana/internal/config"
	"yatrojana/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		ai_fx.Module,
		events_fx.Module,
		gateway_fx.Module,
		chat_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config              config.Config
	Logger              *zap.Logger
	TravelController    *controllers.TravelController
	ChatController      *controllers.ChatController
	DiscoveryController *controllers.DiscoveryController
	EventsController    *controllers.EventsController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if !p.Config.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger.Named("http")))
	r.Use(middleware.Recovery(p.Logger))
	r.Use(middleware.CORSMiddleware(p.Config.CORSOrigins...))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/search", p.TravelController.Search)
	api.POST("/itinerary/stream", p.TravelController.StreamItinerary)
	api.POST("/trip-plan", p.TravelController.TripPlan)
	api.POST("/lodging", p.TravelController.Lodging)
	api.POST("/lodging/nearby", p.TravelController.NearbyLodging)
	api.POST("/trains", p.TravelController.Trains)
	api.POST("/flights", p.TravelController.Flights)
	api.POST("/cabs", p.TravelController.Cabs)
	api.GET("/destinations/:name", p.DiscoveryController.DestinationDetails)

	discovery := api.Group("/discovery")
	discovery.GET("/trending", p.DiscoveryController.Trending)
	discovery.POST("/suggestions", p.DiscoveryController.Suggestions)
	discovery.POST("/select", p.DiscoveryController.SelectDestination)
	discovery.POST("/insight", p.DiscoveryController.Insight)

	api.GET("/events", p.EventsController.Stream)

	chat := api.Group("/chat/sessions")
	chat.POST("", p.ChatController.CreateSession)
	chat.GET("/:id", p.ChatController.GetSession)
	chat.DELETE("/:id", p.ChatController.DeleteSession)
	chat.POST("/:id/messages", p.ChatController.SendMessage)
}
