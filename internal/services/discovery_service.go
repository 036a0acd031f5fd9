package services

import (
	"context"
	"strings"
	"time"

	"yatrojana/internal/events"
	"yatrojana/internal/models/request_models"
	"yatrojana/internal/models/response_models"
	"yatrojana/pkg/utils"

	"go.uber.org/zap"
)

type EventPublisher interface {
	Publish(topic events.Topic, payload string) int
}

type DiscoveryServiceInterface interface {
	Trending(ctx context.Context, month string, geo *request_models.GeoPoint) response_models.TrendingResult
	Suggestions(ctx context.Context, prefs request_models.SuggestionPrefs) []response_models.DestinationSuggestion
	DestinationDetails(ctx context.Context, destination string) (*response_models.DestinationDetails, error)
	SelectDestination(ctx context.Context, destination string) error
	RequestInsight(ctx context.Context, prefs request_models.SuggestionPrefs) string
}

type DiscoveryService struct {
	gateway   TravelGatewayInterface
	publisher EventPublisher
	now       func() time.Time
	logger    *zap.Logger
}

func NewDiscoveryService(gateway TravelGatewayInterface, publisher EventPublisher, logger *zap.Logger) DiscoveryServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscoveryService{gateway: gateway, publisher: publisher, now: time.Now, logger: logger.Named("discovery")}
}

// Trending uses the current month in India when month is empty.
func (s *DiscoveryService) Trending(ctx context.Context, month string, geo *request_models.GeoPoint) response_models.TrendingResult {
	month = strings.TrimSpace(month)
	if month == "" {
		month = utils.MonthNameIN(s.now())
	}
	return response_models.TrendingResult{
		Month:  month,
		Cities: s.gateway.FetchTrendingCities(ctx, month, geo),
	}
}

func (s *DiscoveryService) Suggestions(ctx context.Context, prefs request_models.SuggestionPrefs) []response_models.DestinationSuggestion {
	return s.gateway.FetchDestinationSuggestions(ctx, prefs)
}

func (s *DiscoveryService) DestinationDetails(ctx context.Context, destination string) (*response_models.DestinationDetails, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, utils.ErrMissingDestination
	}
	return s.gateway.FetchDestinationDetails(ctx, destination), nil
}

func (s *DiscoveryService) SelectDestination(ctx context.Context, destination string) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return utils.ErrMissingDestination
	}
	n := s.publisher.Publish(events.TopicSetDestination, destination)
	s.logger.Debug("destination selected", zap.String("destination", destination), zap.Int("subscribers", n))
	return nil
}

// RequestInsight publishes the insight prompt for the chat widget and returns it.
func (s *DiscoveryService) RequestInsight(ctx context.Context, prefs request_models.SuggestionPrefs) string {
	prompt := insightPrompt(prefs)
	s.publisher.Publish(events.TopicOpenChat, prompt)
	return prompt
}
