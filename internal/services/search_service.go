package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"yatrojana/internal/models/request_models"
	"yatrojana/internal/models/response_models"
	"yatrojana/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type SearchServiceInterface interface {
	Search(ctx context.Context, req request_models.SearchRequest) (*response_models.SearchResult, error)
	StreamItinerary(ctx context.Context, query request_models.TripQuery) (*ItineraryStream, error)
}

type SearchService struct {
	gateway TravelGatewayInterface
	logger  *zap.Logger
}

func NewSearchService(gateway TravelGatewayInterface, logger *zap.Logger) SearchServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{gateway: gateway, logger: logger.Named("search")}
}

// Search validates the query, runs the gateway operation for its mode and any
// requested follow-ups. Nothing reaches the gateway when validation fails.
func (s *SearchService) Search(ctx context.Context, req request_models.SearchRequest) (*response_models.SearchResult, error) {
	q := req.Query
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.Mode == request_models.ModeItinerary {
		return nil, fmt.Errorf("%w: itinerary results are streamed, use the itinerary stream", utils.ErrInvalidTripQuery)
	}

	result := &response_models.SearchResult{Mode: string(q.Mode)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.primary(gctx, q, req.FollowUps, result)
	})
	// details are independent of the primary result, so fetch them alongside
	if req.FollowUps.DestinationDetails && q.RefreshCount == 0 {
		g.Go(func() error {
			result.Details = s.gateway.FetchDestinationDetails(gctx, q.Destination)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("search served",
		zap.String("mode", string(q.Mode)),
		zap.String("destination", q.Destination),
		zap.Bool("nearby_lodging", result.NearbyLodging != nil),
		zap.Bool("details", result.Details != nil))
	return result, nil
}

// primary runs the mode's query, then its follow-up unless the caller has gone.
func (s *SearchService) primary(ctx context.Context, q request_models.TripQuery, follow request_models.FollowUps, result *response_models.SearchResult) error {
	switch q.Mode {
	case request_models.ModeTripPlanner:
		plan := s.gateway.FetchTripPlan(ctx, q.Origin, q.Destination, q.Adults, q.Children, q.BudgetTier, q.Geo)
		result.TripPlan = &plan
	case request_models.ModeHotel, request_models.ModeHomestay:
		lodging := s.gateway.FetchLodging(ctx, request_models.LodgingKind(q.Mode), q.Destination, q.Adults, q.Children, q.BudgetTier, q.Geo)
		result.Lodging = &lodging
	case request_models.ModeTrain:
		trains := s.gateway.FetchTrains(ctx, q.Origin, q.Destination)
		result.Trains = &trains
		if follow.NearbyLodging && len(trains.Trains) > 0 && ctx.Err() == nil {
			anchor := trains.Trains[0].ToStation
			if strings.TrimSpace(anchor) == "" {
				anchor = q.Destination
			}
			nearby := s.gateway.FetchNearbyLodging(ctx, anchor, q.BudgetTier)
			result.NearbyLodging = &nearby
		}
	case request_models.ModeFlight:
		flights := s.gateway.FetchFlights(ctx, q.Origin, q.Destination, q.Adults, q.Children)
		result.Flights = &flights
		if follow.NearbyLodging && ctx.Err() == nil {
			nearby := s.gateway.FetchNearbyLodging(ctx, q.Destination+" Airport", q.BudgetTier)
			result.NearbyLodging = &nearby
		}
	case request_models.ModeCab:
		cab := s.gateway.FetchCabEstimate(ctx, q.Origin, q.Destination)
		cab.BookingLinks = CabBookingLinks(q.Origin, q.Destination)
		result.Cab = &cab
	}
	return ctx.Err()
}

func (s *SearchService) StreamItinerary(ctx context.Context, query request_models.TripQuery) (*ItineraryStream, error) {
	query.Mode = request_models.ModeItinerary
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.gateway.StreamItinerary(ctx, query.Destination, query.Days, query.Geo, query.RefreshCount), nil
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// CabBookingLinks are the deep links offered next to a cab estimate.
func CabBookingLinks(from, to string) []response_models.BookingLink {
	return []response_models.BookingLink{
		{Provider: "Uber", URL: fmt.Sprintf("https://m.uber.com/lookup?pickup=%s&destination=%s", escapeComponent(from), escapeComponent(to))},
		{Provider: "Ola", URL: "https://www.olacabs.com/"},
	}
}
