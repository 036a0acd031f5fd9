package services

import (
	"context"
	"strings"
	"testing"

	"yatrojana/internal/models/request_models"
	"yatrojana/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routeAI answers by prompt content so one fake can serve primary and follow-up calls.
func routeAI(replies map[string]string) *fakeAI {
	return &fakeAI{replyFn: func(req utils.AIRequest) (*utils.AIResponse, error) {
		for needle, reply := range replies {
			if strings.Contains(req.Prompt, needle) {
				return &utils.AIResponse{Text: reply}, nil
			}
		}
		return nil, utils.ErrAIUnavailable
	}}
}

func TestSearchRejectsInvalidQueryWithoutCalls(t *testing.T) {
	tests := []struct {
		name  string
		query request_models.TripQuery
		err   error
	}{
		{"empty destination", request_models.TripQuery{Destination: "   ", Mode: request_models.ModeHotel}, utils.ErrMissingDestination},
		{"train without origin", request_models.TripQuery{Destination: "Goa", Mode: request_models.ModeTrain}, utils.ErrMissingOrigin},
		{"unknown mode", request_models.TripQuery{Destination: "Goa", Mode: "Bus"}, utils.ErrInvalidTripQuery},
		{"itinerary via search", request_models.TripQuery{Destination: "Goa", Days: 3}, utils.ErrInvalidTripQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &fakeAI{reply: "{}"}
			svc := NewSearchService(newGateway(ai), nil)

			_, err := svc.Search(ctx, request_models.SearchRequest{
				Query:     tt.query,
				FollowUps: request_models.FollowUps{NearbyLodging: true, DestinationDetails: true},
			})
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, ai.calls())
		})
	}
}

func TestStreamItineraryRejectsEmptyDestination(t *testing.T) {
	ai := &fakeAI{}
	_, err := NewSearchService(newGateway(ai), nil).StreamItinerary(ctx, request_models.TripQuery{Days: 4})
	assert.ErrorIs(t, err, utils.ErrMissingDestination)
	assert.Empty(t, ai.calls())
}

func TestStreamItineraryFromCheckInOut(t *testing.T) {
	ai := &fakeAI{chunks: []utils.AIChunk{{Text: "Day 1"}}}
	stream, err := NewSearchService(newGateway(ai), nil).StreamItinerary(ctx, request_models.TripQuery{
		Destination: "Goa",
		CheckIn:     "2026-12-20",
		CheckOut:    "2026-12-24",
		Geo:         &request_models.GeoPoint{Latitude: 200, Longitude: 0},
	})
	require.NoError(t, err)
	defer stream.Close()

	prompt := ai.calls()[0].Prompt
	assert.Contains(t, prompt, "4-day")
	assert.NotContains(t, prompt, "User location", "invalid location is dropped")
}

const madgaonTrains = `{"trains":[{"train_name":"Konkan Kanya Express","train_number":"20111","departure":"11:05 PM","arrival":"10:50 AM","from_station":"Mumbai CSMT","to_station":"Madgaon Junction","operating_days":"Daily"}]}`

func TestSearchTrainWithNearbyLodging(t *testing.T) {
	ai := routeAI(map[string]string{
		"popular trains":        madgaonTrains,
		"hotels near":           `{"hotels":[{"name":"Station Inn","location_note":"Opposite station","price_note":"INR 2500"}]}`,
		"comprehensive details": `{"description":"d","best_time_to_visit":"b","attractions":[]}`,
	})
	svc := NewSearchService(newGateway(ai), nil)

	result, err := svc.Search(ctx, request_models.SearchRequest{
		Query:     request_models.TripQuery{Origin: "Mumbai", Destination: "Goa", Mode: request_models.ModeTrain, BudgetTier: request_models.TierBudget},
		FollowUps: request_models.FollowUps{NearbyLodging: true, DestinationDetails: true},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Trains)
	require.Len(t, result.Trains.Trains, 1)
	require.NotNil(t, result.NearbyLodging)
	assert.Equal(t, "Station Inn", result.NearbyLodging.Hotels[0].Name)
	require.NotNil(t, result.Details)

	var nearbyPrompt string
	for _, c := range ai.calls() {
		if strings.Contains(c.Prompt, "hotels near") {
			nearbyPrompt = c.Prompt
		}
	}
	assert.Equal(t, "Find hotels near Madgaon Junction in the Budget range.", nearbyPrompt)
}

func TestSearchTrainSkipsNearbyWhenNoTrains(t *testing.T) {
	ai := routeAI(map[string]string{"popular trains": `{"trains":[]}`})
	result, err := NewSearchService(newGateway(ai), nil).Search(ctx, request_models.SearchRequest{
		Query:     request_models.TripQuery{Origin: "Mumbai", Destination: "Goa", Mode: request_models.ModeTrain},
		FollowUps: request_models.FollowUps{NearbyLodging: true},
	})
	require.NoError(t, err)
	assert.Nil(t, result.NearbyLodging)
	assert.Len(t, ai.calls(), 1)
}

func TestSearchFlightAnchorsOnAirport(t *testing.T) {
	ai := routeAI(map[string]string{
		"flight availability": `{"flights":[{"airline":"IndiGo","total_price":"INR 5400"}]}`,
		"hotels near":         `{"hotels":[]}`,
	})
	result, err := NewSearchService(newGateway(ai), nil).Search(ctx, request_models.SearchRequest{
		Query:     request_models.TripQuery{Origin: "Delhi", Destination: "Goa", Mode: request_models.ModeFlight},
		FollowUps: request_models.FollowUps{NearbyLodging: true},
	})
	require.NoError(t, err)
	require.NotNil(t, result.NearbyLodging)

	calls := ai.calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].Prompt, "for 2 adults and 0 children", "adults default to two")
	assert.Equal(t, "Find hotels near Goa Airport in the Standard range.", calls[1].Prompt)
}

func TestSearchFollowUpsAreOptIn(t *testing.T) {
	ai := routeAI(map[string]string{"flight availability": `{"flights":[]}`})
	result, err := NewSearchService(newGateway(ai), nil).Search(ctx, request_models.SearchRequest{
		Query: request_models.TripQuery{Origin: "Delhi", Destination: "Goa", Mode: request_models.ModeFlight},
	})
	require.NoError(t, err)
	assert.Nil(t, result.NearbyLodging)
	assert.Nil(t, result.Details)
	assert.Len(t, ai.calls(), 1)
}

func TestSearchSkipsDetailsOnRefresh(t *testing.T) {
	ai := routeAI(map[string]string{"top-rated": `{"hotels":[]}`})
	_, err := NewSearchService(newGateway(ai), nil).Search(ctx, request_models.SearchRequest{
		Query:     request_models.TripQuery{Destination: "Goa", Mode: request_models.ModeHotel, RefreshCount: 1},
		FollowUps: request_models.FollowUps{DestinationDetails: true},
	})
	require.NoError(t, err)
	assert.Len(t, ai.calls(), 1)
}

func TestSearchCabAddsBookingLinks(t *testing.T) {
	ai := routeAI(map[string]string{"cab travel": `{"distance":"35 km","estimated_time":"50 min","estimates":[{"type":"Mini","cost":"INR 900"}]}`})
	result, err := NewSearchService(newGateway(ai), nil).Search(ctx, request_models.SearchRequest{
		Query: request_models.TripQuery{Origin: "Goa Airport", Destination: "Panaji City", Mode: request_models.ModeCab},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Cab)
	assert.Equal(t, "35 km", result.Cab.Distance)
	require.Len(t, result.Cab.BookingLinks, 2)
	assert.Equal(t, "https://m.uber.com/lookup?pickup=Goa%20Airport&destination=Panaji%20City", result.Cab.BookingLinks[0].URL)
	assert.Equal(t, "https://www.olacabs.com/", result.Cab.BookingLinks[1].URL)
}

func TestSearchTripPlannerAndHomestay(t *testing.T) {
	ai := routeAI(map[string]string{
		"comprehensive trip": "Take the Rajdhani, stay in Panaji.",
		"homestays":          `{"hotels":[]}`,
	})
	svc := NewSearchService(newGateway(ai), nil)

	plan, err := svc.Search(ctx, request_models.SearchRequest{Query: request_models.TripQuery{Origin: "Delhi", Destination: "Goa", Mode: request_models.ModeTripPlanner}})
	require.NoError(t, err)
	require.NotNil(t, plan.TripPlan)
	assert.Equal(t, "Take the Rajdhani, stay in Panaji.", plan.TripPlan.FullPlan)

	stay, err := svc.Search(ctx, request_models.SearchRequest{Query: request_models.TripQuery{Destination: "Coorg", Mode: request_models.ModeHomestay}})
	require.NoError(t, err)
	require.NotNil(t, stay.Lodging)
	assert.NotNil(t, stay.Lodging.Hotels)
}

func TestSearchStopsWhenCallerCancels(t *testing.T) {
	ai := routeAI(map[string]string{
		"flight availability": `{"flights":[]}`,
		"hotels near":         `{"hotels":[]}`,
	})
	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err := NewSearchService(newGateway(ai), nil).Search(cancelled, request_models.SearchRequest{
		Query:     request_models.TripQuery{Origin: "Delhi", Destination: "Goa", Mode: request_models.ModeFlight},
		FollowUps: request_models.FollowUps{NearbyLodging: true, DestinationDetails: true},
	})
	assert.ErrorIs(t, err, context.Canceled)
	for _, call := range ai.calls() {
		assert.NotContains(t, call.Prompt, "hotels near", "follow-up ran after cancellation")
	}
}
