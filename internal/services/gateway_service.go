package services

import (
	"context"
	"strings"

	"yatrojana/internal/models/request_models"
	"yatrojana/internal/models/response_models"
	"yatrojana/pkg/utils"

	"go.uber.org/zap"
)

// TrendingFallback is returned whenever trending cities cannot be produced.
var TrendingFallback = []string{"Manali", "Goa", "Munnar", "Jaipur", "Rishikesh", "Ooty"}

// TravelGatewayInterface turns trip parameters into backend requests and
// backend replies into typed results. No method returns an error: backend and
// shape failures both yield the operation's default result.
type TravelGatewayInterface interface {
	StreamItinerary(ctx context.Context, destination string, days int, geo *request_models.GeoPoint, refresh int) *ItineraryStream
	FetchTripPlan(ctx context.Context, from, to string, adults, children int, tier request_models.BudgetTier, geo *request_models.GeoPoint) response_models.TripPlanResult
	FetchLodging(ctx context.Context, kind request_models.LodgingKind, location string, adults, children int, tier request_models.BudgetTier, geo *request_models.GeoPoint) response_models.LodgingResult
	FetchNearbyLodging(ctx context.Context, anchor string, tier request_models.BudgetTier) response_models.LodgingResult
	FetchTrains(ctx context.Context, from, to string) response_models.TrainResult
	FetchFlights(ctx context.Context, from, to string, adults, children int) response_models.FlightResult
	FetchCabEstimate(ctx context.Context, from, to string) response_models.CabResult
	FetchDestinationDetails(ctx context.Context, destination string) *response_models.DestinationDetails
	FetchTrendingCities(ctx context.Context, month string, geo *request_models.GeoPoint) []string
	FetchDestinationSuggestions(ctx context.Context, prefs request_models.SuggestionPrefs) []response_models.DestinationSuggestion
	StreamChatReply(ctx context.Context, history []response_models.ChatMessage, message string) *ChatReplyStream
}

type TravelGateway struct {
	ai     utils.AIClientInterface
	logger *zap.Logger
}

func NewTravelGateway(ai utils.AIClientInterface, logger *zap.Logger) TravelGatewayInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TravelGateway{ai: ai, logger: logger.Named("gateway")}
}

func (g *TravelGateway) request(op operation, prompt string) utils.AIRequest {
	return utils.AIRequest{
		Prompt: prompt,
		Schema: schemaTable[op],
		Search: searchOps[op],
	}
}

// generate performs one round trip and reports whether it produced text.
func (g *TravelGateway) generate(ctx context.Context, op operation, req utils.AIRequest) (*utils.AIResponse, bool) {
	resp, err := g.ai.Generate(ctx, req)
	if err != nil {
		g.logger.Warn("backend call failed", zap.String("operation", string(op)), zap.Error(err))
		return nil, false
	}
	return resp, true
}

// structured runs op and decodes the reply into out after validating it
// against the operation's schema. On failure out is left untouched.
func (g *TravelGateway) structured(ctx context.Context, op operation, prompt string, out any) ([]response_models.Attribution, bool) {
	req := g.request(op, prompt)
	resp, ok := g.generate(ctx, op, req)
	if !ok {
		return []response_models.Attribution{}, false
	}
	if err := utils.DecodeWithSchema(resp.Text, req.Schema, out); err != nil {
		g.logger.Warn("unexpected response shape", zap.String("operation", string(op)), zap.Error(err))
		return []response_models.Attribution{}, false
	}
	return toAttribution(resp.Sources), true
}

func toAttribution(sources []utils.Source) []response_models.Attribution {
	out := make([]response_models.Attribution, 0, len(sources))
	for _, s := range sources {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = "Source"
		}
		out = append(out, response_models.Attribution{Title: title, URI: s.URI, Kind: s.Kind})
	}
	return out
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func (g *TravelGateway) StreamItinerary(ctx context.Context, destination string, days int, geo *request_models.GeoPoint, refresh int) *ItineraryStream {
	req := g.request(opItinerary, itineraryPrompt(destination, days, request_models.UsableGeo(geo), refresh))
	stream, err := g.ai.GenerateStream(ctx, req)
	if err != nil {
		g.logger.Warn("backend stream failed", zap.String("operation", string(opItinerary)), zap.Error(err))
		return failedItineraryStream()
	}
	return newItineraryStream(stream, g.logger)
}

func (g *TravelGateway) FetchTripPlan(ctx context.Context, from, to string, adults, children int, tier request_models.BudgetTier, geo *request_models.GeoPoint) response_models.TripPlanResult {
	result := response_models.TripPlanResult{Grounding: []response_models.Attribution{}}
	req := g.request(opTripPlan, tripPlanPrompt(from, to, adults, children, tier, request_models.UsableGeo(geo)))
	resp, ok := g.generate(ctx, opTripPlan, req)
	if !ok {
		return result
	}
	result.FullPlan = resp.Text
	result.Grounding = toAttribution(resp.Sources)
	return result
}

func (g *TravelGateway) FetchLodging(ctx context.Context, kind request_models.LodgingKind, location string, adults, children int, tier request_models.BudgetTier, geo *request_models.GeoPoint) response_models.LodgingResult {
	op := opHotels
	if kind == request_models.LodgingHomestay {
		op = opHomestays
	}
	return g.lodging(ctx, op, lodgingPrompt(kind, location, adults, children, tier, request_models.UsableGeo(geo)))
}

func (g *TravelGateway) FetchNearbyLodging(ctx context.Context, anchor string, tier request_models.BudgetTier) response_models.LodgingResult {
	return g.lodging(ctx, opNearbyLodging, nearbyLodgingPrompt(anchor, tier))
}

func (g *TravelGateway) lodging(ctx context.Context, op operation, prompt string) response_models.LodgingResult {
	var decoded struct {
		Hotels []response_models.Lodging `json:"hotels"`
	}
	grounding, ok := g.structured(ctx, op, prompt, &decoded)
	if !ok {
		return response_models.LodgingResult{Hotels: []response_models.Lodging{}, Grounding: grounding}
	}
	return response_models.LodgingResult{Hotels: orEmpty(decoded.Hotels), Grounding: grounding}
}

func (g *TravelGateway) FetchTrains(ctx context.Context, from, to string) response_models.TrainResult {
	var decoded struct {
		Trains       []response_models.TrainOption `json:"trains"`
		Alternatives string                        `json:"alternatives"`
	}
	grounding, ok := g.structured(ctx, opTrains, trainsPrompt(from, to), &decoded)
	if !ok {
		return response_models.TrainResult{Trains: []response_models.TrainOption{}, Grounding: grounding}
	}
	result := response_models.TrainResult{Trains: orEmpty(decoded.Trains), Grounding: grounding}
	if alt := strings.TrimSpace(decoded.Alternatives); alt != "" {
		result.Alternatives = &alt
	}
	return result
}

func (g *TravelGateway) FetchFlights(ctx context.Context, from, to string, adults, children int) response_models.FlightResult {
	var decoded struct {
		Flights []response_models.FlightOption `json:"flights"`
	}
	grounding, ok := g.structured(ctx, opFlights, flightsPrompt(from, to, adults, children), &decoded)
	if !ok {
		return response_models.FlightResult{Flights: []response_models.FlightOption{}, Grounding: grounding}
	}
	return response_models.FlightResult{Flights: orEmpty(decoded.Flights), Grounding: grounding}
}

func (g *TravelGateway) FetchCabEstimate(ctx context.Context, from, to string) response_models.CabResult {
	var decoded response_models.CabResult
	grounding, ok := g.structured(ctx, opCab, cabPrompt(from, to), &decoded)
	if !ok {
		return response_models.CabResult{
			Distance:      "N/A",
			EstimatedTime: "N/A",
			Estimates:     []response_models.FareEstimate{},
			Grounding:     grounding,
		}
	}
	return response_models.CabResult{
		Distance:      decoded.Distance,
		EstimatedTime: decoded.EstimatedTime,
		Estimates:     orEmpty(decoded.Estimates),
		Grounding:     grounding,
	}
}

func (g *TravelGateway) FetchDestinationDetails(ctx context.Context, destination string) *response_models.DestinationDetails {
	var decoded response_models.DestinationDetails
	if _, ok := g.structured(ctx, opDetails, detailsPrompt(destination), &decoded); !ok {
		return nil
	}
	decoded.Attractions = orEmpty(decoded.Attractions)
	return &decoded
}

func (g *TravelGateway) FetchTrendingCities(ctx context.Context, month string, geo *request_models.GeoPoint) []string {
	var cities []string
	if _, ok := g.structured(ctx, opTrending, trendingPrompt(month, request_models.UsableGeo(geo)), &cities); !ok || len(cities) == 0 {
		return append([]string(nil), TrendingFallback...)
	}
	return cities
}

func (g *TravelGateway) FetchDestinationSuggestions(ctx context.Context, prefs request_models.SuggestionPrefs) []response_models.DestinationSuggestion {
	var suggestions []response_models.DestinationSuggestion
	if _, ok := g.structured(ctx, opSuggestions, suggestionsPrompt(prefs), &suggestions); !ok {
		return []response_models.DestinationSuggestion{}
	}
	return orEmpty(suggestions)
}

func (g *TravelGateway) StreamChatReply(ctx context.Context, history []response_models.ChatMessage, message string) *ChatReplyStream {
	req := utils.AIRequest{
		System:  chatSystemInstruction,
		History: chatHistory(history),
		Prompt:  message,
	}
	stream, err := g.ai.GenerateStream(ctx, req)
	if err != nil {
		g.logger.Warn("backend stream failed", zap.String("operation", string(opChat)), zap.Error(err))
		return failedChatReplyStream()
	}
	return newChatReplyStream(stream, g.logger)
}

// chatHistory drops leading assistant turns (the greeting): chat backends
// expect the conversation to open with the user.
func chatHistory(messages []response_models.ChatMessage) []utils.AIMessage {
	start := 0
	for start < len(messages) && messages[start].Role != response_models.ChatRoleUser {
		start++
	}
	out := make([]utils.AIMessage, 0, len(messages)-start)
	for _, m := range messages[start:] {
		role := utils.AIRoleUser
		if m.Role == response_models.ChatRoleAssistant {
			role = utils.AIRoleAssistant
		}
		out = append(out, utils.AIMessage{Role: role, Text: m.Text})
	}
	return out
}
