package controllers

import (
	"io"
	"net/http"

	"yatrojana/internal/models/request_models"
	"yatrojana/internal/services"
	"yatrojana/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TravelController struct {
	searchService services.SearchServiceInterface
	gateway       services.TravelGatewayInterface
}

func NewTravelController(searchService services.SearchServiceInterface, gateway services.TravelGatewayInterface) *TravelController {
	return &TravelController{
		searchService: searchService,
		gateway:       gateway,
	}
}

// party applies the booking form defaults for direct gateway calls.
func party(adults int, tier request_models.BudgetTier) (int, request_models.BudgetTier, bool) {
	if adults == 0 {
		adults = request_models.DefaultAdults
	}
	if tier == "" {
		tier = request_models.TierStandard
	}
	return adults, tier, tier.Valid()
}

// Search godoc
// @Summary Run the booking form query for its mode
// @Tags search
// @Accept json
// @Produce json
// @Param request body request_models.SearchRequest true "Trip query and follow-ups"
// @Success 200 {object} utils.APIResponse
// @Router /api/search [post]
func (t *TravelController) Search(c *gin.Context) {
	var req request_models.SearchRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := t.searchService.Search(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Search completed")
}

// StreamItinerary godoc
// @Summary Stream an itinerary as server-sent events
// @Tags itinerary
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.ItineraryRequest true "Destination and duration"
// @Router /api/itinerary/stream [post]
func (t *TravelController) StreamItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	stream, err := t.searchService.StreamItinerary(c.Request.Context(), req.TripQuery())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer stream.Close()

	prepareSSE(c)
	c.Stream(func(w io.Writer) bool {
		chunk, ok := stream.Next()
		if !ok {
			c.SSEvent("done", gin.H{"degraded": stream.Degraded(), "grounding": stream.Grounding()})
			return false
		}
		c.SSEvent("chunk", chunk)
		return true
	})
}

func (t *TravelController) TripPlan(c *gin.Context) {
	var req request_models.TripPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	adults, tier, ok := party(req.Adults, req.BudgetTier)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Unknown budget tier")
		return
	}

	plan := t.gateway.FetchTripPlan(c.Request.Context(), req.From, req.To, adults, req.Children, tier, req.Geo)
	utils.RespondSuccess(c, plan, "Trip plan ready")
}

func (t *TravelController) Lodging(c *gin.Context) {
	var req request_models.LodgingRequest
	if !bindJSON(c, &req) {
		return
	}
	adults, tier, ok := party(req.Adults, req.BudgetTier)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Unknown budget tier")
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = request_models.LodgingHotel
	}

	result := t.gateway.FetchLodging(c.Request.Context(), kind, req.Location, adults, req.Children, tier, req.Geo)
	utils.RespondSuccess(c, result, "Lodging fetched")
}

func (t *TravelController) NearbyLodging(c *gin.Context) {
	var req request_models.NearbyLodgingRequest
	if !bindJSON(c, &req) {
		return
	}
	_, tier, ok := party(0, req.BudgetTier)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Unknown budget tier")
		return
	}

	result := t.gateway.FetchNearbyLodging(c.Request.Context(), req.Anchor, tier)
	utils.RespondSuccess(c, result, "Nearby lodging fetched")
}

func (t *TravelController) Trains(c *gin.Context) {
	var req request_models.RouteRequest
	if !bindJSON(c, &req) {
		return
	}
	utils.RespondSuccess(c, t.gateway.FetchTrains(c.Request.Context(), req.From, req.To), "Trains fetched")
}

func (t *TravelController) Flights(c *gin.Context) {
	var req request_models.FlightRequest
	if !bindJSON(c, &req) {
		return
	}
	adults, _, _ := party(req.Adults, "")
	utils.RespondSuccess(c, t.gateway.FetchFlights(c.Request.Context(), req.From, req.To, adults, req.Children), "Flights fetched")
}

func (t *TravelController) Cabs(c *gin.Context) {
	var req request_models.RouteRequest
	if !bindJSON(c, &req) {
		return
	}
	cab := t.gateway.FetchCabEstimate(c.Request.Context(), req.From, req.To)
	cab.BookingLinks = services.CabBookingLinks(req.From, req.To)
	utils.RespondSuccess(c, cab, "Cab estimate ready")
}
