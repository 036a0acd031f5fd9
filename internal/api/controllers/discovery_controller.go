package controllers

import (
	"strconv"

	"yatrojana/internal/models/request_models"
	"yatrojana/internal/services"
	"yatrojana/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DiscoveryController struct {
	discoveryService services.DiscoveryServiceInterface
}

func NewDiscoveryController(discoveryService services.DiscoveryServiceInterface) *DiscoveryController {
	return &DiscoveryController{
		discoveryService: discoveryService,
	}
}

// geoFromQuery reads lat/lng query params; anything unparsable means no location.
func geoFromQuery(c *gin.Context) *request_models.GeoPoint {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		return nil
	}
	return request_models.UsableGeo(&request_models.GeoPoint{Latitude: lat, Longitude: lng})
}

// Trending godoc
// @Summary Trending cities for a month
// @Tags discovery
// @Produce json
// @Param month query string false "Month name, defaults to the current month in India"
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Success 200 {object} utils.APIResponse
// @Router /api/discovery/trending [get]
func (d *DiscoveryController) Trending(c *gin.Context) {
	result := d.discoveryService.Trending(c.Request.Context(), c.Query("month"), geoFromQuery(c))
	utils.RespondSuccess(c, result, "")
}

func (d *DiscoveryController) Suggestions(c *gin.Context) {
	var prefs request_models.SuggestionPrefs
	if !bindJSON(c, &prefs) {
		return
	}
	utils.RespondSuccess(c, d.discoveryService.Suggestions(c.Request.Context(), prefs), "")
}

func (d *DiscoveryController) DestinationDetails(c *gin.Context) {
	details, err := d.discoveryService.DestinationDetails(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, details, "")
}

func (d *DiscoveryController) SelectDestination(c *gin.Context) {
	var req request_models.SelectDestinationRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := d.discoveryService.SelectDestination(c.Request.Context(), req.Destination); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"destination": req.Destination}, "Destination selected")
}

func (d *DiscoveryController) Insight(c *gin.Context) {
	var prefs request_models.SuggestionPrefs
	if !bindJSON(c, &prefs) {
		return
	}
	prompt := d.discoveryService.RequestInsight(c.Request.Context(), prefs)
	utils.RespondSuccess(c, gin.H{"prompt": prompt}, "Insight requested")
}
