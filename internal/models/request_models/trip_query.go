package request_models

import (
	"fmt"
	"strings"

	"yatrojana/pkg/utils"
)

type BudgetTier string

const (
	TierBudget   BudgetTier = "Budget"
	TierStandard BudgetTier = "Standard"
	TierPremium  BudgetTier = "Premium"
	TierLuxury   BudgetTier = "Luxury"
)

var BudgetTiers = []BudgetTier{TierBudget, TierStandard, TierPremium, TierLuxury}

func (t BudgetTier) Valid() bool {
	for _, tier := range BudgetTiers {
		if t == tier {
			return true
		}
	}
	return false
}

type ServiceMode string

const (
	ModeItinerary   ServiceMode = "Itinerary"
	ModeTripPlanner ServiceMode = "Trip Planner"
	ModeFlight      ServiceMode = "Flight"
	ModeTrain       ServiceMode = "Train"
	ModeCab         ServiceMode = "Cab"
	ModeHotel       ServiceMode = "Hotel"
	ModeHomestay    ServiceMode = "Homestay"
)

var ServiceModes = []ServiceMode{ModeItinerary, ModeTripPlanner, ModeFlight, ModeTrain, ModeCab, ModeHotel, ModeHomestay}

func (m ServiceMode) Valid() bool {
	for _, mode := range ServiceModes {
		if m == mode {
			return true
		}
	}
	return false
}

// Transit modes need an origin.
func (m ServiceMode) Transit() bool {
	return m == ModeFlight || m == ModeTrain || m == ModeCab
}

type LodgingKind string

const (
	LodgingHotel    LodgingKind = "Hotel"
	LodgingHomestay LodgingKind = "Homestay"
)

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (g GeoPoint) Valid() bool {
	return g.Latitude >= -90 && g.Latitude <= 90 && g.Longitude >= -180 && g.Longitude <= 180
}

// UsableGeo returns g when it is a real coordinate and nil otherwise.
func UsableGeo(g *GeoPoint) *GeoPoint {
	if g == nil || !g.Valid() {
		return nil
	}
	return g
}

const DefaultAdults = 2

type TripQuery struct {
	Origin       string      `json:"origin"`
	Destination  string      `json:"destination"`
	Days         int         `json:"days"`
	CheckIn      string      `json:"check_in,omitempty"`
	CheckOut     string      `json:"check_out,omitempty"`
	Adults       int         `json:"adults"`
	Children     int         `json:"children"`
	BudgetTier   BudgetTier  `json:"budget_tier"`
	Mode         ServiceMode `json:"mode"`
	Geo          *GeoPoint   `json:"geo,omitempty"`
	RefreshCount int         `json:"refresh_count"`
}

// Normalize fills defaults in place: trimmed strings, adults, tier, mode,
// days from the date range, and drops an unusable location.
func (q *TripQuery) Normalize() error {
	q.Origin = strings.TrimSpace(q.Origin)
	q.Destination = strings.TrimSpace(q.Destination)
	if q.Adults == 0 {
		q.Adults = DefaultAdults
	}
	if q.BudgetTier == "" {
		q.BudgetTier = TierStandard
	}
	if q.Mode == "" {
		q.Mode = ModeItinerary
	}
	if q.Days == 0 && q.CheckIn != "" && q.CheckOut != "" {
		days, err := utils.DaysBetween(q.CheckIn, q.CheckOut)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrInvalidTripQuery, err)
		}
		q.Days = days
	}
	q.Geo = UsableGeo(q.Geo)
	return nil
}

// Validate enforces the preconditions that must hold before any backend call.
func (q *TripQuery) Validate() error {
	if err := q.Normalize(); err != nil {
		return err
	}
	if q.Destination == "" {
		return utils.ErrMissingDestination
	}
	if !q.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", utils.ErrInvalidTripQuery, q.Mode)
	}
	if !q.BudgetTier.Valid() {
		return fmt.Errorf("%w: unknown budget tier %q", utils.ErrInvalidTripQuery, q.BudgetTier)
	}
	if q.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", utils.ErrInvalidTripQuery)
	}
	if q.Children < 0 {
		return fmt.Errorf("%w: children cannot be negative", utils.ErrInvalidTripQuery)
	}
	if q.RefreshCount < 0 {
		return fmt.Errorf("%w: refresh count cannot be negative", utils.ErrInvalidTripQuery)
	}
	if q.Mode == ModeItinerary && q.Days < 1 {
		return fmt.Errorf("%w: duration must be at least one day", utils.ErrInvalidTripQuery)
	}
	if q.Mode.Transit() && q.Origin == "" {
		return utils.ErrMissingOrigin
	}
	return nil
}

// FollowUps are the dependent queries a caller can opt into alongside the primary one.
type FollowUps struct {
	NearbyLodging      bool `json:"nearby_lodging"`
	DestinationDetails bool `json:"destination_details"`
}

type SearchRequest struct {
	Query     TripQuery `json:"query"`
	FollowUps FollowUps `json:"follow_ups"`
}
