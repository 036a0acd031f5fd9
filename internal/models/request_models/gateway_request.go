package request_models

type ItineraryRequest struct {
	Destination  string    `json:"destination" binding:"required"`
	Days         int       `json:"days" binding:"required,min=1"`
	Geo          *GeoPoint `json:"geo,omitempty"`
	RefreshCount int       `json:"refresh_count" binding:"min=0"`
}

func (r ItineraryRequest) TripQuery() TripQuery {
	return TripQuery{
		Destination:  r.Destination,
		Days:         r.Days,
		Mode:         ModeItinerary,
		Geo:          r.Geo,
		RefreshCount: r.RefreshCount,
	}
}

type TripPlanRequest struct {
	From       string     `json:"from" binding:"required"`
	To         string     `json:"to" binding:"required"`
	Adults     int        `json:"adults" binding:"min=0"`
	Children   int        `json:"children" binding:"min=0"`
	BudgetTier BudgetTier `json:"budget_tier"`
	Geo        *GeoPoint  `json:"geo,omitempty"`
}

type LodgingRequest struct {
	Kind       LodgingKind `json:"kind" binding:"omitempty,oneof=Hotel Homestay"`
	Location   string      `json:"location" binding:"required"`
	Adults     int         `json:"adults" binding:"min=0"`
	Children   int         `json:"children" binding:"min=0"`
	BudgetTier BudgetTier  `json:"budget_tier"`
	Geo        *GeoPoint   `json:"geo,omitempty"`
}

type NearbyLodgingRequest struct {
	Anchor     string     `json:"anchor" binding:"required"`
	BudgetTier BudgetTier `json:"budget_tier"`
}

type RouteRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type FlightRequest struct {
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
	Adults   int    `json:"adults" binding:"min=0"`
	Children int    `json:"children" binding:"min=0"`
}

// SuggestionPrefs drive both destination suggestions and the insight prompt.
type SuggestionPrefs struct {
	Budget        string `json:"budget"`
	Interests     string `json:"interests"`
	Companions    string `json:"companions"`
	StateOrRegion string `json:"state_or_region"`
}

type SelectDestinationRequest struct {
	Destination string `json:"destination" binding:"required"`
}

type ChatMessageRequest struct {
	Message string `json:"message"`
}
