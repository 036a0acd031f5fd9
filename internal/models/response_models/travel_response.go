package response_models

// Attribution is a source the backend grounded an answer in, in backend order.
type Attribution struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
	Kind  string `json:"kind"`
}

type TripPlanResult struct {
	FullPlan  string        `json:"full_plan"`
	Grounding []Attribution `json:"grounding"`
}

type Lodging struct {
	Name         string `json:"name"`
	LocationNote string `json:"location_note"`
	PriceNote    string `json:"price_note"`
	CapacityNote string `json:"capacity_note,omitempty"`
}

type LodgingResult struct {
	Hotels    []Lodging     `json:"hotels"`
	Grounding []Attribution `json:"grounding"`
}

type TrainOption struct {
	Name          string `json:"train_name"`
	Number        string `json:"train_number"`
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	FromStation   string `json:"from_station"`
	ToStation     string `json:"to_station"`
	OperatingDays string `json:"operating_days"`
}

type TrainResult struct {
	Trains       []TrainOption `json:"trains"`
	Alternatives *string       `json:"alternatives"`
	Grounding    []Attribution `json:"grounding"`
}

type FlightOption struct {
	Airline    string `json:"airline"`
	TotalPrice string `json:"total_price"`
}

type FlightResult struct {
	Flights   []FlightOption `json:"flights"`
	Grounding []Attribution  `json:"grounding"`
}

type FareEstimate struct {
	VehicleClass string `json:"type"`
	Cost         string `json:"cost"`
}

type BookingLink struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type CabResult struct {
	Distance      string         `json:"distance"`
	EstimatedTime string         `json:"estimated_time"`
	Estimates     []FareEstimate `json:"estimates"`
	Grounding     []Attribution  `json:"grounding"`
	BookingLinks  []BookingLink  `json:"booking_links,omitempty"`
}

type DestinationDetails struct {
	Description     string   `json:"description"`
	BestTimeToVisit string   `json:"best_time_to_visit"`
	Attractions     []string `json:"attractions"`
}

type DestinationSuggestion struct {
	Name   string `json:"name"`
	Vibe   string `json:"vibe"`
	Reason string `json:"reason"`
}

type TrendingResult struct {
	Month  string   `json:"month"`
	Cities []string `json:"cities"`
}

// ItineraryChunk is one streamed piece of itinerary text. Grounding is the
// latest list the backend sent, repeated until it changes.
type ItineraryChunk struct {
	Delta     string        `json:"delta"`
	Grounding []Attribution `json:"grounding"`
}

// SearchResult carries the primary result for the query's mode plus any follow-ups.
type SearchResult struct {
	Mode          string              `json:"mode"`
	TripPlan      *TripPlanResult     `json:"trip_plan,omitempty"`
	Lodging       *LodgingResult      `json:"lodging,omitempty"`
	Trains        *TrainResult        `json:"trains,omitempty"`
	Flights       *FlightResult       `json:"flights,omitempty"`
	Cab           *CabResult          `json:"cab,omitempty"`
	NearbyLodging *LodgingResult      `json:"nearby_lodging,omitempty"`
	Details       *DestinationDetails `json:"destination_details,omitempty"`
}
