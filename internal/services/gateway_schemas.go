package services

import "yatrojana/pkg/utils"

type operation string

const (
	opItinerary     operation = "itinerary"
	opTripPlan      operation = "trip_plan"
	opHotels        operation = "hotels"
	opHomestays     operation = "homestays"
	opNearbyLodging operation = "nearby_lodging"
	opTrains        operation = "trains"
	opFlights       operation = "flights"
	opCab           operation = "cab"
	opDetails       operation = "destination_details"
	opTrending      operation = "trending_cities"
	opSuggestions   operation = "destination_suggestions"
	opChat          operation = "chat"
)

func lodgingSchema(capacityHint string, capacityRequired bool) *utils.Schema {
	required := []string{"name", "location_note", "price_note"}
	if capacityRequired {
		required = append(required, "capacity_note")
	}
	item := utils.ObjectSchema(map[string]*utils.Schema{
		"name":          utils.StringSchema(""),
		"location_note": utils.StringSchema(""),
		"price_note":    utils.StringSchema("Current price per night with currency"),
		"capacity_note": utils.StringSchema(capacityHint),
	}, required...)
	return utils.ObjectSchema(map[string]*utils.Schema{
		"hotels": utils.ArraySchema(item),
	}, "hotels")
}

// schemaTable holds the response shape each structured operation asks for.
// Operations missing from the table return free text.
var schemaTable = map[operation]*utils.Schema{
	opHotels:        lodgingSchema("e.g. Accommodates 2 Adults, 1 Child", true),
	opHomestays:     lodgingSchema("e.g. Accommodates 3 Adults, 2 Children", true),
	opNearbyLodging: lodgingSchema("Pax capacity", false),

	opTrains: utils.ObjectSchema(map[string]*utils.Schema{
		"trains": utils.ArraySchema(utils.ObjectSchema(map[string]*utils.Schema{
			"train_name":     utils.StringSchema(""),
			"train_number":   utils.StringSchema(""),
			"departure":      utils.StringSchema("Time of departure e.g. 06:15 AM"),
			"arrival":        utils.StringSchema("Time of arrival e.g. 11:30 PM"),
			"from_station":   utils.StringSchema(""),
			"to_station":     utils.StringSchema(""),
			"operating_days": utils.StringSchema("e.g. Daily, Mon-Fri, or specific days"),
		}, "train_name", "train_number", "departure", "arrival", "from_station", "to_station", "operating_days")),
		"alternatives": utils.StringSchema(""),
	}, "trains"),

	opFlights: utils.ObjectSchema(map[string]*utils.Schema{
		"flights": utils.ArraySchema(utils.ObjectSchema(map[string]*utils.Schema{
			"airline":     utils.StringSchema(""),
			"total_price": utils.StringSchema(""),
		}, "airline", "total_price")),
	}, "flights"),

	opCab: utils.ObjectSchema(map[string]*utils.Schema{
		"distance":       utils.StringSchema(""),
		"estimated_time": utils.StringSchema(""),
		"estimates": utils.ArraySchema(utils.ObjectSchema(map[string]*utils.Schema{
			"type": utils.StringSchema("Vehicle class e.g. Mini, Prime, SUV"),
			"cost": utils.StringSchema(""),
		}, "type", "cost")),
	}, "distance", "estimated_time", "estimates"),

	opDetails: utils.ObjectSchema(map[string]*utils.Schema{
		"description":        utils.StringSchema(""),
		"best_time_to_visit": utils.StringSchema(""),
		"attractions":        utils.ArraySchema(utils.StringSchema("")),
	}, "description", "best_time_to_visit", "attractions"),

	opTrending: utils.ArraySchema(utils.StringSchema("")),

	opSuggestions: utils.ArraySchema(utils.ObjectSchema(map[string]*utils.Schema{
		"name":   utils.StringSchema(""),
		"vibe":   utils.StringSchema(""),
		"reason": utils.StringSchema(""),
	}, "name", "vibe", "reason")),
}

// searchOps ask the backend for grounded answers.
var searchOps = map[operation]bool{
	opItinerary:     true,
	opTripPlan:      true,
	opHotels:        true,
	opHomestays:     true,
	opNearbyLodging: true,
	opTrains:        true,
	opFlights:       true,
	opCab:           true,
}
