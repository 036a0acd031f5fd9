package services

import (
	"fmt"
	"strings"

	"yatrojana/internal/models/request_models"
)

const chatSystemInstruction = "You are Yatro, a travel expert for Yatrojana. Help users plan budget-friendly, authentic trips in India. Be concise, friendly, and professional."

func sentence(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func locationContext(geo *request_models.GeoPoint) string {
	if geo == nil {
		return ""
	}
	return fmt.Sprintf("User location: %g, %g.", geo.Latitude, geo.Longitude)
}

func itineraryPrompt(destination string, days int, geo *request_models.GeoPoint, refresh int) string {
	variant := ""
	if refresh > 0 {
		variant = fmt.Sprintf("This is version %d. Suggest different unique activities than usual.", refresh+1)
	}
	return sentence(
		fmt.Sprintf("Create a detailed %d-day travel itinerary for %s.", days, destination),
		locationContext(geo),
		variant,
		"Format with clear daily headings. Include food recommendations.",
	)
}

func tripPlanPrompt(from, to string, adults, children int, tier request_models.BudgetTier, geo *request_models.GeoPoint) string {
	return sentence(
		fmt.Sprintf("Plan a comprehensive trip from %s to %s for %d adults and %d children with a %s budget.", from, to, adults, children, tier),
		"Include best transit options, stay recommendations, and a summary.",
		locationContext(geo),
	)
}

func lodgingPrompt(kind request_models.LodgingKind, location string, adults, children int, tier request_models.BudgetTier, geo *request_models.GeoPoint) string {
	if kind == request_models.LodgingHomestay {
		return sentence(
			fmt.Sprintf("Find unique local homestays and villas in %s for %d adults and %d children within %s budget.", location, adults, children, tier),
			"Include specific pricing and Pax capacity notes.",
			locationContext(geo),
		)
	}
	return sentence(
		fmt.Sprintf("Find top-rated %s hotels in %s for exactly %d adults and %d children.", tier, location, adults, children),
		"Include specific pricing and confirmed pax capacity in the response.",
		locationContext(geo),
	)
}

func nearbyLodgingPrompt(anchor string, tier request_models.BudgetTier) string {
	return fmt.Sprintf("Find hotels near %s in the %s range.", anchor, tier)
}

func trainsPrompt(from, to string) string {
	return sentence(
		fmt.Sprintf("Find popular trains between %s and %s.", from, to),
		"Provide real train names and numbers if possible. Include departure and arrival times and operating days.",
	)
}

func flightsPrompt(from, to string, adults, children int) string {
	return sentence(
		fmt.Sprintf("Check flight availability from %s to %s for %d adults and %d children.", from, to, adults, children),
		"Provide major airline names and typical price ranges.",
	)
}

func cabPrompt(from, to string) string {
	return sentence(
		fmt.Sprintf("Estimate cab travel details between %s and %s.", from, to),
		"Provide distance, estimated time, and costs for Mini, Prime, and SUV.",
	)
}

func detailsPrompt(destination string) string {
	return fmt.Sprintf("Provide comprehensive details for %q. Include a 2-sentence description, best months to visit, and 4 local attractions.", destination)
}

func trendingPrompt(month string, geo *request_models.GeoPoint) string {
	where := "The user is in India."
	if geo != nil {
		where = fmt.Sprintf("The user is currently near latitude %g, longitude %g.", geo.Latitude, geo.Longitude)
	}
	return sentence(
		fmt.Sprintf("Suggest 6 trending tourist cities in India specifically for the month of %s.", month),
		where,
		"Return only city names.",
	)
}

func suggestionsPrompt(prefs request_models.SuggestionPrefs) string {
	region := prefs.StateOrRegion
	if strings.TrimSpace(region) == "" {
		region = "Anywhere in India"
	}
	return fmt.Sprintf("Suggest 3 unique Indian destinations for a %s trip with a %s budget, focusing on %s. Region: %s.",
		prefs.Companions, prefs.Budget, prefs.Interests, region)
}

func insightPrompt(prefs request_models.SuggestionPrefs) string {
	region := prefs.StateOrRegion
	if strings.TrimSpace(region) == "" {
		region = "India"
	}
	return fmt.Sprintf("Explain how Yatro AI finds the best travel recommendations based on budget levels like %s and interests like %s, specifically for locations in %s.",
		prefs.Budget, prefs.Interests, region)
}
