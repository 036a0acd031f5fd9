package request_models

import (
	"testing"

	"yatrojana/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripQueryDefaults(t *testing.T) {
	q := TripQuery{Destination: "  Goa ", Days: 4, Geo: &GeoPoint{Latitude: 95, Longitude: 0}}
	require.NoError(t, q.Validate())

	assert.Equal(t, "Goa", q.Destination)
	assert.Equal(t, DefaultAdults, q.Adults)
	assert.Equal(t, TierStandard, q.BudgetTier)
	assert.Equal(t, ModeItinerary, q.Mode)
	assert.Nil(t, q.Geo)
}

func TestTripQueryDaysFromDates(t *testing.T) {
	q := TripQuery{Destination: "Goa", CheckIn: "2026-12-20", CheckOut: "2026-12-27"}
	require.NoError(t, q.Validate())
	assert.Equal(t, 7, q.Days)

	bad := TripQuery{Destination: "Goa", CheckIn: "soon", CheckOut: "2026-12-27"}
	assert.ErrorIs(t, bad.Validate(), utils.ErrInvalidTripQuery)
}

func TestTripQueryValidate(t *testing.T) {
	tests := []struct {
		name  string
		query TripQuery
		err   error
	}{
		{"missing destination", TripQuery{Days: 2}, utils.ErrMissingDestination},
		{"zero days itinerary", TripQuery{Destination: "Goa"}, utils.ErrInvalidTripQuery},
		{"negative adults", TripQuery{Destination: "Goa", Days: 2, Adults: -1}, utils.ErrInvalidTripQuery},
		{"negative children", TripQuery{Destination: "Goa", Days: 2, Children: -1}, utils.ErrInvalidTripQuery},
		{"unknown tier", TripQuery{Destination: "Goa", Days: 2, BudgetTier: "Cheap"}, utils.ErrInvalidTripQuery},
		{"cab without origin", TripQuery{Destination: "Goa", Mode: ModeCab}, utils.ErrMissingOrigin},
		{"flight without origin", TripQuery{Destination: "Goa", Mode: ModeFlight}, utils.ErrMissingOrigin},
		{"hotel needs no days", TripQuery{Destination: "Goa", Mode: ModeHotel}, nil},
		{"train ok", TripQuery{Origin: "Pune", Destination: "Goa", Mode: ModeTrain}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUsableGeo(t *testing.T) {
	assert.Nil(t, UsableGeo(nil))
	assert.Nil(t, UsableGeo(&GeoPoint{Latitude: 0, Longitude: 181}))
	g := &GeoPoint{Latitude: 15.5, Longitude: 73.8}
	assert.Same(t, g, UsableGeo(g))
}

func TestItineraryRequestTripQuery(t *testing.T) {
	geo := &GeoPoint{Latitude: 15.5, Longitude: 73.8}
	q := ItineraryRequest{Destination: "Goa", Days: 4, Geo: geo, RefreshCount: 1}.TripQuery()

	require.NoError(t, q.Validate())
	assert.Equal(t, ModeItinerary, q.Mode)
	assert.Equal(t, 4, q.Days)
	assert.Equal(t, 1, q.RefreshCount)
	assert.Equal(t, geo, q.Geo)
}
