package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVenue_Defaults(t *testing.T) {
	v := NormalizeVenue(RawVenue{ID: " v1 ", Name: "  The Sparrow "})

	assert.Equal(t, "v1", v.ID)
	assert.Equal(t, "The Sparrow", v.Name)
	assert.Equal(t, CategoryOther, v.Category)
	assert.Equal(t, 0.0, v.Rating)
	assert.Equal(t, 0, v.ReviewCount)
	assert.Nil(t, v.Coordinate)
	assert.True(t, v.Active)
}

func TestNormalizeVenue_ClampsRatingAndReviews(t *testing.T) {
	cases := []struct {
		name   string
		rating float64
		want   float64
	}{
		{"above range", 7.5, 5},
		{"below range", -1, 0},
		{"in range", 4.2, 4.2},
		{"nan", math.NaN(), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := NormalizeVenue(RawVenue{ID: "v", Rating: &tc.rating})
			assert.Equal(t, tc.want, v.Rating)
		})
	}

	negative := -4
	v := NormalizeVenue(RawVenue{ID: "v", ReviewCount: &negative})
	assert.Equal(t, 0, v.ReviewCount)
}

func TestNormalizeVenue_Coordinate(t *testing.T) {
	lat, lon := 51.5074, -0.1278
	v := NormalizeVenue(RawVenue{ID: "v", Lat: &lat, Lon: &lon})
	require.NotNil(t, v.Coordinate)
	assert.Equal(t, Coordinate{Lat: lat, Lon: lon}, *v.Coordinate)

	// Missing one component drops the pair.
	v = NormalizeVenue(RawVenue{ID: "v", Lat: &lat})
	assert.Nil(t, v.Coordinate)

	// Out-of-range pairs are treated as no coordinate at all.
	badLat := 123.0
	v = NormalizeVenue(RawVenue{ID: "v", Lat: &badLat, Lon: &lon})
	assert.Nil(t, v.Coordinate)

	inf := math.Inf(1)
	v = NormalizeVenue(RawVenue{ID: "v", Lat: &lat, Lon: &inf})
	assert.Nil(t, v.Coordinate)
}

func TestNormalizeVenue_Features(t *testing.T) {
	v := NormalizeVenue(RawVenue{
		ID:       "v",
		Features: []string{" All-Gender Facilities ", "", "  "},
	})
	assert.Equal(t, []string{"All-Gender Facilities"}, v.Features)
}

func TestNormalizeVenue_ActiveFlag(t *testing.T) {
	inactive := false
	v := NormalizeVenue(RawVenue{ID: "v", Active: &inactive})
	assert.False(t, v.Active)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategoryPub, NormalizeCategory("pub"))
	assert.Equal(t, CategoryPub, NormalizeCategory(" Pub "))
	assert.Equal(t, CategoryRestaurant, NormalizeCategory("RESTAURANT"))
	assert.Equal(t, CategoryShop, NormalizeCategory("shop"))
	assert.Equal(t, CategoryGym, NormalizeCategory("gym"))
	assert.Equal(t, CategoryOther, NormalizeCategory("nightclub"))
	assert.Equal(t, CategoryOther, NormalizeCategory(""))
}
