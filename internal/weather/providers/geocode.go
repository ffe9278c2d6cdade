package providers

import (
	"errors"
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/onecall-weather/internal/weather"
)

var errNoGeocoderKey = errors.New("geocoder api key is not configured")

// ResolveCoordinates fills in Lat/Lon for a city/country location using the
// Google geocoding API.
func ResolveCoordinates(loc weather.Location, apiKey string) (weather.Location, error) {
	if apiKey == "" {
		return loc, errNoGeocoderKey
	}
	if loc.City == "" {
		return loc, fmt.Errorf("geocoding requires a city")
	}

	geocoder.ApiKey = apiKey
	res, err := geocoder.Geocoding(geocoder.Address{
		City:    loc.City,
		Country: loc.Country,
	})
	if err != nil {
		return loc, fmt.Errorf("geocode %s,%s: %w", loc.City, loc.Country, err)
	}

	loc.Lat = res.Latitude
	loc.Lon = res.Longitude
	return loc, nil
}
