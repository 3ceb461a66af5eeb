package geo

import (
	"sort"
	"strings"

	"github.com/dlukin/weather-lookup-service/internal/models"
)

// DefaultCity is used when a requested city is not in the table.
const DefaultCity = "moscow"

// cityCoordinates is built once and never mutated, so concurrent reads
// need no synchronization.
var cityCoordinates = map[string]models.Coordinates{
	"moscow":           {Lat: 55.7558, Lon: 37.6173},
	"london":           {Lat: 51.5074, Lon: -0.1278},
	"new york":         {Lat: 40.7128, Lon: -74.0060},
	"tokyo":            {Lat: 35.6762, Lon: 139.6503},
	"paris":            {Lat: 48.8566, Lon: 2.3522},
	"berlin":           {Lat: 52.5200, Lon: 13.4050},
	"kyiv":             {Lat: 50.4501, Lon: 30.5234},
	"saint petersburg": {Lat: 59.9343, Lon: 30.3351},
	"sochi":            {Lat: 43.5855, Lon: 39.7231},
	"kazan":            {Lat: 55.7961, Lon: 49.1064},
}

// Resolve maps a free-text city name to coordinates. Lookup is
// case-insensitive and ignores surrounding whitespace. Unknown cities fall
// back to the default city's coordinates; Resolve never fails.
func Resolve(city string) models.Coordinates {
	key := strings.ToLower(strings.TrimSpace(city))
	if coords, ok := cityCoordinates[key]; ok {
		return coords
	}
	return cityCoordinates[DefaultCity]
}

// Cities returns the known city keys in sorted order.
func Cities() []string {
	cities := make([]string, 0, len(cityCoordinates))
	for name := range cityCoordinates {
		cities = append(cities, name)
	}
	sort.Strings(cities)
	return cities
}
