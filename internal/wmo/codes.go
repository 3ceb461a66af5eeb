// Package wmo decodes WMO weather interpretation codes as published by
// Open-Meteo (https://open-meteo.com/en/docs).
package wmo

// UnknownLabel is returned for codes not present in the table.
const UnknownLabel = "Unknown"

var codes = map[int]string{
	0:  "clear sky",
	1:  "mainly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	56: "light freezing drizzle",
	57: "dense freezing drizzle",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	66: "light freezing rain",
	67: "heavy freezing rain",
	71: "slight snowfall",
	73: "moderate snowfall",
	75: "heavy snowfall",
	77: "snow grains",
	80: "slight rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	85: "slight snow showers",
	86: "heavy snow showers",
	95: "thunderstorm",
	96: "thunderstorm with slight hail",
	99: "thunderstorm with heavy hail",
}

// Describe returns the human-readable label for a weather code, or
// UnknownLabel for unrecognized codes.
func Describe(code int) string {
	if desc, ok := codes[code]; ok {
		return desc
	}
	return UnknownLabel
}

// Codes returns the full code table. The map is package state shared by all
// callers; treat it as read-only.
func Codes() map[int]string {
	return codes
}
