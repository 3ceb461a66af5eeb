package geo

import "testing"

func TestResolve_KnownCities(t *testing.T) {
	tests := []struct {
		name    string
		city    string
		wantLat float64
		wantLon float64
	}{
		{"exact key", "london", 51.5074, -0.1278},
		{"mixed case", "London", 51.5074, -0.1278},
		{"upper case", "TOKYO", 35.6762, 139.6503},
		{"surrounding whitespace", "  paris  ", 48.8566, 2.3522},
		{"multi-word key", "New York", 40.7128, -74.0060},
		{"whitespace and case", " BERLIN\t", 52.5200, 13.4050},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.city)
			if got.Lat != tt.wantLat || got.Lon != tt.wantLon {
				t.Errorf("Resolve(%q) = (%v, %v), want (%v, %v)", tt.city, got.Lat, got.Lon, tt.wantLat, tt.wantLon)
			}
		})
	}
}

func TestResolve_AllTableEntriesRoundTrip(t *testing.T) {
	for _, city := range Cities() {
		want := cityCoordinates[city]
		got := Resolve(city)
		if got != want {
			t.Errorf("Resolve(%q) = %+v, want stored pair %+v", city, got, want)
		}
	}
}

func TestResolve_UnknownCityFallsBackToDefault(t *testing.T) {
	defaultCoords := cityCoordinates[DefaultCity]

	tests := []string{"atlantis", "", "   ", "m0sc0w", "london, uk"}
	for _, city := range tests {
		got := Resolve(city)
		if got != defaultCoords {
			t.Errorf("Resolve(%q) = %+v, want default %+v", city, got, defaultCoords)
		}
	}
}

func TestCities_SortedAndComplete(t *testing.T) {
	cities := Cities()
	if len(cities) != len(cityCoordinates) {
		t.Fatalf("Cities() returned %d entries, want %d", len(cities), len(cityCoordinates))
	}
	for i := 1; i < len(cities); i++ {
		if cities[i-1] >= cities[i] {
			t.Errorf("Cities() not sorted: %q before %q", cities[i-1], cities[i])
		}
	}
	for _, city := range cities {
		if _, ok := cityCoordinates[city]; !ok {
			t.Errorf("Cities() contains %q which is not in the table", city)
		}
	}
}
