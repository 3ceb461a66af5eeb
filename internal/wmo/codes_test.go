package wmo

import "testing"

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"clear sky", 0, "clear sky"},
		{"overcast", 3, "overcast"},
		{"thunderstorm with heavy hail", 99, "thunderstorm with heavy hail"},
		{"unknown positive", 42, UnknownLabel},
		{"unknown negative", -1, UnknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.code); got != tt.want {
				t.Errorf("Describe(%d) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestCodes_CoversWMOTable(t *testing.T) {
	table := Codes()
	if len(table) != 28 {
		t.Errorf("Codes() has %d entries, want 28", len(table))
	}
	for code, desc := range table {
		if desc == "" {
			t.Errorf("code %d has empty description", code)
		}
		if got := Describe(code); got != desc {
			t.Errorf("Describe(%d) = %q, want table entry %q", code, got, desc)
		}
	}
}
