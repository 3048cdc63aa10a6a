package refdata

import "testing"

func TestCountriesFilteredToAllowedSet(t *testing.T) {
	countries := Countries()
	if len(countries) != 10 {
		t.Fatalf("countries = %d, want 10", len(countries))
	}
	for _, c := range countries {
		if !IsAllowed(c.Code) {
			t.Fatalf("unsupported country %q leaked through the filter", c.Code)
		}
	}
	// The embedded dataset carries more countries than the service supports;
	// those must never reach the picker.
	for _, c := range countries {
		switch c.Code {
		case "FR", "JP", "DE":
			t.Fatalf("country %q should be filtered out", c.Code)
		}
	}
}

func TestRegionsDeduplicatesFirstWins(t *testing.T) {
	regions := Regions("TH")
	if len(regions) == 0 {
		t.Fatal("no regions for TH")
	}
	seen := map[string]int{}
	for _, r := range regions {
		seen[r]++
	}
	if seen["Chon Buri"] != 1 {
		t.Fatalf("Chon Buri appears %d times, want 1", seen["Chon Buri"])
	}
	for name, n := range seen {
		if n > 1 {
			t.Fatalf("region %q appears %d times", name, n)
		}
	}
}

func TestRegionsEmptyWithoutCountry(t *testing.T) {
	if got := Regions(""); got != nil {
		t.Fatalf("regions for empty code = %v", got)
	}
	if got := Regions("ZZ"); got != nil {
		t.Fatalf("regions for unknown code = %v", got)
	}
}

func TestRegionsReturnsCopies(t *testing.T) {
	a := Regions("US")
	if len(a) == 0 {
		t.Fatal("no regions for US")
	}
	a[0] = "mutated"
	b := Regions("US")
	if b[0] == "mutated" {
		t.Fatal("caller mutation leaked into the cache")
	}
}

func TestCountryNameFallsBackToCode(t *testing.T) {
	if got := CountryName("US"); got != "United States" {
		t.Fatalf("name = %q", got)
	}
	if got := CountryName("ZZ"); got != "ZZ" {
		t.Fatalf("fallback = %q", got)
	}
	if got := CountryName(""); got != "" {
		t.Fatalf("empty code = %q", got)
	}
}

func TestHasRegion(t *testing.T) {
	if !HasRegion("US", "California") {
		t.Fatal("California missing from US")
	}
	if HasRegion("US", "california") {
		t.Fatal("matching must be case-sensitive")
	}
	if HasRegion("SG", "California") {
		t.Fatal("cross-country region matched")
	}
}

func TestAllowedCountryCodesIsStable(t *testing.T) {
	codes := AllowedCountryCodes()
	if len(codes) != 10 {
		t.Fatalf("codes = %d, want 10", len(codes))
	}
	codes[0] = "XX"
	if AllowedCountryCodes()[0] == "XX" {
		t.Fatal("caller mutation leaked into the allow-list")
	}
}
