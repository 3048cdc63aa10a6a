// Package refdata exposes the static country and region reference lists used
// to populate location pickers. The exhaustive dataset is embedded at build
// time and filtered down to the closed set of supported countries; no network
// calls are ever made.
package refdata

import (
	"embed"
	"encoding/json"
	"sync"
)

//go:embed data/countries.json
var dataFS embed.FS

// Country is one entry of the supported-country picker.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// allowedCodes is the closed set of countries the service supports.
var allowedCodes = []string{"AE", "SA", "TH", "US", "SG", "GB", "MY", "ID", "VN", "HK"}

type rawCountry struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Regions []string `json:"regions"`
}

type dataset struct {
	byCode map[string]rawCountry
	order  []string // dataset order of allowed codes
}

var (
	loadOnce sync.Once
	loaded   dataset

	regionMu    sync.Mutex
	regionCache = map[string][]string{} // dedup result memoized per country code
)

func data() dataset {
	loadOnce.Do(func() {
		b, err := dataFS.ReadFile("data/countries.json")
		if err != nil {
			// Embedded asset; absence is a build defect.
			panic("refdata: embedded dataset missing: " + err.Error())
		}
		var doc struct {
			Countries []rawCountry `json:"countries"`
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			panic("refdata: embedded dataset malformed: " + err.Error())
		}
		ds := dataset{byCode: make(map[string]rawCountry, len(doc.Countries))}
		for _, c := range doc.Countries {
			ds.byCode[c.Code] = c
		}
		for _, code := range allowedCodes {
			if _, ok := ds.byCode[code]; ok {
				ds.order = append(ds.order, code)
			}
		}
		loaded = ds
	})
	return loaded
}

// AllowedCountryCodes returns the supported ISO codes in picker order.
func AllowedCountryCodes() []string {
	out := make([]string, len(allowedCodes))
	copy(out, allowedCodes)
	return out
}

// IsAllowed reports whether code is in the supported-country set.
func IsAllowed(code string) bool {
	for _, c := range allowedCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Countries returns the dataset filtered down to the supported set.
func Countries() []Country {
	ds := data()
	out := make([]Country, 0, len(ds.order))
	for _, code := range ds.order {
		c := ds.byCode[code]
		out = append(out, Country{Code: c.Code, Name: c.Name})
	}
	return out
}

// CountryName resolves a code to its display name. Unknown codes fall back to
// the raw code so a label can always be rendered.
func CountryName(code string) string {
	if code == "" {
		return ""
	}
	if c, ok := data().byCode[code]; ok {
		return c.Name
	}
	return code
}

// Regions returns the region list for the given country with duplicate names
// removed; the first occurrence wins, matching is case-sensitive. The result
// is empty when no country is selected or the code is unknown. Computed once
// per code and memoized.
func Regions(code string) []string {
	if code == "" {
		return nil
	}

	regionMu.Lock()
	defer regionMu.Unlock()
	if cached, ok := regionCache[code]; ok {
		return append([]string(nil), cached...)
	}

	c, ok := data().byCode[code]
	if !ok {
		regionCache[code] = nil
		return nil
	}
	seen := make(map[string]struct{}, len(c.Regions))
	out := make([]string, 0, len(c.Regions))
	for _, r := range c.Regions {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	regionCache[code] = out
	return append([]string(nil), out...)
}

// HasRegion reports whether name belongs to the region set of code.
func HasRegion(code, name string) bool {
	for _, r := range Regions(code) {
		if r == name {
			return true
		}
	}
	return false
}
