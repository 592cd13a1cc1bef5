package model

import "strings"

// headquarterLocations maps a headquarters to the cities its
// representatives cover.
var headquarterLocations = map[string][]string{
	"mumbai":    {"Mumbai", "Thane", "Navi Mumbai", "Kalyan", "Vasai"},
	"pune":      {"Pune", "Pimpri-Chinchwad", "Satara", "Baramati"},
	"delhi":     {"New Delhi", "Gurugram", "Noida", "Faridabad", "Ghaziabad"},
	"bengaluru": {"Bengaluru", "Mysuru", "Tumakuru", "Hosur"},
	"kolkata":   {"Kolkata", "Howrah", "Durgapur", "Siliguri"},
}

// LocationsFor returns the city set of a headquarters, or nil when the
// headquarters is unknown (any city is accepted then).
func LocationsFor(headquarters string) []string {
	cities := headquarterLocations[strings.ToLower(strings.TrimSpace(headquarters))]
	if cities == nil {
		return nil
	}
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}
