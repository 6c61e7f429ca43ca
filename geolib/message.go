package geolib

import (
	"fmt"
	"strings"
	"unicode"
)

// NeighborhoodPrefix is a word which precedes names of neighborhoods.
const NeighborhoodPrefix = "حي"

const distanceMessageTemplate = "المسافة من موقعك الحالي إلى %s هي %.2f كيلومتر."

// StripNeighborhoodPrefix removes a leading neighborhood word from the
// name.
func StripNeighborhoodPrefix(name string) string {
	name = strings.TrimSpace(name)

	if !strings.HasPrefix(name, NeighborhoodPrefix) {
		return name
	}

	rest := name[len(NeighborhoodPrefix):]
	if rest == "" {
		return ""
	}

	// something like حيان is a name, not a prefix
	if trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace); trimmed != rest {
		return trimmed
	}

	return name
}

// NormalizeNeighborhoodName returns a name with exactly one leading
// neighborhood word.
func NormalizeNeighborhoodName(name string) string {
	stripped := StripNeighborhoodPrefix(name)
	if stripped == "" {
		return NeighborhoodPrefix
	}

	return NeighborhoodPrefix + " " + stripped
}

// FormatDistanceMessage renders a human-readable sentence about a
// distance to the neighborhood. An empty string is returned if distance
// is unknown.
func FormatDistanceMessage(name string, distance *float64) string {
	if distance == nil {
		return ""
	}

	return fmt.Sprintf(distanceMessageTemplate, NormalizeNeighborhoodName(name), *distance)
}
