package pricing

import (
	"fmt"

	"courierhub/internal/pkg/errs"
)

// Zone is the pricing region classification derived from an origin and
// destination pincode pair. It is computed, never stored on the order.
type Zone int

const (
	// ZoneUnknown represents an invalid or undefined zone.
	ZoneUnknown Zone = iota

	// WithinCity covers shipments where both pincodes belong to one city.
	WithinCity

	// WithinZone covers shipments staying inside one state.
	WithinZone

	// WithinMetro covers shipments between two metro cities.
	WithinMetro

	// RestOfIndia covers everything not matched by a more specific zone.
	RestOfIndia

	// NorthEast covers shipments touching the north-east region, which
	// couriers price separately.
	NorthEast
)

// Zones lists every valid zone. A pricing profile must carry a rate table for
// each of these to be usable.
func Zones() []Zone {
	return []Zone{WithinCity, WithinZone, WithinMetro, RestOfIndia, NorthEast}
}

// String returns the zone's name.
func (z Zone) String() string {
	switch z {
	case WithinCity:
		return "within-city"
	case WithinZone:
		return "within-zone"
	case WithinMetro:
		return "within-metro"
	case RestOfIndia:
		return "rest-of-india"
	case NorthEast:
		return "north-east"
	default:
		return "unknown"
	}
}

// Validate checks that the zone is one of the defined values.
func (z Zone) Validate() error {
	if z < WithinCity || z > NorthEast {
		return errs.NewValueIsInvalidErrorWithCause("zone",
			fmt.Errorf("%d is not a valid zone", int(z)))
	}
	return nil
}
