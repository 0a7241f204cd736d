// Package pricing implements the checkout pricing engine: shipping tier
// resolution, discount composition and loyalty point settlement. All
// functions are pure; amounts are integer CLP.
package pricing

import "strings"

// Shipping tier constants in CLP. Business constants, not computed.
const (
	ShippingCapital int64 = 5000
	ShippingDefault int64 = 7500
	ShippingExtreme int64 = 10000

	// FreeShippingThreshold is the merchandise subtotal at which
	// shipping becomes free regardless of region.
	FreeShippingThreshold int64 = 100000
)

// capitalRegions and extremeRegions are matched case-insensitively as
// substrings of the destination region name.
var (
	capitalRegions = []string{"metropolitana", "santiago"}
	extremeRegions = []string{"biobío", "araucanía", "magallanes", "los lagos"}
)

// ResolveShipping returns the shipping cost for a destination region.
// The free flag overrides tier lookup unconditionally. An unrecognised
// region falls into the default tier.
func ResolveShipping(region string, free bool) int64 {
	if free {
		return 0
	}

	lower := strings.ToLower(region)
	for _, r := range capitalRegions {
		if strings.Contains(lower, r) {
			return ShippingCapital
		}
	}
	for _, r := range extremeRegions {
		if strings.Contains(lower, r) {
			return ShippingExtreme
		}
	}
	return ShippingDefault
}
