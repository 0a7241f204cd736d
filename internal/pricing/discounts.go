package pricing

import "github.com/LuBeneventi/lvlupreact-2/internal/domain"

// DuocDiscountRate is the flat merchandise discount (percent) for users
// registered with an academic institution email.
const DuocDiscountRate = 20

// Discounts is the itemised discount breakdown for a cart.
type Discounts struct {
	Duoc           int64 `json:"duoc"`
	FixedCoupon    int64 `json:"fixedCoupon"`
	PercentCoupon  int64 `json:"percentCoupon"`
	Total          int64 `json:"total"`
	NetMerchandise int64 `json:"netMerchandise"`
}

// Subtotal returns the merchandise subtotal of the cart. Redeemed lines
// carry zero-price pseudo-products, so they contribute nothing.
func Subtotal(lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

// RedeemedPoints returns the total point cost of all redeemed lines.
func RedeemedPoints(lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		if l.IsRedeemed {
			total += l.PointsCost * int64(l.Quantity)
		}
	}
	return total
}

// ComputeDiscounts composes all merchandise discounts for a cart.
//
// The DUOC discount and coupon discounts are purely additive, with no
// precedence or mutual exclusion. Fixed coupons accumulate per unit;
// percent coupons are each recomputed against the same subtotal, so
// duplicate percent-coupon lines double-count rather than compound.
// Total is reported unfloored; NetMerchandise is clamped at zero.
func ComputeDiscounts(subtotal int64, duocEligible bool, lines []domain.CartLine) Discounts {
	var d Discounts

	if duocEligible {
		d.Duoc = subtotal * DuocDiscountRate / 100
	}

	for _, l := range lines {
		if !l.IsRedeemed {
			continue
		}
		switch l.Effect.Kind {
		case domain.EffectFixedDiscount:
			d.FixedCoupon += l.Effect.Amount * int64(l.Quantity)
		case domain.EffectPercentDiscount:
			d.PercentCoupon += subtotal * int64(l.Effect.Rate) / 100
		}
	}

	d.Total = d.Duoc + d.FixedCoupon + d.PercentCoupon

	net := subtotal - d.Total
	if net < 0 {
		net = 0
	}
	d.NetMerchandise = net

	return d
}

// FreeShipping reports whether the order ships free: either the subtotal
// strictly exceeds the free-shipping threshold or the cart carries a
// redeemed free-shipping reward.
func FreeShipping(subtotal int64, lines []domain.CartLine) bool {
	if subtotal > FreeShippingThreshold {
		return true
	}
	for _, l := range lines {
		if l.IsRedeemed && l.Effect.Kind == domain.EffectFreeShipping {
			return true
		}
	}
	return false
}
