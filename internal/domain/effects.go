package domain

// EffectKind enumerates what a redeemed reward does to the checkout total.
type EffectKind string

const (
	// EffectPlainProduct redeems as a zero-price product with no further
	// discount effect.
	EffectPlainProduct EffectKind = "product"
	// EffectFixedDiscount subtracts a fixed CLP amount per unit redeemed.
	EffectFixedDiscount EffectKind = "fixed_discount"
	// EffectPercentDiscount subtracts a percentage of the cart subtotal.
	EffectPercentDiscount EffectKind = "percent_discount"
	// EffectFreeShipping waives the shipping cost for the whole order.
	EffectFreeShipping EffectKind = "free_shipping"
)

// RewardEffect is the resolved pricing behaviour of a redeemed reward.
// It is derived once from the reward definition, so the pricing engine
// never has to recognise specific catalog identifiers.
type RewardEffect struct {
	Kind   EffectKind `json:"kind,omitempty"`
	Amount int64      `json:"amount,omitempty"`
	Rate   int        `json:"rate,omitempty"`
}

// ResolveEffect maps a reward definition to its pricing effect.
// Envio rewards waive shipping; Descuento rewards carry either a fixed
// amount or a subtotal percentage; anything else is a plain product.
func ResolveEffect(r Reward) RewardEffect {
	switch r.Type {
	case RewardTypeShipping:
		return RewardEffect{Kind: EffectFreeShipping}
	case RewardTypeDiscount:
		if r.DiscountRate > 0 {
			return RewardEffect{Kind: EffectPercentDiscount, Rate: r.DiscountRate}
		}
		return RewardEffect{Kind: EffectFixedDiscount, Amount: r.DiscountAmount}
	}
	return RewardEffect{Kind: EffectPlainProduct}
}
