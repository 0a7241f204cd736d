package pricing

import (
	"testing"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ordinaryLine(price int64, quantity int) domain.CartLine {
	return domain.CartLine{
		Product:  domain.Product{ID: "p1", Price: price, CountInStock: quantity},
		Quantity: quantity,
	}
}

func redeemedLine(effect domain.RewardEffect, pointsCost int64, quantity int) domain.CartLine {
	return domain.CartLine{
		Product:    domain.Product{ID: "reward-x", Price: 0, CountInStock: quantity},
		Quantity:   quantity,
		IsRedeemed: true,
		PointsCost: pointsCost,
		Effect:     effect,
	}
}

func TestSubtotal(t *testing.T) {
	t.Run("Sums ordinary lines", func(t *testing.T) {
		lines := []domain.CartLine{
			ordinaryLine(15000, 2),
			ordinaryLine(5000, 1),
		}
		assert.Equal(t, int64(35000), Subtotal(lines))
	})

	t.Run("Redeemed lines contribute nothing", func(t *testing.T) {
		lines := []domain.CartLine{
			ordinaryLine(10000, 1),
			redeemedLine(domain.RewardEffect{Kind: domain.EffectPlainProduct}, 400, 3),
		}
		assert.Equal(t, int64(10000), Subtotal(lines))
	})
}

func TestComputeDiscounts(t *testing.T) {
	t.Run("No eligibility, no coupons", func(t *testing.T) {
		lines := []domain.CartLine{ordinaryLine(30000, 1)}
		d := ComputeDiscounts(30000, false, lines)

		assert.Equal(t, int64(0), d.Total)
		assert.Equal(t, int64(30000), d.NetMerchandise)
	})

	t.Run("Duoc discount is 20 percent of the subtotal", func(t *testing.T) {
		d := ComputeDiscounts(50000, true, []domain.CartLine{ordinaryLine(50000, 1)})

		assert.Equal(t, int64(10000), d.Duoc)
		assert.Equal(t, int64(10000), d.Total)
		assert.Equal(t, int64(40000), d.NetMerchandise)
	})

	t.Run("Fixed coupon accumulates per unit", func(t *testing.T) {
		fixed := domain.RewardEffect{Kind: domain.EffectFixedDiscount, Amount: 5000}
		lines := []domain.CartLine{
			ordinaryLine(40000, 1),
			redeemedLine(fixed, 500, 2),
		}
		d := ComputeDiscounts(40000, false, lines)

		assert.Equal(t, int64(10000), d.FixedCoupon)
		assert.Equal(t, int64(30000), d.NetMerchandise)
	})

	t.Run("Percent coupons double-count, not compound", func(t *testing.T) {
		percent := domain.RewardEffect{Kind: domain.EffectPercentDiscount, Rate: 15}
		lines := []domain.CartLine{
			ordinaryLine(100000, 1),
			redeemedLine(percent, 800, 1),
			redeemedLine(percent, 800, 1),
		}
		d := ComputeDiscounts(100000, false, lines)

		// Each coupon takes 15% of the same subtotal: 15000 + 15000.
		assert.Equal(t, int64(30000), d.PercentCoupon)
		assert.Equal(t, int64(70000), d.NetMerchandise)
	})

	t.Run("Discounts compose additively", func(t *testing.T) {
		percent := domain.RewardEffect{Kind: domain.EffectPercentDiscount, Rate: 15}
		fixed := domain.RewardEffect{Kind: domain.EffectFixedDiscount, Amount: 5000}
		lines := []domain.CartLine{
			ordinaryLine(100000, 1),
			redeemedLine(percent, 800, 1),
			redeemedLine(fixed, 500, 1),
		}
		d := ComputeDiscounts(100000, true, lines)

		assert.Equal(t, int64(20000), d.Duoc)
		assert.Equal(t, int64(15000), d.PercentCoupon)
		assert.Equal(t, int64(5000), d.FixedCoupon)
		assert.Equal(t, int64(40000), d.Total)
		assert.Equal(t, int64(60000), d.NetMerchandise)
	})

	t.Run("Net merchandise is clamped at zero", func(t *testing.T) {
		fixed := domain.RewardEffect{Kind: domain.EffectFixedDiscount, Amount: 5000}
		lines := []domain.CartLine{
			ordinaryLine(3000, 1),
			redeemedLine(fixed, 500, 2),
		}
		d := ComputeDiscounts(3000, false, lines)

		assert.Equal(t, int64(10000), d.Total)
		assert.Equal(t, int64(0), d.NetMerchandise)
	})

	t.Run("Free-shipping and plain-product effects leave the money alone", func(t *testing.T) {
		lines := []domain.CartLine{
			ordinaryLine(20000, 1),
			redeemedLine(domain.RewardEffect{Kind: domain.EffectFreeShipping}, 300, 1),
			redeemedLine(domain.RewardEffect{Kind: domain.EffectPlainProduct}, 400, 1),
		}
		d := ComputeDiscounts(20000, false, lines)

		assert.Equal(t, int64(0), d.Total)
		assert.Equal(t, int64(20000), d.NetMerchandise)
	})
}

func TestFreeShipping(t *testing.T) {
	t.Run("Crossing the threshold grants free shipping", func(t *testing.T) {
		assert.True(t, FreeShipping(100001, nil))
		assert.True(t, FreeShipping(150000, nil))
		assert.False(t, FreeShipping(100000, nil))
		assert.False(t, FreeShipping(99999, nil))
	})

	t.Run("Redeemed free-shipping reward grants free shipping", func(t *testing.T) {
		lines := []domain.CartLine{
			redeemedLine(domain.RewardEffect{Kind: domain.EffectFreeShipping}, 300, 1),
		}
		assert.True(t, FreeShipping(10000, lines))
	})

	t.Run("Other redeemed effects do not", func(t *testing.T) {
		lines := []domain.CartLine{
			redeemedLine(domain.RewardEffect{Kind: domain.EffectFixedDiscount, Amount: 5000}, 500, 1),
		}
		assert.False(t, FreeShipping(10000, lines))
	})
}

func TestRedeemedPoints(t *testing.T) {
	lines := []domain.CartLine{
		ordinaryLine(10000, 2),
		redeemedLine(domain.RewardEffect{Kind: domain.EffectFixedDiscount, Amount: 5000}, 500, 2),
		redeemedLine(domain.RewardEffect{Kind: domain.EffectFreeShipping}, 300, 1),
	}
	assert.Equal(t, int64(1300), RedeemedPoints(lines))
}

// Worked pricing example: a 100000 CLP cart for a DUOC user with one
// fixed coupon, shipped to an extreme region. The subtotal sits exactly
// on the free-shipping threshold, which is not enough to cross it.
func TestPricingScenario(t *testing.T) {
	fixed := domain.RewardEffect{Kind: domain.EffectFixedDiscount, Amount: 5000}
	lines := []domain.CartLine{
		ordinaryLine(100000, 1),
		redeemedLine(fixed, 500, 1),
	}

	subtotal := Subtotal(lines)
	assert.Equal(t, int64(100000), subtotal)

	d := ComputeDiscounts(subtotal, true, lines)
	assert.Equal(t, int64(20000), d.Duoc)
	assert.Equal(t, int64(5000), d.FixedCoupon)
	assert.Equal(t, int64(25000), d.Total)
	assert.Equal(t, int64(75000), d.NetMerchandise)

	free := FreeShipping(subtotal, lines)
	assert.False(t, free)

	shipping := ResolveShipping("Región del Biobío", free)
	assert.Equal(t, ShippingExtreme, shipping)

	total := d.NetMerchandise + shipping
	assert.Equal(t, int64(85000), total)

	s := SettlePoints(d.NetMerchandise, RedeemedPoints(lines))
	assert.Equal(t, int64(750), s.Earned)
	assert.Equal(t, int64(500), s.Spent)
	assert.Equal(t, int64(250), s.NetDelta)
}
