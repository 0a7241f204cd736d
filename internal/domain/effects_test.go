package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEffect(t *testing.T) {
	t.Run("Shipping reward waives shipping", func(t *testing.T) {
		effect := ResolveEffect(Reward{ID: "104", Type: RewardTypeShipping})
		assert.Equal(t, RewardEffect{Kind: EffectFreeShipping}, effect)
	})

	t.Run("Discount reward with amount", func(t *testing.T) {
		effect := ResolveEffect(Reward{ID: "102", Type: RewardTypeDiscount, DiscountAmount: 5000})
		assert.Equal(t, RewardEffect{Kind: EffectFixedDiscount, Amount: 5000}, effect)
	})

	t.Run("Discount reward with rate", func(t *testing.T) {
		effect := ResolveEffect(Reward{ID: "106", Type: RewardTypeDiscount, DiscountRate: 15})
		assert.Equal(t, RewardEffect{Kind: EffectPercentDiscount, Rate: 15}, effect)
	})

	t.Run("Rate wins when both are set", func(t *testing.T) {
		effect := ResolveEffect(Reward{Type: RewardTypeDiscount, DiscountAmount: 5000, DiscountRate: 15})
		assert.Equal(t, EffectPercentDiscount, effect.Kind)
	})

	t.Run("Product reward is a plain product", func(t *testing.T) {
		effect := ResolveEffect(Reward{ID: "101", Type: RewardTypeProduct})
		assert.Equal(t, RewardEffect{Kind: EffectPlainProduct}, effect)
	})

	t.Run("Unknown type falls back to plain product", func(t *testing.T) {
		effect := ResolveEffect(Reward{Type: RewardType("Misterio")})
		assert.Equal(t, EffectPlainProduct, effect.Kind)
	})
}
