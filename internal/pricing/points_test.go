package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettlePoints(t *testing.T) {
	t.Run("Earns per full thousand", func(t *testing.T) {
		s := SettlePoints(75000, 0)
		assert.Equal(t, int64(750), s.Earned)
		assert.Equal(t, int64(0), s.Spent)
		assert.Equal(t, int64(750), s.NetDelta)
	})

	t.Run("Partial step earns nothing", func(t *testing.T) {
		s := SettlePoints(999, 0)
		assert.Equal(t, int64(0), s.Earned)

		s = SettlePoints(1999, 0)
		assert.Equal(t, int64(10), s.Earned)
	})

	t.Run("Spend is passed through", func(t *testing.T) {
		s := SettlePoints(10000, 500)
		assert.Equal(t, int64(100), s.Earned)
		assert.Equal(t, int64(500), s.Spent)
		assert.Equal(t, int64(-400), s.NetDelta)
	})

	t.Run("Negative merchandise total earns nothing", func(t *testing.T) {
		s := SettlePoints(-5000, 200)
		assert.Equal(t, int64(0), s.Earned)
		assert.Equal(t, int64(200), s.Spent)
		assert.Equal(t, int64(-200), s.NetDelta)
	})

	t.Run("Earned is always a non-negative multiple of ten", func(t *testing.T) {
		for _, net := range []int64{0, 1, 999, 1000, 1500, 2000, 75000, 1234567} {
			s := SettlePoints(net, 0)
			assert.GreaterOrEqual(t, s.Earned, int64(0))
			assert.Zero(t, s.Earned%10, "net %d", net)
		}
	})
}
