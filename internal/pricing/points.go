package pricing

// Point earning constants: PointsPerStep points for every EarningStep CLP
// of the post-discount merchandise total. Shipping is excluded from the
// earning base.
const (
	EarningStep   int64 = 1000
	PointsPerStep int64 = 10
)

// Settlement is the point movement an order produces.
type Settlement struct {
	Earned   int64 `json:"earned"`
	Spent    int64 `json:"spent"`
	NetDelta int64 `json:"netDelta"`
}

// SettlePoints computes the point settlement for an order: points earned
// on the post-discount merchandise total and points spent on redeemed
// rewards. NetDelta may be negative. Balance sufficiency is not checked
// here; that happens at the ledger write.
func SettlePoints(netMerchandise, redeemedPoints int64) Settlement {
	if netMerchandise < 0 {
		netMerchandise = 0
	}
	earned := netMerchandise / EarningStep * PointsPerStep
	return Settlement{
		Earned:   earned,
		Spent:    redeemedPoints,
		NetDelta: earned - redeemedPoints,
	}
}
