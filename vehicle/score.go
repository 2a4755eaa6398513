package vehicle

// Flexibility tiers derived from the deal score.
const (
	FlexibilityLow    = "low"
	FlexibilityMedium = "medium"
	FlexibilityHigh   = "high"
)

const (
	baseScore = 50
	maxScore  = 100

	highThreshold   = 71
	mediumThreshold = 41

	// minimumMargin is added to invoice to get the lowest acceptable price.
	minimumMargin = 500
	// targetShare is the fraction of the msrp-invoice spread kept by the dealer.
	targetShare = 0.3
)

// band awards bonus when the input reaches limit. Bands are ordered from the
// largest bonus down; the first band reached wins.
type band struct {
	limit float64
	bonus int
}

var (
	daysOnLotBands = []band{{90, 30}, {60, 25}, {45, 15}, {30, 10}}
	inventoryBands = []band{{8, 20}, {5, 15}, {3, 10}}
	incentiveBands = []band{{3000, 20}, {2000, 15}, {1000, 10}}
	// Market position is a percentage delta, lower is better.
	marketBands = []band{{-5, 30}, {-3, 20}, {-1, 10}, {1, 5}}
)

func atLeast(v float64, bands []band) int {
	for _, b := range bands {
		if v >= b.limit {
			return b.bonus
		}
	}
	return 0
}

func atMost(v float64, bands []band) int {
	for _, b := range bands {
		if v <= b.limit {
			return b.bonus
		}
	}
	return 0
}

// DealScore estimates how much negotiation room a unit has, from 0 to 100.
func DealScore(daysOnLot, inventoryDepth, incentives int, marketPosition float64) int {
	score := baseScore
	score += atLeast(float64(daysOnLot), daysOnLotBands)
	score += atLeast(float64(inventoryDepth), inventoryBands)
	score += atLeast(float64(incentives), incentiveBands)
	score += atMost(marketPosition, marketBands)

	if score > maxScore {
		return maxScore
	}
	return score
}

// FlexibilityFor maps a deal score to its tier.
func FlexibilityFor(score int) string {
	switch {
	case score >= highThreshold:
		return FlexibilityHigh
	case score >= mediumThreshold:
		return FlexibilityMedium
	default:
		return FlexibilityLow
	}
}

// TargetPrice is invoice plus 30% of the msrp-invoice spread, truncated.
func TargetPrice(msrp, invoice int) int {
	return int(float64(invoice) + float64(msrp-invoice)*targetShare)
}

// MinimumPrice is the lowest acceptable price for a unit.
func MinimumPrice(invoice int) int {
	return invoice + minimumMargin
}
