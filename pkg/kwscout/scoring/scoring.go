// Package scoring derives secondary keyword metrics from raw volume, CPC and
// competition figures. The formulas are heuristic proxies with no external
// ground truth; callers rely on them being reproduced exactly.
package scoring

import (
	"math"

	"github.com/cognicore/kwscout/pkg/kwscout/intent"
)

// CTREstimate is the assumed click-through rate (percent) for the #1 organic
// position. It is a constant, not a function of rank.
const CTREstimate = 32.0

// Derived holds the computed secondary metrics for one keyword.
type Derived struct {
	CTREstimate       float64
	TrafficPotential  int
	BuyerIntentScore  int
	MonetizationScore int
}

// Derive computes the secondary metrics for a keyword.
func Derive(volume int, cpc float64, it intent.Intent) Derived {
	buyer := 20
	switch it {
	case intent.Transactional:
		buyer += 60
	case intent.Commercial:
		buyer += 40
	}
	if cpc > 2.0 {
		buyer += 10
	}
	if cpc > 5.0 {
		buyer += 10
	}
	buyer = clamp(buyer, 0, 100)

	monetization := cpc * 10
	if volume > 1000 {
		monetization += 20
	}
	if monetization > 100 {
		monetization = 100
	}

	return Derived{
		CTREstimate:       CTREstimate,
		TrafficPotential:  int(math.Round(float64(volume) * CTREstimate / 100)),
		BuyerIntentScore:  buyer,
		MonetizationScore: int(math.Round(monetization)),
	}
}

// Difficulty maps a [0,1] competition value to a 0-100 difficulty score.
func Difficulty(competition float64) int {
	return int(math.Round(competition * 100))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
