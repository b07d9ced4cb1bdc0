// Package risk gates candidate trades on quality thresholds and sizes
// positions from account risk parameters.
package risk

import "math"

// Approval thresholds. A trade needs at least a 1:2 reward ratio and a 70%
// estimated probability to pass.
const (
	MinRewardRatio = 2.0
	MinProbability = 70
)

const unitsPerLot = 100_000

// Profile carries the account risk parameters. It is configuration: nothing
// in an evaluation cycle mutates it.
type Profile struct {
	AccountBalance  float64
	RiskPerTradePct float64
	// MaxDailyDrawdownPct is an advisory ceiling. No gate consults it yet;
	// enforcing it needs realized P/L feedback this engine does not receive.
	MaxDailyDrawdownPct float64
}

// DefaultProfile mirrors a standard funded-account setup.
func DefaultProfile() Profile {
	return Profile{
		AccountBalance:      100_000,
		RiskPerTradePct:     1.0,
		MaxDailyDrawdownPct: 5.0,
	}
}

// ValidateTrade decides whether a candidate passes the quality gate. The
// reward-ratio check runs first, so its reason wins when both thresholds are
// missed.
func (p Profile) ValidateTrade(probability int, rewardRatio float64) (bool, string) {
	if rewardRatio < MinRewardRatio {
		return false, "risk/reward ratio below 1:2 minimum"
	}
	if probability < MinProbability {
		return false, "estimated probability below 70% threshold"
	}
	return true, "trade approved"
}

// PositionSize returns the standard-lot size that risks RiskPerTradePct of the
// account balance between entry and stop. A stop sitting on the entry has
// undefined per-unit risk and sizes to zero.
func (p Profile) PositionSize(entry, stop float64) float64 {
	if entry == stop {
		return 0
	}

	riskCapital := p.AccountBalance * (p.RiskPerTradePct / 100)
	units := riskCapital / math.Abs(entry-stop)
	lots := units / unitsPerLot

	return math.Round(lots*100) / 100
}

// RR returns the reward distance over the risk distance, both measured from
// entry. Zero risk distance yields 0 rather than a division fault.
func RR(entry, stop, target float64) float64 {
	riskDist := math.Abs(entry - stop)
	if riskDist == 0 {
		return 0
	}
	return math.Abs(target-entry) / riskDist
}
