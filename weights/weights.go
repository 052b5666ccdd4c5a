/*
Package weights implements the integer arithmetic behind trust score
aggregation: per-attestation weighted contributions, inactivity decay,
old/new blending and status classification.

The package is pure and touches no contract storage, so it is compiled
into the TrustScore contract and at the same time usable (and testable)
as regular Go code off-chain.
*/
package weights

// Status is a closed enumeration of reputation bands derived from the
// account score.
type Status int

const (
	StatusPoor Status = iota
	StatusFair
	StatusGood
	StatusExcellent
)

const (
	// MinScore and MaxScore bound account scores, submitted scores and
	// confidence values.
	MinScore = 0
	MaxScore = 100

	// MinWeight and MaxWeight bound verifier credibility weights.
	MinWeight = 1
	MaxWeight = 100

	// DecayRate is the percentage of the score lost per full period of
	// inactivity.
	DecayRate = 5

	// DecayInterval is the number of blocks constituting one period of
	// inactivity.
	DecayInterval = 1000

	// BlendFreshPct and BlendPriorPct set the stability ratio used when
	// a freshly aggregated score is folded into the decayed prior one.
	BlendFreshPct = 70
	BlendPriorPct = 30
)

type statusThreshold struct {
	min    int
	status Status
}

// statusThresholds is ordered from the highest band down, Classify
// returns the first band whose minimum the score reaches.
var statusThresholds = []statusThreshold{
	{80, StatusExcellent},
	{60, StatusGood},
	{40, StatusFair},
	{0, StatusPoor},
}

// ValidScore reports whether x is a usable score or confidence value.
func ValidScore(x int) bool {
	return x >= MinScore && x <= MaxScore
}

// ValidWeight reports whether w is a usable credibility weight.
func ValidWeight(w int) bool {
	return w >= MinWeight && w <= MaxWeight
}

// Contribution computes the weighted contribution of a single
// attestation. The base score is first scaled by the verifier
// credibility weight, then by the declared confidence mapped from
// [0,100] to the [50%,100%] multiplier range. All divisions are floor
// divisions; for inputs accepted by ValidScore and ValidWeight the
// result stays in [0,100].
func Contribution(base, weight, confidence int) int {
	weighted := base * weight / 100
	return weighted * (100 + confidence) / 200
}

// Periods converts the number of blocks an account stayed untouched
// into full decay periods.
func Periods(blocksInactive int) int {
	if blocksInactive <= 0 {
		return 0
	}
	return blocksInactive / DecayInterval
}

// Decay fades score by DecayRate percent per period, saturating at
// zero. Decay(s, 0) == s for any s.
func Decay(score, periods int) int {
	amount := score * periods * DecayRate / 100
	if amount > score {
		return 0
	}
	return score - amount
}

// Blend folds a freshly aggregated score into the decayed prior one
// using the BlendFreshPct/BlendPriorPct stability ratio. The result is
// clamped to the valid score range.
func Blend(fresh, decayed int) int {
	return clamp(fresh*BlendFreshPct/100 + decayed*BlendPriorPct/100)
}

// Classify maps a score to its status band via the threshold table.
func Classify(score int) Status {
	for i := range statusThresholds {
		if score >= statusThresholds[i].min {
			return statusThresholds[i].status
		}
	}
	return StatusPoor
}

// String returns the band label. It is meant for off-chain display,
// on-chain the numeric value is stored.
func (s Status) String() string {
	switch s {
	case StatusExcellent:
		return "excellent"
	case StatusGood:
		return "good"
	case StatusFair:
		return "fair"
	default:
		return "poor"
	}
}

func clamp(x int) int {
	if x < MinScore {
		return MinScore
	}
	if x > MaxScore {
		return MaxScore
	}
	return x
}
