package weights

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContributionRange(t *testing.T) {
	for base := MinScore; base <= MaxScore; base++ {
		for weight := MinWeight; weight <= MaxWeight; weight++ {
			for confidence := MinScore; confidence <= MaxScore; confidence += 10 {
				c := Contribution(base, weight, confidence)
				require.GreaterOrEqual(t, c, MinScore,
					"base=%d weight=%d confidence=%d", base, weight, confidence)
				require.LessOrEqual(t, c, MaxScore,
					"base=%d weight=%d confidence=%d", base, weight, confidence)
			}
		}
	}

	// the nested floor divisions shave the theoretical maximum
	require.Equal(t, 100, Contribution(100, 100, 100))
	require.Equal(t, 50, Contribution(100, 100, 0))
	require.Equal(t, 0, Contribution(0, 100, 100))
	require.Equal(t, 0, Contribution(1, 1, 100))
}

func TestContributionWorkedExample(t *testing.T) {
	// floor(floor(90*80/100) * (100+70) / 200) = floor(72*170/200) = 61
	require.Equal(t, 61, Contribution(90, 80, 70))
}

func TestDecayRange(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		require.Equal(t, score, Decay(score, 0))

		prev := score
		for periods := 1; periods <= 25; periods++ {
			d := Decay(score, periods)
			require.GreaterOrEqual(t, d, 0)
			require.LessOrEqual(t, d, score)
			require.LessOrEqual(t, d, prev, "decay must not increase with inactivity")
			prev = d
		}
	}
}

func TestDecaySaturates(t *testing.T) {
	require.Equal(t, 0, Decay(100, 20))
	require.Equal(t, 0, Decay(100, 1000))
	require.Equal(t, 0, Decay(1, 20))
	require.Equal(t, 95, Decay(100, 1))
	require.Equal(t, 48, Decay(50, 1))
}

func TestPeriods(t *testing.T) {
	require.Equal(t, 0, Periods(0))
	require.Equal(t, 0, Periods(999))
	require.Equal(t, 1, Periods(1000))
	require.Equal(t, 1, Periods(1999))
	require.Equal(t, 2, Periods(2000))
	require.Equal(t, 0, Periods(-5))
}

func TestBlend(t *testing.T) {
	// floor(80*70/100) + floor(50*30/100) = 56 + 15
	require.Equal(t, 71, Blend(80, 50))
	require.Equal(t, 0, Blend(0, 0))
	require.Equal(t, 100, Blend(100, 100))

	// fresh calculation dominates, prior stabilizes
	require.Equal(t, 70, Blend(100, 0))
	require.Equal(t, 30, Blend(0, 100))
}

func TestBlendClamped(t *testing.T) {
	for fresh := MinScore; fresh <= MaxScore; fresh++ {
		for decayed := MinScore; decayed <= MaxScore; decayed++ {
			b := Blend(fresh, decayed)
			require.GreaterOrEqual(t, b, MinScore)
			require.LessOrEqual(t, b, MaxScore)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	require.Equal(t, StatusPoor, Classify(0))
	require.Equal(t, StatusPoor, Classify(39))
	require.Equal(t, StatusFair, Classify(40))
	require.Equal(t, StatusFair, Classify(59))
	require.Equal(t, StatusGood, Classify(60))
	require.Equal(t, StatusGood, Classify(79))
	require.Equal(t, StatusExcellent, Classify(80))
	require.Equal(t, StatusExcellent, Classify(100))
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "excellent", StatusExcellent.String())
	require.Equal(t, "good", StatusGood.String())
	require.Equal(t, "fair", StatusFair.String())
	require.Equal(t, "poor", StatusPoor.String())
}

func TestValidators(t *testing.T) {
	require.True(t, ValidScore(0))
	require.True(t, ValidScore(100))
	require.False(t, ValidScore(-1))
	require.False(t, ValidScore(101))

	require.True(t, ValidWeight(1))
	require.True(t, ValidWeight(100))
	require.False(t, ValidWeight(0))
	require.False(t, ValidWeight(101))
}
