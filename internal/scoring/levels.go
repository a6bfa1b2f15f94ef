package scoring

import "github.com/ateneolabs/concordia/internal/models"

// Decision thresholds of the similarity strategy. They are part of the
// scoring contract, not configuration: published scores depend on them
// bit for bit.
const (
	weakBestSimilarity = 0.10

	strongSimilarity = 0.40
	strongRatio      = 0.95
	highSimilarity   = 0.30
	highRatio        = 0.90
	goodSimilarity   = 0.20
	goodRatio        = 0.80

	nearTopMaxRank = 3
	nearTopRatio   = 0.70
	partialRatio   = 0.40

	ratioEpsilon = 1e-6
)

// notchFromRanking maps one row's ranking diagnostics onto the discrete
// scale {0, 10, 30, 50, 70, 90, 100}. A weak best similarity means the
// activity text is too generic to rank, which is scored 30 rather than
// punished with 0.
func notchFromRanking(rank int, simSelected, simBest float64) float64 {
	if simBest < weakBestSimilarity {
		return 30
	}

	ratio := simSelected / (simBest + ratioEpsilon)

	if rank == 1 {
		if simSelected >= strongSimilarity && ratio >= strongRatio {
			return 100
		}
		if simSelected >= highSimilarity && ratio >= highRatio {
			return 90
		}
		if simSelected >= goodSimilarity && ratio >= goodRatio {
			return 70
		}
		return 50
	}

	if rank <= nearTopMaxRank && ratio >= nearTopRatio {
		return 30
	}
	if ratio >= partialRatio {
		return 10
	}
	return 0
}

// LevelFromScore maps any 0-100 score onto the nearest notch of the
// discrete scale. Similarity scores already are notches and pass
// through unchanged.
func LevelFromScore(score float64) int {
	switch {
	case score < 5:
		return 0
	case score < 20:
		return 10
	case score < 40:
		return 30
	case score < 60:
		return 50
	case score < 80:
		return 70
	case score < 95:
		return 90
	default:
		return 100
	}
}

// BucketFromScore labels a 0-100 score for reporting.
func BucketFromScore(score float64) string {
	switch {
	case score < 31:
		return models.BucketLow
	case score < 71:
		return models.BucketMedium
	default:
		return models.BucketHigh
	}
}
