package domain

// ClampScore bounds a score to [0,100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampFloat bounds v to [lo,hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundDiv divides num by den rounding half up. den must be positive.
// Integer arithmetic keeps x.5 results exact.
func RoundDiv(num, den int) int {
	if num >= 0 {
		return (2*num + den) / (2 * den)
	}
	return -((-2*num + den - 1) / (2 * den))
}

// Weighted is one component of a fused score; Percent is its weight in hundredths.
type Weighted struct {
	Score   int
	Percent int
}

// FuseScores returns round(sum(score*weight)) for weights expressed in percent.
func FuseScores(parts ...Weighted) int {
	total := 0
	for _, p := range parts {
		total += ClampScore(p.Score) * p.Percent
	}
	return ClampScore(RoundDiv(total, 100))
}

// MeanScore returns round(mean(scores)), 0 for no scores.
func MeanScore(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return ClampScore(RoundDiv(sum, len(scores)))
}
