package grade

import "math"

// FailingScore is the per-component threshold: any single term score at or
// above it fails the student, regardless of the average.
const FailingScore = 4.0

// Round2 rounds to 2 decimal places, the precision scores are stored and
// displayed at.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Average computes the term average of the four component scores.
func Average(prelim, midterm, semifinal, final float64) float64 {
	return Round2((prelim + midterm + semifinal + final) / 4)
}

// ComputeRemark applies the pass/fail rule to the four component scores.
func ComputeRemark(prelim, midterm, semifinal, final float64) string {
	for _, score := range [4]float64{prelim, midterm, semifinal, final} {
		if score >= FailingScore {
			return RemarkFailed
		}
	}
	return RemarkPassed
}
