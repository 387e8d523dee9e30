package scoring

import "github.com/jonathan/civicpulse/internal/types"

// Parliamentary pillar weights.
const (
	attendanceWeight = 0.40
	questionsWeight  = 0.35
	committeeWeight  = 0.25
)

// Activity benchmarks: hitting the benchmark earns full marks for that
// component, beyond it the ratio is capped at 1.
const (
	questionsBenchmark = 50.0
	committeeBenchmark = 20.0
)

// ParliamentaryScore computes the parliamentary pillar from recorded Dáil
// activity. A metric that was never recorded (nil activity, or a negative
// value) contributes the neutral score at its weight, never zero: absence
// of data must not read as absence of work.
func ParliamentaryScore(activity *types.ParliamentaryActivity) float64 {
	if activity == nil {
		return NeutralScore
	}

	attendance := NeutralScore
	if activity.AttendancePct >= 0 {
		attendance = clampScore(activity.AttendancePct)
	}

	questions := NeutralScore
	if activity.QuestionsAsked >= 0 {
		questions = benchmarkScore(float64(activity.QuestionsAsked), questionsBenchmark)
	}

	committee := NeutralScore
	if activity.CommitteeMeetings >= 0 {
		committee = benchmarkScore(float64(activity.CommitteeMeetings), committeeBenchmark)
	}

	return attendance*attendanceWeight + questions*questionsWeight + committee*committeeWeight
}

func benchmarkScore(value, benchmark float64) float64 {
	ratio := value / benchmark
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}
