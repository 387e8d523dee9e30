package types

// ParliamentaryActivity holds the parliamentary engagement metrics for one
// representative over the current term. A negative value means the metric
// has not been recorded; the calculator substitutes a neutral default,
// never zero.
type ParliamentaryActivity struct {
	QuestionsAsked    int     `json:"questions_asked"`
	AttendancePct     float64 `json:"attendance_pct"` // 0-100
	CommitteeMeetings int     `json:"committee_meetings"`
}

// TrustTally is the raw public sentiment vote count for a representative.
type TrustTally struct {
	Trust    int `json:"trust"`
	Distrust int `json:"distrust"`
}

// Total returns the total number of votes cast.
func (t TrustTally) Total() int {
	return t.Trust + t.Distrust
}
