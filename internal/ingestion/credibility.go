package ingestion

// sourceCredibility maps known Irish outlets to an editorial credibility
// weight. Unknown sources get a conservative default rather than zero, so
// a new outlet still moves scores, just slowly.
var sourceCredibility = map[string]float64{
	"rte":               0.90,
	"irish-times":       0.90,
	"irish-independent": 0.85,
	"the-journal":       0.80,
	"examiner":          0.80,
	"breakingnews":      0.70,
}

// defaultCredibility is applied to sources not in the table.
const defaultCredibility = 0.60

// SourceCredibility returns the credibility weight for a source ID.
func SourceCredibility(sourceID string) float64 {
	if c, ok := sourceCredibility[sourceID]; ok {
		return c
	}
	return defaultCredibility
}
