// Package ingestion loads news articles from export files and stores them
// as unanalyzed evidence.
package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/civicpulse/internal/types"
)

// evidenceNamespace seeds the deterministic evidence IDs. The same article
// ingested twice maps to the same ID, so re-running an import is a no-op.
var evidenceNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Article is one entry in a news export file.
type Article struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	Source         string `json:"source"`
	PublishedAt    string `json:"published_at"` // RFC3339
	Representative string `json:"representative"`
}

// Store is the slice of the datastore the ingestor needs.
type Store interface {
	RepresentativeByName(ctx context.Context, name string) (*types.Representative, error)
	SaveEvidence(ctx context.Context, e *types.EvidenceItem) error
}

// Summary reports one import run.
type Summary struct {
	Stored  int
	Skipped int
}

// Ingestor turns export articles into stored evidence.
type Ingestor struct {
	store Store
}

// New creates an Ingestor over the given store.
func New(store Store) *Ingestor {
	return &Ingestor{store: store}
}

// LoadFile reads a JSON export file containing an array of articles.
func LoadFile(path string) ([]Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles file %s: %w", path, err)
	}

	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to parse articles JSON: %w", err)
	}
	return articles, nil
}

// Run stores each article as evidence for its representative. Articles
// naming an unknown representative or carrying no usable text are counted
// as skipped, never fatal.
func (ing *Ingestor) Run(ctx context.Context, articles []Article) (*Summary, error) {
	summary := &Summary{}

	for _, a := range articles {
		body := CleanText(a.Body)
		if a.Title == "" || body == "" {
			summary.Skipped++
			continue
		}

		rep, err := ing.store.RepresentativeByName(ctx, a.Representative)
		if err != nil {
			return summary, fmt.Errorf("failed to look up representative %q: %w", a.Representative, err)
		}
		if rep == nil {
			fmt.Printf("Warning: skipping article for unknown representative %q\n", a.Representative)
			summary.Skipped++
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			fmt.Printf("Warning: skipping article %q with bad published_at: %v\n", a.Title, err)
			summary.Skipped++
			continue
		}

		evidence := &types.EvidenceItem{
			ID:               EvidenceID(a.Title, body),
			RepresentativeID: rep.ID,
			Title:            a.Title,
			Body:             body,
			SourceID:         a.Source,
			Credibility:      SourceCredibility(a.Source),
			PublishedAt:      publishedAt,
		}
		if err := ing.store.SaveEvidence(ctx, evidence); err != nil {
			return summary, fmt.Errorf("failed to store evidence %q: %w", a.Title, err)
		}
		summary.Stored++
	}

	return summary, nil
}

// EvidenceID derives a stable ID from the article content, so duplicate
// imports converge on the same evidence row.
func EvidenceID(title, body string) uuid.UUID {
	hash := sha256.Sum256([]byte(title + "\n" + body))
	return uuid.NewSHA1(evidenceNamespace, []byte(hex.EncodeToString(hash[:])))
}
