package agents

import (
	"fmt"
	"strings"

	"github.com/jonathan/civicpulse/internal/types"
)

// maxArticleChars truncates very long article bodies before prompting.
const maxArticleChars = 8000

// scoringRules is the shared contract every scoring agent receives. The
// impact convention is deliberately skeptical: absence of wrongdoing is
// neutral, never positive, and implication-by-association is a small
// negative, never neutral-or-better.
const scoringRules = `SCORING RULES:
- "impact" is a signed number in [-10, +10]. 0 is neutral.
- "No evidence of wrongdoing" maps to 0, NEVER to a positive impact.
- Implication by association without direct involvement maps to a small
  negative (-1 to -2), never to 0 or better.
- Dimension scores are 0-100 where 50 is neutral; omit a dimension rather
  than guessing when the article carries no signal for it.
- "confidence" is 0-1: how well the article supports your judgment.`

// BuildAgentPrompt constructs the completion request for one scoring agent.
func BuildAgentPrompt(spec Spec, article *types.EvidenceItem, rep types.Representative) string {
	var sb strings.Builder

	sb.WriteString(spec.Focus)
	sb.WriteString("\n\nYou are scoring the impact of one news article on the public standing of an elected representative.\n\n")

	sb.WriteString(fmt.Sprintf("REPRESENTATIVE: %s (%s, %s)", rep.Name, rep.Party, rep.Constituency))
	if rep.Role != "" {
		sb.WriteString(fmt.Sprintf(", role: %s", rep.Role))
	}
	sb.WriteString("\n\n")

	sb.WriteString(scoringRules)
	sb.WriteString("\n\n")

	sb.WriteString(`Return ONLY valid JSON matching this exact structure:
{
  "scores": {"transparency": 0-100, "effectiveness": 0-100, "integrity": 0-100, "consistency": 0-100, "constituency_service": 0-100},
  "impact": -10 to 10,
  "confidence": 0 to 1,
  "bias": "any bias you bring to this reading",
  "rationale": "one or two sentences"
}

`)

	sb.WriteString("ARTICLE:\n")
	sb.WriteString(articleText(article))
	sb.WriteString("\n")

	return sb.String()
}

// BuildIdeologyPrompt constructs the completion request for the ideology
// analyst.
func BuildIdeologyPrompt(article *types.EvidenceItem, rep types.Representative) string {
	var sb strings.Builder

	sb.WriteString("You are a political-position analyst. From the article below, estimate how the representative's revealed positions shift on eight policy axes.\n\n")
	sb.WriteString(fmt.Sprintf("REPRESENTATIVE: %s (%s, %s)\n\n", rep.Name, rep.Party, rep.Constituency))

	sb.WriteString("AXES, in order: ")
	sb.WriteString(strings.Join(types.IdeologyAxes[:], ", "))
	sb.WriteString(`

Each delta is a small signed number; use 0 for axes the article says
nothing about. Also give a one-phrase qualitative stance judgment.

Return ONLY valid JSON:
{"deltas": [8 numbers], "stance": "e.g. centre-left", "confidence": 0 to 1}

ARTICLE:
`)
	sb.WriteString(articleText(article))
	sb.WriteString("\n")

	return sb.String()
}

// BuildQuickPrompt constructs the cheap single-pass request used by the
// escalation policy.
func BuildQuickPrompt(article *types.EvidenceItem, rep types.Representative) string {
	var sb strings.Builder

	sb.WriteString("You are triaging political news. Give a fast, rough read of the article's impact on the representative named below.\n\n")
	sb.WriteString(fmt.Sprintf("REPRESENTATIVE: %s (%s)\n\n", rep.Name, rep.Party))

	sb.WriteString(scoringRules)
	sb.WriteString("\n\n")

	sb.WriteString(`Classify story_type as one of: scandal, controversy, policy, achievement, routine, human_interest.

Return ONLY valid JSON:
{"impact": -10 to 10, "confidence": 0 to 1, "story_type": "..."}

ARTICLE:
`)
	sb.WriteString(articleText(article))
	sb.WriteString("\n")

	return sb.String()
}

func articleText(article *types.EvidenceItem) string {
	body := article.Body
	if len(body) > maxArticleChars {
		body = body[:maxArticleChars] + "..."
	}
	return article.Title + "\n\n" + body
}
