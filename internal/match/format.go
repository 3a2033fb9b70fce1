package match

import (
	"strings"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// maxExplanationLen bounds recommendation card text.
const maxExplanationLen = 220

// FormatRecommendation normalizes a recommendation's explanation for
// presentation: trims, truncates long text with an ellipsis, and guarantees
// terminal punctuation. The score is never touched.
func FormatRecommendation(rec domain.Recommendation) domain.Recommendation {
	expl := strings.TrimSpace(rec.Explanation)
	if runes := []rune(expl); len(runes) > maxExplanationLen {
		expl = strings.TrimRight(string(runes[:maxExplanationLen]), " ") + "…"
	}
	if expl != "" && !strings.HasSuffix(expl, ".") && !strings.HasSuffix(expl, "…") {
		expl += "."
	}
	rec.Explanation = expl
	return rec
}

// FormatRecommendations applies FormatRecommendation to each entry.
func FormatRecommendations(recs []domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, len(recs))
	for i, r := range recs {
		out[i] = FormatRecommendation(r)
	}
	return out
}
