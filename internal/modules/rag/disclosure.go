package rag

import (
	"strings"

	"github.com/bankbot/core/internal/models"
	"github.com/bankbot/core/internal/modules/policy"
)

// relevantExcerptLimit caps the fallback excerpt used for the RELEVANT
// tier when a chunk carries neither labels nor a summary.
const relevantExcerptLimit = 400

// ResolveContent returns the rendition of a chunk the given tier allows.
// The second return value is false when the tier grants nothing at all;
// an empty string with true means the tier is granted but the chunk has
// no material for it.
func ResolveContent(chunk *models.DocumentChunkModel, tier policy.DisclosureTier) (string, bool) {
	switch tier {
	case policy.TierFull:
		return chunk.ContentFull, true
	case policy.TierSummary:
		return chunk.ContentSummary, true
	case policy.TierRelevant:
		return relevantContent(chunk), true
	default:
		return "", false
	}
}

// relevantContent prefers the generated labels, then the summary, then a
// truncated excerpt of the full text.
func relevantContent(chunk *models.DocumentChunkModel) string {
	if len(chunk.GeneratedLabels) > 0 {
		return strings.Join(chunk.GeneratedLabels, ", ")
	}
	if chunk.ContentSummary != "" {
		return chunk.ContentSummary
	}
	runes := []rune(chunk.ContentFull)
	if len(runes) > relevantExcerptLimit {
		return string(runes[:relevantExcerptLimit]) + "…"
	}
	return chunk.ContentFull
}
