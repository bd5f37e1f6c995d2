package rag

import (
	"strings"
	"testing"

	"github.com/bankbot/core/internal/models"
	"github.com/bankbot/core/internal/modules/policy"
)

func TestResolveContentPerTier(t *testing.T) {
	chunk := &models.DocumentChunkModel{
		ContentFull:     "full body of the document chunk",
		ContentSummary:  "short summary",
		GeneratedLabels: models.StringArray{"fees", "accounts"},
	}

	tests := []struct {
		name string
		tier policy.DisclosureTier
		want string
		ok   bool
	}{
		{"full", policy.TierFull, "full body of the document chunk", true},
		{"summary", policy.TierSummary, "short summary", true},
		{"relevant prefers labels", policy.TierRelevant, "fees, accounts", true},
		{"none", policy.TierNone, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveContent(chunk, tt.tier)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ResolveContent(%v) = (%q, %v), want (%q, %v)", tt.tier, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRelevantFallsBackToSummary(t *testing.T) {
	chunk := &models.DocumentChunkModel{
		ContentFull:    "full body",
		ContentSummary: "the summary",
	}
	got, ok := ResolveContent(chunk, policy.TierRelevant)
	if !ok || got != "the summary" {
		t.Fatalf("got (%q, %v), want (%q, true)", got, ok, "the summary")
	}
}

func TestRelevantFallsBackToTruncatedFullText(t *testing.T) {
	long := strings.Repeat("ä", relevantExcerptLimit+50)
	chunk := &models.DocumentChunkModel{ContentFull: long}

	got, ok := ResolveContent(chunk, policy.TierRelevant)
	if !ok {
		t.Fatal("expected content to be granted")
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected trailing ellipsis, got %q", got[len(got)-8:])
	}
	if n := len([]rune(got)); n != relevantExcerptLimit+1 {
		t.Fatalf("excerpt length = %d runes, want %d", n, relevantExcerptLimit+1)
	}
}

func TestRelevantShortFullTextIsNotTruncated(t *testing.T) {
	chunk := &models.DocumentChunkModel{ContentFull: "short body"}
	got, _ := ResolveContent(chunk, policy.TierRelevant)
	if got != "short body" {
		t.Fatalf("got %q, want untruncated body", got)
	}
}
