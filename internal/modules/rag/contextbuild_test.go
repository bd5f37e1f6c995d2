package rag

import (
	"testing"

	"github.com/bankbot/core/internal/models"
	"github.com/bankbot/core/internal/modules/policy"
)

func TestCitation(t *testing.T) {
	withSub := &models.DocumentChunkModel{
		Entity:           "Acme Bank",
		MainSectionTitle: "Account Fees",
		SubSectionTitle:  "Overdraft",
	}
	if got := Citation(withSub); got != "Acme Bank – Account Fees, Overdraft" {
		t.Fatalf("Citation = %q", got)
	}

	withoutSub := &models.DocumentChunkModel{
		Entity:           "Acme Bank",
		MainSectionTitle: "Account Fees",
	}
	if got := Citation(withoutSub); got != "Acme Bank – Account Fees" {
		t.Fatalf("Citation = %q", got)
	}
}

func TestBuildContextNumbersOnlyDisclosedChunks(t *testing.T) {
	resolved := []ResolvedChunk{
		{
			Chunk:   models.DocumentChunkModel{Entity: "Acme Bank", MainSectionTitle: "Fees"},
			Tier:    policy.TierFull,
			Content: "first content",
		},
		{Tier: policy.TierSummary, Content: ""},
		{
			Chunk:   models.DocumentChunkModel{Entity: "Acme Bank", MainSectionTitle: "Limits"},
			Tier:    policy.TierSummary,
			Content: "second content",
		},
	}

	got := BuildContext(resolved)
	want := "[[1]] first content\n*Citation: Acme Bank – Fees*\n\n" +
		"[[2]] second content\n*Citation: Acme Bank – Limits*"
	if got != want {
		t.Fatalf("BuildContext =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildContextEmpty(t *testing.T) {
	if got := BuildContext(nil); got != "" {
		t.Fatalf("BuildContext(nil) = %q, want empty", got)
	}
}
