package policy

import "testing"

func TestResolveTierMatchesMatrix(t *testing.T) {
	// The full literal table: category -> tier per level 1..5.
	want := map[DocumentCategory][5]DisclosureTier{
		CategoryPublicProductInfo:    {TierFull, TierFull, TierFull, TierFull, TierFull},
		CategoryInternalProcedures:   {TierNone, TierFull, TierFull, TierFull, TierFull},
		CategoryRiskModels:           {TierNone, TierNone, TierFull, TierSummary, TierFull},
		CategoryRegulatoryDocs:       {TierNone, TierSummary, TierRelevant, TierFull, TierFull},
		CategoryInvestigationReports: {TierNone, TierNone, TierNone, TierNone, TierFull},
		CategoryExecutiveReports:     {TierNone, TierNone, TierNone, TierSummary, TierFull},
	}

	for category, tiers := range want {
		for i, wantTier := range tiers {
			level := ClearanceLevel(i + 1)
			if got := ResolveTier(category, level); got != wantTier {
				t.Errorf("ResolveTier(%q, %d) = %v, want %v", category, level, got, wantTier)
			}
		}
	}
}

func TestResolveTierUnknownCategory(t *testing.T) {
	for level := ClearanceLevel(1); level <= 5; level++ {
		if got := ResolveTier("Shadow Ledger", level); got != TierNone {
			t.Errorf("ResolveTier(unknown, %d) = %v, want TierNone", level, got)
		}
	}
}

func TestResolveTierOutOfRangeLevel(t *testing.T) {
	if got := ResolveTier(CategoryPublicProductInfo, 0); got != TierNone {
		t.Errorf("ResolveTier(level 0) = %v, want TierNone", got)
	}
	if got := ResolveTier(CategoryPublicProductInfo, 6); got != TierNone {
		t.Errorf("ResolveTier(level 6) = %v, want TierNone", got)
	}
}

func TestAllowedCategories(t *testing.T) {
	tests := []struct {
		level ClearanceLevel
		want  []DocumentCategory
	}{
		{LevelPublic, []DocumentCategory{CategoryPublicProductInfo}},
		{LevelInternal, []DocumentCategory{
			CategoryPublicProductInfo,
			CategoryInternalProcedures,
			CategoryRegulatoryDocs,
		}},
		{LevelConfidential, []DocumentCategory{
			CategoryPublicProductInfo,
			CategoryInternalProcedures,
			CategoryRiskModels,
			CategoryRegulatoryDocs,
		}},
		{LevelRestricted, []DocumentCategory{
			CategoryPublicProductInfo,
			CategoryInternalProcedures,
			CategoryRiskModels,
			CategoryRegulatoryDocs,
			CategoryExecutiveReports,
		}},
		{LevelExecutive, Categories},
	}

	for _, tt := range tests {
		got := AllowedCategories(tt.level)
		if len(got) != len(tt.want) {
			t.Errorf("AllowedCategories(%d) = %v, want %v", tt.level, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("AllowedCategories(%d)[%d] = %q, want %q", tt.level, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier DisclosureTier
		want string
	}{
		{TierNone, "none"},
		{TierSummary, "summary"},
		{TierRelevant, "relevant"},
		{TierFull, "full"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
