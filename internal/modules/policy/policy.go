// Package policy implements the tiered confidentiality matrix that gates
// every retrieval and disclosure decision. The matrix is a constant table
// built at init and never mutated, so it is safe for unsynchronized
// concurrent reads.
package policy

// DocumentCategory classifies a banking document chunk. The set is fixed
// and closed; anything outside it resolves to TierNone for every level.
type DocumentCategory string

const (
	CategoryPublicProductInfo    DocumentCategory = "Public Product Info"
	CategoryInternalProcedures   DocumentCategory = "Internal Procedures"
	CategoryRiskModels           DocumentCategory = "Risk Models"
	CategoryRegulatoryDocs       DocumentCategory = "Regulatory Docs"
	CategoryInvestigationReports DocumentCategory = "Investigation Reports"
	CategoryExecutiveReports     DocumentCategory = "Executive Reports"
)

// Categories lists all document categories in canonical order.
var Categories = []DocumentCategory{
	CategoryPublicProductInfo,
	CategoryInternalProcedures,
	CategoryRiskModels,
	CategoryRegulatoryDocs,
	CategoryInvestigationReports,
	CategoryExecutiveReports,
}

// DisclosureTier is the granularity of content a caller may see for a
// document category. Tiers are ordered by richness; TierFull is more
// complete than TierRelevant though not necessarily longer.
type DisclosureTier int

const (
	TierNone DisclosureTier = iota
	TierSummary
	TierRelevant
	TierFull
)

func (t DisclosureTier) String() string {
	switch t {
	case TierSummary:
		return "summary"
	case TierRelevant:
		return "relevant"
	case TierFull:
		return "full"
	default:
		return "none"
	}
}

// ClearanceLevel ranks a caller's trust for document access, 1..5.
type ClearanceLevel int

const (
	LevelPublic       ClearanceLevel = 1
	LevelInternal     ClearanceLevel = 2
	LevelConfidential ClearanceLevel = 3
	LevelRestricted   ClearanceLevel = 4
	LevelExecutive    ClearanceLevel = 5
)

// matrix maps (category, clearance level) to the disclosure tier granted.
// Pairs absent from the table resolve to TierNone, never to an error.
var matrix = map[DocumentCategory]map[ClearanceLevel]DisclosureTier{
	CategoryPublicProductInfo: {
		LevelPublic:       TierFull,
		LevelInternal:     TierFull,
		LevelConfidential: TierFull,
		LevelRestricted:   TierFull,
		LevelExecutive:    TierFull,
	},
	CategoryInternalProcedures: {
		LevelPublic:       TierNone,
		LevelInternal:     TierFull,
		LevelConfidential: TierFull,
		LevelRestricted:   TierFull,
		LevelExecutive:    TierFull,
	},
	CategoryRiskModels: {
		LevelPublic:       TierNone,
		LevelInternal:     TierNone,
		LevelConfidential: TierFull,
		LevelRestricted:   TierSummary,
		LevelExecutive:    TierFull,
	},
	CategoryRegulatoryDocs: {
		LevelPublic:       TierNone,
		LevelInternal:     TierSummary,
		LevelConfidential: TierRelevant,
		LevelRestricted:   TierFull,
		LevelExecutive:    TierFull,
	},
	CategoryInvestigationReports: {
		LevelPublic:       TierNone,
		LevelInternal:     TierNone,
		LevelConfidential: TierNone,
		LevelRestricted:   TierNone,
		LevelExecutive:    TierFull,
	},
	CategoryExecutiveReports: {
		LevelPublic:       TierNone,
		LevelInternal:     TierNone,
		LevelConfidential: TierNone,
		LevelRestricted:   TierSummary,
		LevelExecutive:    TierFull,
	},
}

// ResolveTier returns the disclosure tier for a category at a clearance
// level. Total over all inputs: unknown categories and unmapped levels
// yield TierNone.
func ResolveTier(category DocumentCategory, level ClearanceLevel) DisclosureTier {
	levels, ok := matrix[category]
	if !ok {
		return TierNone
	}
	return levels[level]
}

// AllowedCategories returns the categories visible at the given clearance
// level, in canonical order. The result scopes similarity search; an empty
// result is the caller's decision to handle.
func AllowedCategories(level ClearanceLevel) []DocumentCategory {
	allowed := make([]DocumentCategory, 0, len(Categories))
	for _, category := range Categories {
		if ResolveTier(category, level) != TierNone {
			allowed = append(allowed, category)
		}
	}
	return allowed
}
