package rag

import (
	"github.com/bankbot/core/internal/models"
	"github.com/bankbot/core/internal/modules/policy"
)

type QueryRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id"`
}

// ScoredChunk is a retrieval candidate together with its L2 distance
// from the query embedding. Smaller is closer.
type ScoredChunk struct {
	Chunk    models.DocumentChunkModel
	Distance float64
}

// ResolvedChunk is a retrieval candidate after the disclosure policy has
// been applied. Content holds the tier-appropriate rendition of the chunk
// and is empty when the tier grants nothing.
type ResolvedChunk struct {
	Chunk    models.DocumentChunkModel
	Tier     policy.DisclosureTier
	Content  string
	Distance float64
}

type ChunkResult struct {
	ChunkID  string                  `json:"chunk_id"`
	Category policy.DocumentCategory `json:"category"`
	Citation string                  `json:"citation"`
	Content  string                  `json:"content"`
	Distance float64                 `json:"distance"`
}

type RetrieveResponse struct {
	Query  string        `json:"query"`
	Chunks []ChunkResult `json:"chunks"`

	GrantedTier policy.DisclosureTier `json:"-"`
}

type AnswerResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`

	GrantedTier policy.DisclosureTier `json:"-"`
}
