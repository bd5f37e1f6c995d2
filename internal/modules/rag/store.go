package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/bankbot/core/internal/models"
	"github.com/bankbot/core/internal/modules/policy"
)

// ChunkStore persists document chunks and serves similarity search over
// them. Candidate filtering happens in SQL, distance ranking in process.
type ChunkStore struct {
	db *gorm.DB
}

func NewChunkStore(db *gorm.DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// Search returns the topK chunks closest to the query embedding among the
// given categories, ordered by ascending L2 distance with the chunk id as
// tiebreak. The candidate set is bounded by the allowed categories.
func (s *ChunkStore) Search(ctx context.Context, embedding []float32, categories []policy.DocumentCategory, topK int) ([]ScoredChunk, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	if len(embedding) != models.EmbeddingDimensions {
		return nil, fmt.Errorf("query embedding has %d dimensions, want %d", len(embedding), models.EmbeddingDimensions)
	}

	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = string(category)
	}

	var rows []models.DocumentChunkModel
	if err := s.db.WithContext(ctx).
		Where("category IN ?", names).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load chunk candidates: %w", err)
	}

	scored := make([]ScoredChunk, 0, len(rows))
	for i := range rows {
		if len(rows[i].EmbeddingFull) != len(embedding) {
			continue
		}
		scored = append(scored, ScoredChunk{
			Chunk:    rows[i],
			Distance: l2Distance(embedding, rows[i].EmbeddingFull),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Distance != scored[j].Distance {
			return scored[i].Distance < scored[j].Distance
		}
		return scored[i].Chunk.ID < scored[j].Chunk.ID
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (s *ChunkStore) Create(ctx context.Context, chunk *models.DocumentChunkModel) error {
	if err := s.db.WithContext(ctx).Create(chunk).Error; err != nil {
		return fmt.Errorf("create chunk: %w", err)
	}
	return nil
}

func (s *ChunkStore) Get(ctx context.Context, id string) (*models.DocumentChunkModel, error) {
	var chunk models.DocumentChunkModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&chunk).Error; err != nil {
		return nil, fmt.Errorf("get chunk: %w", err)
	}
	return &chunk, nil
}

func (s *ChunkStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DocumentChunkModel{}).Error; err != nil {
		return fmt.Errorf("delete chunk: %w", err)
	}
	return nil
}

func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
