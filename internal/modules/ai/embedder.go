package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"

	appcfg "github.com/bankbot/core/internal/config"
)

// Embed maps text to a fixed-dimension vector via the embedding provider.
// Results are cached in Redis keyed by a hash of (model, text), since the
// same query text is frequently embedded for both the retrieve and answer
// routes.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if key := s.embedCacheKey(text); key != "" {
		if vec := s.cachedEmbedding(ctx, key); vec != nil {
			return vec, nil
		}
	}

	s.embedOnce.Do(func() {
		s.embedClient, s.embedErr = buildEmbeddingClient(s.cfg.Embedding)
	})
	if s.embedErr != nil {
		return nil, &ProviderError{Op: "embed", Err: s.embedErr}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.embedClient.Embeddings.New(ctx, openaiclient.EmbeddingNewParams{
		Input: openaiclient.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model:      openaiclient.EmbeddingModel(s.cfg.Embedding.Model),
		Dimensions: openaiclient.Int(int64(s.cfg.Embedding.Dimensions)),
	})
	if err != nil {
		return nil, &ProviderError{Op: "embed", Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &ProviderError{Op: "embed", Err: fmt.Errorf("provider returned no embedding")}
	}

	raw := resp.Data[0].Embedding
	if len(raw) != s.cfg.Embedding.Dimensions {
		return nil, &ProviderError{
			Op:  "embed",
			Err: fmt.Errorf("provider returned %d dimensions, want %d", len(raw), s.cfg.Embedding.Dimensions),
		}
	}

	vec := make([]float32, len(raw))
	for i, f := range raw {
		vec[i] = float32(f)
	}

	if key := s.embedCacheKey(text); key != "" {
		s.storeEmbedding(ctx, key, vec)
	}
	return vec, nil
}

func buildEmbeddingClient(cfg appcfg.EmbeddingConfig) (openaiclient.Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return openaiclient.Client{}, fmt.Errorf("embedding provider api key is empty")
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(cfg.Endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}
	return openaiclient.NewClient(opts...), nil
}

func (s *Service) embedCacheKey(text string) string {
	if s.cache == nil {
		return ""
	}
	h := sha256.Sum256([]byte(s.cfg.Embedding.Model + "|" + text))
	return "bankbot:embedding:" + hex.EncodeToString(h[:])
}

func (s *Service) cachedEmbedding(ctx context.Context, key string) []float32 {
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil
	}
	var vec []float32
	if err := json.Unmarshal([]byte(raw), &vec); err != nil {
		return nil
	}
	if len(vec) != s.cfg.Embedding.Dimensions {
		return nil
	}
	return vec
}

func (s *Service) storeEmbedding(ctx context.Context, key string, vec []float32) {
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	ttl := time.Duration(s.cfg.Embedding.CacheTTLMinutes) * time.Minute
	if err := s.cache.Set(ctx, key, string(raw), ttl); err != nil {
		s.logger.Debug("embedding cache write failed", zap.Error(err))
	}
}
