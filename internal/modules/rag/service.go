package rag

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/bankbot/core/internal/models"
	"github.com/bankbot/core/internal/modules/history"
	"github.com/bankbot/core/internal/modules/policy"
)

// Embedder turns a query into the vector used for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces the answer text on the generative path.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Searcher ranks chunk candidates for a query embedding.
type Searcher interface {
	Search(ctx context.Context, embedding []float32, categories []policy.DocumentCategory, topK int) ([]ScoredChunk, error)
}

// Recorder appends to the session ledger once an answer body exists.
type Recorder interface {
	Append(ctx context.Context, params history.AppendParams) (*models.QueryHistoryModel, error)
}

// Caller identifies the authenticated user a request runs on behalf of.
type Caller struct {
	UserID   string
	Username string
	Level    policy.ClearanceLevel
	IP       string
}

type Service struct {
	logger   *zap.Logger
	embedder Embedder
	gen      Generator
	store    Searcher
	ledger   Recorder
	topK     int
}

func NewService(logger *zap.Logger, embedder Embedder, gen Generator, store Searcher, ledger Recorder, topK int) *Service {
	return &Service{
		logger:   logger.Named("rag"),
		embedder: embedder,
		gen:      gen,
		store:    store,
		ledger:   ledger,
		topK:     topK,
	}
}

// Retrieve runs the disclosure pipeline without the generation step and
// returns the policy-filtered chunks themselves.
func (s *Service) Retrieve(ctx context.Context, caller Caller, req QueryRequest) (*RetrieveResponse, error) {
	visible, err := s.disclose(ctx, caller, req.Query)
	if err != nil {
		return nil, err
	}

	chunks := make([]ChunkResult, 0, len(visible))
	for i := range visible {
		rc := &visible[i]
		chunks = append(chunks, ChunkResult{
			ChunkID:  rc.Chunk.ID,
			Category: policy.DocumentCategory(rc.Chunk.Category),
			Citation: Citation(&rc.Chunk),
			Content:  rc.Content,
			Distance: rc.Distance,
		})
	}

	resp := &RetrieveResponse{
		Query:       req.Query,
		Chunks:      chunks,
		GrantedTier: highestTier(visible),
	}

	body, err := json.Marshal(chunks)
	if err != nil {
		return nil, fmt.Errorf("encode retrieve response: %w", err)
	}
	if err := s.log(ctx, caller, req, models.RouteRetrieve, string(body)); err != nil {
		return nil, err
	}
	return resp, nil
}

// Answer runs the full pipeline. When every disclosed chunk is limited to
// the SUMMARY or RELEVANT tier the context block is returned verbatim and
// no model call is made; a single generation call happens only when at
// least one FULL-tier chunk survives.
func (s *Service) Answer(ctx context.Context, caller Caller, req QueryRequest) (*AnswerResponse, error) {
	visible, err := s.disclose(ctx, caller, req.Query)
	if err != nil {
		return nil, err
	}

	contextBlock := BuildContext(visible)

	var answer string
	if allLimited(visible) {
		answer = contextBlock
	} else {
		if contextBlock == "" {
			return nil, ErrForbidden
		}
		answer, err = s.gen.Generate(ctx, buildAnswerPrompt(contextBlock, req.Query))
		if err != nil {
			return nil, err
		}
	}

	resp := &AnswerResponse{
		Query:       req.Query,
		Answer:      answer,
		GrantedTier: highestTier(visible),
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode answer response: %w", err)
	}
	if err := s.log(ctx, caller, req, models.RouteAnswer, string(body)); err != nil {
		return nil, err
	}
	return resp, nil
}

// disclose runs the shared front of both routes: policy check, embedding,
// similarity search and per-chunk disclosure. It returns only chunks the
// caller may see something of.
func (s *Service) disclose(ctx context.Context, caller Caller, query string) ([]ResolvedChunk, error) {
	allowed := policy.AllowedCategories(caller.Level)
	if len(allowed) == 0 {
		return nil, ErrForbidden
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := s.store.Search(ctx, embedding, allowed, s.topK)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, ErrNotFound
	}

	visible := make([]ResolvedChunk, 0, len(scored))
	for i := range scored {
		chunk := &scored[i].Chunk
		tier := policy.ResolveTier(policy.DocumentCategory(chunk.Category), caller.Level)
		content, ok := ResolveContent(chunk, tier)
		if !ok {
			continue
		}
		visible = append(visible, ResolvedChunk{
			Chunk:    *chunk,
			Tier:     tier,
			Content:  content,
			Distance: scored[i].Distance,
		})
	}
	if len(visible) == 0 {
		return nil, ErrForbidden
	}

	s.logger.Debug("disclosure resolved",
		zap.Int("candidates", len(scored)),
		zap.Int("visible", len(visible)),
		zap.Int("accessLevel", int(caller.Level)))
	return visible, nil
}

func (s *Service) log(ctx context.Context, caller Caller, req QueryRequest, route, body string) error {
	_, err := s.ledger.Append(ctx, history.AppendParams{
		UserID:       caller.UserID,
		SessionID:    req.SessionID,
		Route:        route,
		QueryText:    req.Query,
		ResponseText: body,
		IPAddress:    caller.IP,
	})
	return err
}

// allLimited reports whether no disclosed chunk reaches the FULL tier.
func allLimited(visible []ResolvedChunk) bool {
	for i := range visible {
		if visible[i].Tier == policy.TierFull {
			return false
		}
	}
	return true
}

func highestTier(visible []ResolvedChunk) policy.DisclosureTier {
	highest := policy.TierNone
	for i := range visible {
		if visible[i].Tier > highest {
			highest = visible[i].Tier
		}
	}
	return highest
}
