package rag

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/bankbot/core/internal/models"
	"github.com/bankbot/core/internal/modules/history"
	"github.com/bankbot/core/internal/modules/policy"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	return f.vec, f.err
}

type fakeGenerator struct {
	calls   int
	prompts []string
	answer  string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

type fakeSearcher struct {
	result     []ScoredChunk
	err        error
	categories []policy.DocumentCategory
}

func (f *fakeSearcher) Search(_ context.Context, _ []float32, categories []policy.DocumentCategory, _ int) ([]ScoredChunk, error) {
	f.categories = categories
	return f.result, f.err
}

type fakeRecorder struct {
	entries []history.AppendParams
	err     error
}

func (f *fakeRecorder) Append(_ context.Context, params history.AppendParams) (*models.QueryHistoryModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.entries = append(f.entries, params)
	return &models.QueryHistoryModel{SessionID: params.SessionID}, nil
}

func testChunk(id string, category policy.DocumentCategory, full, summary string) models.DocumentChunkModel {
	chunk := models.DocumentChunkModel{
		Category:         string(category),
		Entity:           "Acme Bank",
		MainSectionTitle: "Section " + id,
		ContentFull:      full,
		ContentSummary:   summary,
	}
	chunk.ID = id
	return chunk
}

func newTestService(embedder Embedder, gen Generator, store Searcher, ledger Recorder) *Service {
	return NewService(zap.NewNop(), embedder, gen, store, ledger, 3)
}

func TestAnswerDisclosureOnlySkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{answer: "should never appear"}
	ledger := &fakeRecorder{}
	store := &fakeSearcher{result: []ScoredChunk{
		{Chunk: testChunk("a", policy.CategoryRegulatoryDocs, "full a", "summary a"), Distance: 0.1},
		{Chunk: testChunk("b", policy.CategoryRegulatoryDocs, "full b", "summary b"), Distance: 0.2},
	}}
	svc := newTestService(&fakeEmbedder{vec: []float32{1}}, gen, store, ledger)

	caller := Caller{UserID: "u1", Level: policy.LevelInternal}
	resp, err := svc.Answer(context.Background(), caller, QueryRequest{Query: "what are the limits?"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times on the disclosure-only path", gen.calls)
	}
	want := "[[1]] summary a\n*Citation: Acme Bank – Section a*\n\n" +
		"[[2]] summary b\n*Citation: Acme Bank – Section b*"
	if resp.Answer != want {
		t.Fatalf("answer =\n%q\nwant\n%q", resp.Answer, want)
	}
	if len(ledger.entries) != 1 || ledger.entries[0].Route != models.RouteAnswer {
		t.Fatalf("ledger entries = %+v, want one answer entry", ledger.entries)
	}
}

func TestAnswerGenerativePathCallsModelOnce(t *testing.T) {
	gen := &fakeGenerator{answer: "The limit is 500 EUR [1]."}
	ledger := &fakeRecorder{}
	store := &fakeSearcher{result: []ScoredChunk{
		{Chunk: testChunk("a", policy.CategoryInternalProcedures, "full a", "summary a"), Distance: 0.1},
		{Chunk: testChunk("b", policy.CategoryRegulatoryDocs, "full b", "summary b"), Distance: 0.2},
	}}
	svc := newTestService(&fakeEmbedder{vec: []float32{1}}, gen, store, ledger)

	caller := Caller{UserID: "u1", Level: policy.LevelInternal}
	resp, err := svc.Answer(context.Background(), caller, QueryRequest{Query: "what are the limits?"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want exactly 1", gen.calls)
	}
	if resp.Answer != gen.answer {
		t.Fatalf("answer = %q", resp.Answer)
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "[[1]] full a") || !strings.Contains(prompt, "what are the limits?") {
		t.Fatalf("prompt missing context or question:\n%s", prompt)
	}
	if resp.GrantedTier != policy.TierFull {
		t.Fatalf("granted tier = %v, want full", resp.GrantedTier)
	}
}

func TestAnswerForbiddenWhenNothingDisclosable(t *testing.T) {
	gen := &fakeGenerator{}
	ledger := &fakeRecorder{}
	store := &fakeSearcher{result: []ScoredChunk{
		{Chunk: testChunk("a", policy.CategoryInvestigationReports, "secret", "secret"), Distance: 0.1},
	}}
	svc := newTestService(&fakeEmbedder{vec: []float32{1}}, gen, store, ledger)

	_, err := svc.Answer(context.Background(), Caller{UserID: "u1", Level: policy.LevelConfidential}, QueryRequest{Query: "q"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if gen.calls != 0 || len(ledger.entries) != 0 {
		t.Fatal("no generation and no ledger entry expected on the forbidden path")
	}
}

func TestAnswerNotFoundWhenNoCandidates(t *testing.T) {
	ledger := &fakeRecorder{}
	svc := newTestService(&fakeEmbedder{vec: []float32{1}}, &fakeGenerator{}, &fakeSearcher{}, ledger)

	_, err := svc.Answer(context.Background(), Caller{UserID: "u1", Level: policy.LevelExecutive}, QueryRequest{Query: "q"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(ledger.entries) != 0 {
		t.Fatal("no ledger entry expected when retrieval is empty")
	}
}

func TestAnswerNoLedgerEntryWhenGenerationFails(t *testing.T) {
	genErr := errors.New("upstream broke")
	ledger := &fakeRecorder{}
	store := &fakeSearcher{result: []ScoredChunk{
		{Chunk: testChunk("a", policy.CategoryInternalProcedures, "full a", ""), Distance: 0.1},
	}}
	svc := newTestService(&fakeEmbedder{vec: []float32{1}}, &fakeGenerator{err: genErr}, store, ledger)

	_, err := svc.Answer(context.Background(), Caller{UserID: "u1", Level: policy.LevelInternal}, QueryRequest{Query: "q"})
	if !errors.Is(err, genErr) {
		t.Fatalf("err = %v, want generation error", err)
	}
	if len(ledger.entries) != 0 {
		t.Fatal("ledger must only be written once an answer body exists")
	}
}

func TestRetrieveAppliesDisclosureAndLogs(t *testing.T) {
	ledger := &fakeRecorder{}
	store := &fakeSearcher{result: []ScoredChunk{
		{Chunk: testChunk("a", policy.CategoryRegulatoryDocs, "full a", "summary a"), Distance: 0.3},
		{Chunk: testChunk("b", policy.CategoryRiskModels, "full b", "summary b"), Distance: 0.4},
	}}
	svc := newTestService(&fakeEmbedder{vec: []float32{1}}, &fakeGenerator{}, store, ledger)

	caller := Caller{UserID: "u1", Level: policy.LevelConfidential, IP: "10.0.0.1"}
	resp, err := svc.Retrieve(context.Background(), caller, QueryRequest{Query: "q", SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(resp.Chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(resp.Chunks))
	}
	// Regulatory Docs resolves to the RELEVANT rendition at level 3, Risk
	// Models to the full text.
	if resp.Chunks[0].Content != "summary a" || resp.Chunks[1].Content != "full b" {
		t.Fatalf("contents = %q, %q", resp.Chunks[0].Content, resp.Chunks[1].Content)
	}
	if resp.Chunks[0].Citation != "Acme Bank – Section a" {
		t.Fatalf("citation = %q", resp.Chunks[0].Citation)
	}
	if len(ledger.entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(ledger.entries))
	}
	entry := ledger.entries[0]
	if entry.Route != models.RouteRetrieve || entry.SessionID != "s-1" || entry.IPAddress != "10.0.0.1" {
		t.Fatalf("ledger entry = %+v", entry)
	}
}

func TestSearchScopedToAllowedCategories(t *testing.T) {
	store := &fakeSearcher{result: []ScoredChunk{
		{Chunk: testChunk("a", policy.CategoryPublicProductInfo, "full a", ""), Distance: 0.1},
	}}
	svc := newTestService(&fakeEmbedder{vec: []float32{1}}, &fakeGenerator{answer: "ok"}, store, &fakeRecorder{})

	_, err := svc.Answer(context.Background(), Caller{UserID: "u1", Level: policy.LevelInternal}, QueryRequest{Query: "q"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	want := policy.AllowedCategories(policy.LevelInternal)
	if !reflect.DeepEqual(store.categories, want) {
		t.Fatalf("search categories = %v, want %v", store.categories, want)
	}
}
