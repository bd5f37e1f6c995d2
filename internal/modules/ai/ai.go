// Package ai wraps the external embedding and generative model providers.
// Both handles are expensive to construct, so they are built lazily exactly
// once and shared read-mostly across all requests.
package ai

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
	"go.uber.org/zap"

	appcfg "github.com/bankbot/core/internal/config"
	pkgredis "github.com/bankbot/core/internal/pkg/redis"
)

// ProviderError marks a failure of an upstream model or embedding call.
// The pipeline never retries these; the boundary layer decides the
// user-visible status.
type ProviderError struct {
	Op  string // "embed" | "generate"
	Err error
}

func (e *ProviderError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }

// Service holds the lazily-initialized provider handles.
type Service struct {
	cfg    appcfg.AIConfig
	cache  *pkgredis.Client
	logger *zap.Logger

	modelOnce sync.Once
	model     jetapi.LanguageModel
	modelErr  error

	embedOnce   sync.Once
	embedClient openaiclient.Client
	embedErr    error
}

// NewService creates the provider service. cache may be nil, in which case
// query embeddings are not cached.
func NewService(cfg appcfg.AIConfig, cache *pkgredis.Client, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, cache: cache, logger: logger.Named("AIService")}
}

// Generate produces a completion for the given prompt. The call inherits
// the request context plus the configured provider timeout; a timeout
// aborts the pipeline before any history is written.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	s.modelOnce.Do(func() {
		s.model, s.modelErr = buildLanguageModel(s.cfg.Provider)
	})
	if s.modelErr != nil {
		return "", &ProviderError{Op: "generate", Err: s.modelErr}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := jetai.GenerateText(
		ctx,
		[]jetapi.Message{&jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)}},
		jetai.WithModel(s.model),
		jetai.WithMaxOutputTokens(1024),
	)
	if err != nil {
		return "", &ProviderError{Op: "generate", Err: err}
	}

	text, err := extractText(resp)
	if err != nil {
		return "", &ProviderError{Op: "generate", Err: err}
	}
	return text, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func extractText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", errors.New("empty response from model")
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := strings.TrimSpace(full.String())
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

func buildLanguageModel(provider appcfg.AIProvider) (jetapi.LanguageModel, error) {
	apiKey := strings.TrimSpace(provider.APIKey)
	if apiKey == "" {
		return nil, errors.New("ai provider api key is empty")
	}

	modelID := strings.TrimSpace(provider.DefaultModel)
	providerType := strings.ToLower(strings.TrimSpace(provider.Type))
	endpoint := strings.TrimSpace(provider.Endpoint)

	if providerType == "anthropic" {
		if modelID == "" {
			modelID = "claude-haiku-4-5-20251001"
		}

		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}

		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), nil
	}

	if providerType != "" && providerType != "openai" {
		return nil, fmt.Errorf("unsupported ai provider type %q", provider.Type)
	}

	if modelID == "" {
		modelID = "gpt-4o-mini"
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}

	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), nil
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		if path == "" {
			path = "/v1"
		} else {
			path += "/v1"
		}
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
