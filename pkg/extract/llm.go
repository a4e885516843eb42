package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"
	openai "github.com/sashabaranov/go-openai"

	"github.com/soundprediction/graphgen/pkg/types"
)

const relationSystemPrompt = `You extract relation triplets from a sentence.
Return strict JSON: {"triplets": [{"subject": "...", "predicate": "...", "object": "..."}]}.
Subjects and objects are entity names exactly as written in the sentence.
Predicates are short lowercase verb phrases with underscores, e.g. "works_at".
Return {"triplets": []} when the sentence contains no relation.`

// LLMConfig configures the LLM-backed relation extractor.
type LLMConfig struct {
	Model       string  `json:"model"`
	APIKey      string  `json:"api_key"`
	BaseURL     string  `json:"base_url,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

// LLMRelationExtractor extracts triplets by asking an OpenAI-compatible chat
// model. Model output is passed through jsonrepair before parsing since chat
// models routinely emit almost-JSON.
type LLMRelationExtractor struct {
	client *openai.Client
	config LLMConfig
}

// NewLLMRelationExtractor creates an extractor for the configured model.
func NewLLMRelationExtractor(config LLMConfig) *LLMRelationExtractor {
	if config.Model == "" {
		config.Model = openai.GPT4oMini
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &LLMRelationExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

type tripletResponse struct {
	Triplets []types.Triplet `json:"triplets"`
}

// Relations asks the model for triplets in the sentence.
func (e *LLMRelationExtractor) Relations(ctx context.Context, sentence string) ([]types.Triplet, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.config.Model,
		Temperature: e.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: relationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: sentence},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("relation extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("relation extraction returned no choices")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)
	if repaired, err := jsonrepair.JSONRepair(content); err == nil {
		content = repaired
	}

	var parsed tripletResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse triplet response: %w", err)
	}

	return types.DedupeTriplets(parsed.Triplets), nil
}

// Close implements RelationExtractor.
func (e *LLMRelationExtractor) Close() error { return nil }

// stripCodeFence removes a surrounding markdown code fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
