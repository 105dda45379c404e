package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"hash/fnv"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// DreamInterpretation is the structured payload both providers must return.
type DreamInterpretation struct {
	Summary string `json:"summary"`
	Symbols []struct {
		Name    string `json:"name"`
		Meaning string `json:"meaning"`
	} `json:"symbols"`
	Emotions []string `json:"emotions"`
	Guidance string `json:"guidance"`
}

type DreamAIClient interface {
	InterpretDream(ctx context.Context, narrative, mood, question string) (*DreamInterpretation, error)

	// Transcribe converts a voice memo into text. filename is only used to
	// hint the container format to the provider.
	Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error)

	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

const interpretationSchema = `
{
  "summary": "string, 2-4 sentences",
  "symbols": [{"name":"string","meaning":"string"}],
  "emotions": ["string"],
  "guidance": "string, one short reflective suggestion"
}`

func interpretationPrompt(narrative, mood, question string) string {
	var b strings.Builder
	b.WriteString("You are a thoughtful dream analyst. Interpret the dream below and return **JSON only** matching this schema exactly:\n")
	b.WriteString(interpretationSchema)
	b.WriteString("\n\nDream narrative:\n")
	b.WriteString(narrative)
	if mood != "" {
		fmt.Fprintf(&b, "\n\nMood on waking: %s", mood)
	}
	if question != "" {
		fmt.Fprintf(&b, "\n\nThe dreamer specifically asks: %s", question)
	}
	b.WriteString("\n\nReturn JSON only. No comments, no markdown.")
	return b.String()
}

// ------------------- OpenAI -------------------

type OpenAIDreamClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIDreamClient(apiKey, model string) *OpenAIDreamClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIDreamClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIDreamClient) InterpretDream(ctx context.Context, narrative, mood, question string) (*DreamInterpretation, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.4,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: interpretationPrompt(narrative, mood, question),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat: empty response")
	}

	content := CleanJSONResponse(resp.Choices[0].Message.Content)
	var out DreamInterpretation
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("openai chat: bad json: %w", err)
	}
	return &out, nil
}

func (c *OpenAIDreamClient) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: language,
	})
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	return resp.Text, nil
}

func (c *OpenAIDreamClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: %w", err)
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

// ------------------- Gemini -------------------

type GeminiDreamClient struct {
	client *genai.Client
	model  string
}

func NewGeminiDreamClient(apiKey, model string) (*GeminiDreamClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiDreamClient{client: client, model: model}, nil
}

func (c *GeminiDreamClient) InterpretDream(ctx context.Context, narrative, mood, question string) (*DreamInterpretation, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.4)

	resp, err := m.GenerateContent(ctx, genai.Text(interpretationPrompt(narrative, mood, question)))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: no content")
	}

	content := CleanJSONResponse(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	var out DreamInterpretation
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("gemini: bad json: %w", err)
	}
	return &out, nil
}

func (c *GeminiDreamClient) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error) {
	return "", fmt.Errorf("gemini provider does not support transcription")
}

// GetEmbedding falls back to a hash-based vector since the free Gemini tier has
// no dedicated embedding endpoint. Matches the 1536-dim openai space in shape
// only, not semantics.
func (c *GeminiDreamClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return hashVector(text), nil
}

func (c *GeminiDreamClient) Close() error {
	return c.client.Close()
}

func hashVector(text string) pgvector.Vector {
	const dimensions = 1536

	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	vector := make([]float32, dimensions)

	for _, word := range words {
		h := fnv.New32a()
		h.Write([]byte(word))
		hash := h.Sum32()
		for i := 0; i < dimensions; i++ {
			vector[i] += float32(math.Sin(float64(hash+uint32(i))) * 0.1)
		}
	}

	var magnitude float32
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))
	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

// CleanJSONResponse strips markdown fences and prose around a JSON body.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := matchingDelim(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := matchingDelim(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

func matchingDelim(s string, start int, opening, closing byte) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// NewDreamAIClient picks the provider from config.
func NewDreamAIClient(provider, apiKey, model string) (DreamAIClient, error) {
	switch strings.ToLower(provider) {
	case "openai", "":
		return NewOpenAIDreamClient(apiKey, model), nil
	case "gemini":
		return NewGeminiDreamClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
