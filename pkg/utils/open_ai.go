package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// wrappedResultKey holds non-object schemas; OpenAI only accepts an object at the root.
const wrappedResultKey = "result"

// OpenAIClient implements AIClientInterface against any OpenAI-compatible chat API.
// Search grounding is not available, so Sources are always empty.
type OpenAIClient struct {
	client *openai.Client
	http   *http.Client
	model  string
}

// NewOpenAIClient builds a client for baseURL (the public API when empty).
// timeout bounds the wait for response headers, as for the Gemini client.
func NewOpenAIClient(apiKey, model, baseURL string, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	httpClient := newBackendHTTPClient(timeout)
	cfg.HTTPClient = httpClient
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), http: httpClient, model: model}, nil
}

type jsonSchemaDoc map[string]any

func (d jsonSchemaDoc) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(d))
}

func (c *OpenAIClient) buildRequest(req AIRequest) (openai.ChatCompletionRequest, bool) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, msg := range req.History {
		role := openai.ChatMessageRoleUser
		if msg.Role == AIRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Text})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	out := openai.ChatCompletionRequest{Model: c.model, Messages: messages}
	if req.Schema == nil {
		return out, false
	}

	schema := req.Schema
	wrapped := schema.Type != TypeObject
	if wrapped {
		schema = ObjectSchema(map[string]*Schema{wrappedResultKey: schema}, wrappedResultKey)
	}
	out.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   "travel_result",
			Schema: jsonSchemaDoc(schema.JSONSchema()),
		},
	}
	return out, wrapped
}

func (c *OpenAIClient) Generate(ctx context.Context, req AIRequest) (*AIResponse, error) {
	chatReq, wrapped := c.buildRequest(req)

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %v", ErrAIUnavailable, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, ErrEmptyAIResponse
	}

	text := resp.Choices[0].Message.Content
	if wrapped {
		text = unwrapResult(text)
	}
	return &AIResponse{Text: text}, nil
}

// unwrapResult returns the value under wrappedResultKey, or the text unchanged.
func unwrapResult(text string) string {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(CleanJSONResponse(text)), &envelope); err != nil {
		return text
	}
	if inner, ok := envelope[wrappedResultKey]; ok {
		return string(inner)
	}
	return text
}

func (c *OpenAIClient) GenerateStream(ctx context.Context, req AIRequest) (AIStream, error) {
	chatReq, _ := c.buildRequest(req)
	chatReq.ResponseFormat = nil
	chatReq.Stream = true

	stream, err := c.client.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%w: openai stream: %v", ErrAIUnavailable, err)
	}
	return &openAIStream{stream: stream}, nil
}

func (c *OpenAIClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (AIChunk, error) {
	resp, err := s.stream.Recv()
	if errors.Is(err, io.EOF) {
		return AIChunk{}, io.EOF
	}
	if err != nil {
		return AIChunk{}, fmt.Errorf("%w: openai stream: %v", ErrAIUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return AIChunk{}, nil
	}
	return AIChunk{Text: resp.Choices[0].Delta.Content}, nil
}

func (s *openAIStream) Close() error {
	s.stream.Close()
	return nil
}
