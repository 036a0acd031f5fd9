package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-3-flash-preview"

// GeminiSDKClient implements AIClientInterface with the generative-ai-go SDK.
// That SDK cannot enable search grounding, so Sources come from citation
// metadata only. It talks gRPC: timeout bounds a whole unary call but only the
// first response of a stream.
type GeminiSDKClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiSDKClient creates a new Gemini client
func NewGeminiSDKClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiSDKClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSDKClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// prepare builds a fresh model per request; GenerativeModel settings are not safe to share.
func (c *GeminiSDKClient) prepare(req AIRequest) *genai.GenerativeModel {
	m := c.client.GenerativeModel(c.model)
	if req.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if req.Schema != nil {
		m.ResponseMIMEType = "application/json"
		m.ResponseSchema = toGenaiSchema(req.Schema)
	}
	return m
}

func (c *GeminiSDKClient) Generate(ctx context.Context, req AIRequest) (*AIResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	m := c.prepare(req)

	var (
		resp *genai.GenerateContentResponse
		err  error
	)
	if len(req.History) > 0 {
		cs := m.StartChat()
		cs.History = toGenaiHistory(req.History)
		resp, err = cs.SendMessage(ctx, genai.Text(req.Prompt))
	} else {
		resp, err = m.GenerateContent(ctx, genai.Text(req.Prompt))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: gemini generate content: %v", ErrAIUnavailable, err)
	}

	text, sources := fromGenaiResponse(resp)
	if text == "" {
		return nil, ErrEmptyAIResponse
	}
	return &AIResponse{Text: text, Sources: sources}, nil
}

func (c *GeminiSDKClient) GenerateStream(ctx context.Context, req AIRequest) (AIStream, error) {
	m := c.prepare(req)
	streamCtx, cancel := context.WithCancel(ctx)

	var it *genai.GenerateContentResponseIterator
	if len(req.History) > 0 {
		cs := m.StartChat()
		cs.History = toGenaiHistory(req.History)
		it = cs.SendMessageStream(streamCtx, genai.Text(req.Prompt))
	} else {
		it = m.GenerateContentStream(streamCtx, genai.Text(req.Prompt))
	}

	s := &geminiSDKStream{it: it, cancel: cancel}
	var watchdog *time.Timer
	if c.timeout > 0 {
		watchdog = time.AfterFunc(c.timeout, cancel)
	}
	first, err := it.Next()
	if watchdog != nil && !watchdog.Stop() && err == nil {
		err = context.DeadlineExceeded
	}
	switch {
	case errors.Is(err, iterator.Done):
		s.ended = true
	case err != nil:
		cancel()
		return nil, fmt.Errorf("%w: gemini stream: %v", ErrAIUnavailable, err)
	default:
		s.first = first
	}
	return s, nil
}

// Close closes the Gemini client
func (c *GeminiSDKClient) Close() error {
	return c.client.Close()
}

type geminiSDKStream struct {
	it     *genai.GenerateContentResponseIterator
	cancel context.CancelFunc
	first  *genai.GenerateContentResponse
	ended  bool
}

func (s *geminiSDKStream) Recv() (AIChunk, error) {
	if s.first != nil {
		text, sources := fromGenaiResponse(s.first)
		s.first = nil
		return AIChunk{Text: text, Sources: sources}, nil
	}
	if s.ended {
		return AIChunk{}, io.EOF
	}
	resp, err := s.it.Next()
	if errors.Is(err, iterator.Done) {
		s.ended = true
		return AIChunk{}, io.EOF
	}
	if err != nil {
		s.ended = true
		return AIChunk{}, fmt.Errorf("%w: gemini stream: %v", ErrAIUnavailable, err)
	}
	text, sources := fromGenaiResponse(resp)
	return AIChunk{Text: text, Sources: sources}, nil
}

func (s *geminiSDKStream) Close() error {
	s.cancel()
	return nil
}

func toGenaiHistory(history []AIMessage) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == AIRoleAssistant {
			role = "model"
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(msg.Text)}})
	}
	return out
}

func fromGenaiResponse(resp *genai.GenerateContentResponse) (string, []Source) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}
	cand := resp.Candidates[0]

	var text strings.Builder
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text.WriteString(string(txt))
			}
		}
	}

	var sources []Source
	if cand.CitationMetadata != nil {
		for _, cs := range cand.CitationMetadata.CitationSources {
			if cs == nil || cs.URI == nil || *cs.URI == "" {
				continue
			}
			sources = append(sources, Source{URI: *cs.URI, Kind: "web"})
		}
	}
	return text.String(), sources
}

func toGenaiSchema(s *Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        toGenaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func toGenaiType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	case TypeNumber:
		return genai.TypeNumber
	case TypeInteger:
		return genai.TypeInteger
	case TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
