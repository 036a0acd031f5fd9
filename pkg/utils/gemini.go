package utils

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient is the default backend. It uses the google.golang.org/genai SDK,
// which can request the google_search tool and exposes groundingMetadata.
type GeminiClient struct {
	client *genai.Client
	http   *http.Client
	model  string
}

// NewGeminiClient connects to the Gemini API. baseURL is only set for tests or
// proxies; timeout bounds the wait for response headers.
func NewGeminiClient(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	httpClient := newBackendHTTPClient(timeout)
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(baseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, http: httpClient, model: model}, nil
}

func geminiContents(req AIRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, msg := range req.History {
		role := "user"
		if msg.Role == AIRoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: msg.Text}}})
	}
	return append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: req.Prompt}}})
}

func geminiConfig(req AIRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Search {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = geminiSchema(req.Schema)
	}
	return cfg
}

func geminiSchema(s *Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        geminiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if s.Items != nil {
		out.Items = geminiSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = geminiSchema(prop)
		}
	}
	return out
}

func geminiType(t SchemaType) genai.Type {
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

// geminiChunk reads the first candidate's text parts and grounding chunks.
func geminiChunk(resp *genai.GenerateContentResponse) AIChunk {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return AIChunk{}
	}
	cand := resp.Candidates[0]

	var text strings.Builder
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			text.WriteString(p.Text)
		}
	}

	var sources []Source
	if cand.GroundingMetadata != nil {
		for _, gc := range cand.GroundingMetadata.GroundingChunks {
			switch {
			case gc == nil:
			case gc.Web != nil:
				sources = append(sources, Source{Title: gc.Web.Title, URI: gc.Web.URI, Kind: "web"})
			case gc.Maps != nil:
				sources = append(sources, Source{Title: gc.Maps.Title, URI: gc.Maps.URI, Kind: "maps"})
			}
		}
	}
	return AIChunk{Text: text.String(), Sources: sources}
}

func (c *GeminiClient) Generate(ctx context.Context, req AIRequest) (*AIResponse, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, geminiContents(req), geminiConfig(req))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini generate content: %v", ErrAIUnavailable, err)
	}

	chunk := geminiChunk(resp)
	if chunk.Text == "" {
		return nil, ErrEmptyAIResponse
	}
	return &AIResponse{Text: chunk.Text, Sources: chunk.Sources}, nil
}

// GenerateStream opens the stream and waits for its first response, so a
// backend that refuses the request fails here rather than on the first Recv.
func (c *GeminiClient) GenerateStream(ctx context.Context, req AIRequest) (AIStream, error) {
	ctx, cancel := context.WithCancel(ctx)
	seq := c.client.Models.GenerateContentStream(ctx, c.model, geminiContents(req), geminiConfig(req))
	next, stop := iter.Pull2(seq)

	s := &geminiStream{next: next, stop: stop, cancel: cancel}
	first, err, ok := next()
	if ok && err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: gemini stream: %v", ErrAIUnavailable, err)
	}
	s.first, s.primed, s.ended = first, true, !ok
	return s, nil
}

func (c *GeminiClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type geminiStream struct {
	next   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	cancel context.CancelFunc
	first  *genai.GenerateContentResponse
	primed bool
	ended  bool
}

func (s *geminiStream) Recv() (AIChunk, error) {
	if s.primed {
		s.primed = false
		if s.ended {
			return AIChunk{}, io.EOF
		}
		return geminiChunk(s.first), nil
	}
	if s.ended {
		return AIChunk{}, io.EOF
	}

	resp, err, ok := s.next()
	if !ok {
		s.ended = true
		return AIChunk{}, io.EOF
	}
	if err != nil {
		s.ended = true
		return AIChunk{}, fmt.Errorf("%w: gemini stream: %v", ErrAIUnavailable, err)
	}
	return geminiChunk(resp), nil
}

func (s *geminiStream) Close() error {
	s.ended = true
	s.stop()
	s.cancel()
	return nil
}
