package utils

import "context"

type AIRole string

const (
	AIRoleUser      AIRole = "user"
	AIRoleAssistant AIRole = "assistant"
)

type AIMessage struct {
	Role AIRole
	Text string
}

// AIRequest is one provider-neutral round trip. History is sent before Prompt,
// Schema switches the backend into JSON mode and Search asks for grounded answers.
type AIRequest struct {
	System  string
	History []AIMessage
	Prompt  string
	Schema  *Schema
	Search  bool
}

// Source is a grounding reference attached by the backend to an answer.
type Source struct {
	Title string
	URI   string
	Kind  string // "web" or "maps"
}

type AIResponse struct {
	Text    string
	Sources []Source
}

type AIChunk struct {
	Text    string
	Sources []Source
}

// AIStream is a pull-based sequence of chunks as they arrive over the network.
// Recv returns io.EOF after the last chunk. Close releases the upstream request.
type AIStream interface {
	Recv() (AIChunk, error)
	Close() error
}

// AIClientInterface is implemented by every generative backend the gateway can talk to.
type AIClientInterface interface {
	Generate(ctx context.Context, req AIRequest) (*AIResponse, error)
	GenerateStream(ctx context.Context, req AIRequest) (AIStream, error)
	Close() error
}
