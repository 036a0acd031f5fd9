package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"yatrojana/internal/models/response_models"
	mem "yatrojana/pkg/memcache"
	"yatrojana/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ChatGreeting      = "Namaste! I am Yatro, your personal travel assistant. How can I help you plan your dream trip today?"
	ChatFallbackReply = "I am having trouble connecting right now. Please try again later."
)

type ChatServiceInterface interface {
	CreateSession(ctx context.Context) response_models.ChatSession
	GetSession(ctx context.Context, id string) (response_models.ChatSession, error)
	DeleteSession(ctx context.Context, id string) error
	Send(ctx context.Context, id, message string) (*ChatReply, error)
}

type ChatService struct {
	gateway TravelGatewayInterface
	store   mem.ChatSessionStore
	logger  *zap.Logger
}

func NewChatService(gateway TravelGatewayInterface, store mem.ChatSessionStore, logger *zap.Logger) ChatServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{gateway: gateway, store: store, logger: logger.Named("chat")}
}

func (s *ChatService) CreateSession(ctx context.Context) response_models.ChatSession {
	session := response_models.ChatSession{
		ID:        uuid.NewString(),
		Messages:  []response_models.ChatMessage{{Role: response_models.ChatRoleAssistant, Text: ChatGreeting}},
		CreatedAt: time.Now().UTC(),
	}
	s.store.Put(session)
	return session
}

func (s *ChatService) GetSession(ctx context.Context, id string) (response_models.ChatSession, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return response_models.ChatSession{}, utils.ErrSessionNotFound
	}
	return session, nil
}

func (s *ChatService) DeleteSession(ctx context.Context, id string) error {
	if !s.store.Delete(id) {
		return utils.ErrSessionNotFound
	}
	return nil
}

// Send starts a reply to message. The session stays busy until the returned
// reply is drained or closed, and only then are both turns recorded.
func (s *ChatService) Send(ctx context.Context, id, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, utils.ErrEmptyMessage
	}
	// acquire before reading so the history includes every recorded turn
	if !s.store.Acquire(id) {
		if _, ok := s.store.Get(id); !ok {
			return nil, utils.ErrSessionNotFound
		}
		return nil, utils.ErrChatBusy
	}
	session, ok := s.store.Get(id)
	if !ok {
		s.store.Release(id)
		return nil, utils.ErrSessionNotFound
	}

	stream := s.gateway.StreamChatReply(ctx, session.Messages, message)
	return &ChatReply{
		sessionID: id,
		message:   message,
		stream:    stream,
		store:     s.store,
		logger:    s.logger,
	}, nil
}

// ChatReply is a cumulative reply bound to a session.
type ChatReply struct {
	sessionID string
	message   string
	stream    *ChatReplyStream
	store     mem.ChatSessionStore
	logger    *zap.Logger

	once     sync.Once
	finished bool
}

// Next returns the full reply so far. When the backend fails or answers with
// nothing, the final value is the fallback reply.
func (r *ChatReply) Next() (response_models.ChatReplyChunk, bool) {
	if r.finished {
		return response_models.ChatReplyChunk{}, false
	}
	if chunk, ok := r.stream.Next(); ok {
		return chunk, true
	}

	text := r.stream.Text()
	if r.stream.Degraded() || text == "" {
		r.finish(ChatFallbackReply)
		return response_models.ChatReplyChunk{Text: ChatFallbackReply}, true
	}
	r.finish(text)
	return response_models.ChatReplyChunk{}, false
}

// Close abandons the reply. Whatever text arrived is kept in the session.
func (r *ChatReply) Close() {
	r.stream.Close()
	r.finish(r.stream.Text())
}

func (r *ChatReply) finish(reply string) {
	r.once.Do(func() {
		r.finished = true
		turns := []response_models.ChatMessage{{Role: response_models.ChatRoleUser, Text: r.message}}
		if reply != "" {
			turns = append(turns, response_models.ChatMessage{Role: response_models.ChatRoleAssistant, Text: reply})
		}
		if !r.store.Append(r.sessionID, turns...) {
			r.logger.Warn("session vanished before reply was recorded", zap.String("session_id", r.sessionID))
		}
		r.store.Release(r.sessionID)
	})
}
