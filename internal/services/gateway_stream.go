package services

import (
	"errors"
	"io"
	"strings"

	"yatrojana/internal/models/response_models"
	"yatrojana/pkg/utils"

	"go.uber.org/zap"
)

// ItineraryStream yields itinerary text deltas in arrival order. It is
// single-use and not safe for concurrent Next calls.
type ItineraryStream struct {
	upstream  utils.AIStream
	logger    *zap.Logger
	grounding []response_models.Attribution
	degraded  bool
	done      bool
}

func newItineraryStream(upstream utils.AIStream, logger *zap.Logger) *ItineraryStream {
	return &ItineraryStream{upstream: upstream, logger: logger, grounding: []response_models.Attribution{}}
}

func failedItineraryStream() *ItineraryStream {
	return &ItineraryStream{grounding: []response_models.Attribution{}, degraded: true, done: true}
}

// Next blocks until the next chunk arrives. It returns false once the
// sequence is over, after which the stream is closed.
func (s *ItineraryStream) Next() (response_models.ItineraryChunk, bool) {
	for !s.done {
		chunk, err := s.upstream.Recv()
		if err != nil {
			s.fail(err)
			return response_models.ItineraryChunk{}, false
		}
		if len(chunk.Sources) > 0 {
			s.grounding = toAttribution(chunk.Sources)
		}
		if chunk.Text == "" && len(chunk.Sources) == 0 {
			continue
		}
		return response_models.ItineraryChunk{Delta: chunk.Text, Grounding: s.grounding}, true
	}
	return response_models.ItineraryChunk{}, false
}

func (s *ItineraryStream) fail(err error) {
	if !errors.Is(err, io.EOF) {
		s.degraded = true
		s.logger.Warn("itinerary stream ended early", zap.Error(err))
	}
	s.Close()
}

// Grounding is the latest attribution list seen so far.
func (s *ItineraryStream) Grounding() []response_models.Attribution {
	return s.grounding
}

// Degraded reports whether the backend failed before the sequence completed.
func (s *ItineraryStream) Degraded() bool {
	return s.degraded
}

// Close stops the upstream request. It is safe to call more than once.
func (s *ItineraryStream) Close() {
	if s.done {
		return
	}
	s.done = true
	if s.upstream != nil {
		_ = s.upstream.Close()
	}
}

// ChatReplyStream yields the cumulative reply: every chunk holds the full
// text so far and replaces the previous one.
type ChatReplyStream struct {
	upstream utils.AIStream
	logger   *zap.Logger
	text     strings.Builder
	degraded bool
	done     bool
}

func newChatReplyStream(upstream utils.AIStream, logger *zap.Logger) *ChatReplyStream {
	return &ChatReplyStream{upstream: upstream, logger: logger}
}

func failedChatReplyStream() *ChatReplyStream {
	return &ChatReplyStream{degraded: true, done: true}
}

func (s *ChatReplyStream) Next() (response_models.ChatReplyChunk, bool) {
	for !s.done {
		chunk, err := s.upstream.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.degraded = true
				s.logger.Warn("chat stream ended early", zap.Error(err))
			}
			s.Close()
			break
		}
		if chunk.Text == "" {
			continue
		}
		s.text.WriteString(chunk.Text)
		return response_models.ChatReplyChunk{Text: s.text.String()}, true
	}
	return response_models.ChatReplyChunk{}, false
}

// Text is the reply accumulated so far.
func (s *ChatReplyStream) Text() string {
	return s.text.String()
}

func (s *ChatReplyStream) Degraded() bool {
	return s.degraded
}

func (s *ChatReplyStream) Close() {
	if s.done {
		return
	}
	s.done = true
	if s.upstream != nil {
		_ = s.upstream.Close()
	}
}
