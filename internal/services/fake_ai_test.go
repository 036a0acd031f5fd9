package services

import (
	"context"
	"io"
	"sync"

	"yatrojana/pkg/utils"
)

// fakeAI answers every Generate with reply/err and every GenerateStream with chunks.
type fakeAI struct {
	mu       sync.Mutex
	requests []utils.AIRequest

	reply   string
	sources []utils.Source
	err     error
	replyFn func(req utils.AIRequest) (*utils.AIResponse, error)

	chunks    []utils.AIChunk
	streamErr error // returned after the chunks instead of io.EOF
	openErr   error
	streams   []*sliceStream
}

func (f *fakeAI) record(req utils.AIRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
}

func (f *fakeAI) calls() []utils.AIRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]utils.AIRequest(nil), f.requests...)
}

func (f *fakeAI) Generate(ctx context.Context, req utils.AIRequest) (*utils.AIResponse, error) {
	f.record(req)
	if f.replyFn != nil {
		return f.replyFn(req)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &utils.AIResponse{Text: f.reply, Sources: f.sources}, nil
}

func (f *fakeAI) GenerateStream(ctx context.Context, req utils.AIRequest) (utils.AIStream, error) {
	f.record(req)
	if f.openErr != nil {
		return nil, f.openErr
	}
	s := &sliceStream{chunks: f.chunks, err: f.streamErr}
	f.mu.Lock()
	f.streams = append(f.streams, s)
	f.mu.Unlock()
	return s, nil
}

func (f *fakeAI) Close() error { return nil }

type sliceStream struct {
	chunks []utils.AIChunk
	err    error
	pos    int
	closed bool
}

func (s *sliceStream) Recv() (utils.AIChunk, error) {
	if s.pos < len(s.chunks) {
		c := s.chunks[s.pos]
		s.pos++
		return c, nil
	}
	if s.err != nil {
		return utils.AIChunk{}, s.err
	}
	return utils.AIChunk{}, io.EOF
}

func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}
