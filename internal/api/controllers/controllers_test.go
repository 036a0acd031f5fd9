package controllers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"yatrojana/internal/events"
	"yatrojana/internal/services"
	mem "yatrojana/pkg/memcache"
	"yatrojana/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAI struct {
	mu     sync.Mutex
	calls  int
	reply  string
	chunks []string
}

func (s *stubAI) Generate(ctx context.Context, req utils.AIRequest) (*utils.AIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.reply == "" {
		return nil, utils.ErrAIUnavailable
	}
	return &utils.AIResponse{Text: s.reply}, nil
}

func (s *stubAI) GenerateStream(ctx context.Context, req utils.AIRequest) (utils.AIStream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return &stubStream{chunks: s.chunks}, nil
}

func (s *stubAI) Close() error { return nil }

func (s *stubAI) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubStream struct {
	chunks []string
	pos    int
}

func (s *stubStream) Recv() (utils.AIChunk, error) {
	if s.pos >= len(s.chunks) {
		return utils.AIChunk{}, io.EOF
	}
	s.pos++
	return utils.AIChunk{Text: s.chunks[s.pos-1]}, nil
}

func (s *stubStream) Close() error { return nil }

type testEnv struct {
	server *httptest.Server
	bus    *events.Bus
}

func newTestEnv(t *testing.T, ai *stubAI) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bus := events.NewBus(nil)
	gateway := services.NewTravelGateway(ai, nil)
	travel := NewTravelController(services.NewSearchService(gateway, nil), gateway)
	chat := NewChatController(services.NewChatService(gateway, mem.NewChatSessions(time.Hour), nil))
	discovery := NewDiscoveryController(services.NewDiscoveryService(gateway, bus, nil))
	eventsCtl := NewEventsController(bus)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/search", travel.Search)
	api.POST("/itinerary/stream", travel.StreamItinerary)
	api.POST("/trains", travel.Trains)
	api.POST("/lodging", travel.Lodging)
	api.POST("/cabs", travel.Cabs)
	api.GET("/destinations/:name", discovery.DestinationDetails)
	api.GET("/discovery/trending", discovery.Trending)
	api.POST("/discovery/select", discovery.SelectDestination)
	api.GET("/events", eventsCtl.Stream)
	api.POST("/chat/sessions", chat.CreateSession)
	api.GET("/chat/sessions/:id", chat.GetSession)
	api.POST("/chat/sessions/:id/messages", chat.SendMessage)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, bus: bus}
}

func (e *testEnv) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) (utils.APIResponse, json.RawMessage) {
	t.Helper()
	var env struct {
		utils.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env.APIResponse, env.Data
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestSearchRejectsEmptyDestination(t *testing.T) {
	ai := &stubAI{reply: `{"hotels":[]}`}
	env := newTestEnv(t, ai)

	resp := env.post(t, "/api/search", `{"query":{"destination":"","mode":"Hotel"}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, ai.callCount())

	resp = env.post(t, "/api/search", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrainsEndpointEmptyResult(t *testing.T) {
	env := newTestEnv(t, &stubAI{reply: `{"trains":[]}`})

	resp := env.post(t, "/api/trains", `{"from":"Mumbai","to":"Goa"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, data := decodeEnvelope(t, resp)
	assert.Equal(t, "success", body.Status)
	assert.JSONEq(t, `{"trains":[],"alternatives":null,"grounding":[]}`, string(data))

	resp = env.post(t, "/api/trains", `{"from":"Mumbai"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBackendFailureStillReturnsSuccess(t *testing.T) {
	env := newTestEnv(t, &stubAI{})

	resp := env.post(t, "/api/cabs", `{"from":"Panaji","to":"Calangute"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, data := decodeEnvelope(t, resp)

	var cab struct {
		Distance     string            `json:"distance"`
		Estimates    []any             `json:"estimates"`
		BookingLinks []json.RawMessage `json:"booking_links"`
	}
	require.NoError(t, json.Unmarshal(data, &cab))
	assert.Equal(t, "N/A", cab.Distance)
	assert.NotNil(t, cab.Estimates)
	assert.Len(t, cab.BookingLinks, 2)

	resp = env.get(t, "/api/destinations/Goa")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, data = decodeEnvelope(t, resp)
	assert.Equal(t, "null", string(data))

	resp = env.post(t, "/api/lodging", `{"location":"Goa","budget_tier":"Pricey"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrendingEndpointFallsBack(t *testing.T) {
	env := newTestEnv(t, &stubAI{reply: "no idea"})

	resp := env.get(t, "/api/discovery/trending?month=June&lat=abc")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, data := decodeEnvelope(t, resp)
	assert.JSONEq(t, `{"month":"June","cities":["Manali","Goa","Munnar","Jaipur","Rishikesh","Ooty"]}`, string(data))
}

func TestItineraryStream(t *testing.T) {
	env := newTestEnv(t, &stubAI{chunks: []string{"Day 1: Baga. ", "Day 2: Panjim."}})

	resp := env.post(t, "/api/itinerary/stream", `{"destination":"Goa","days":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	body := readAll(t, resp)
	assert.Equal(t, 2, strings.Count(body, "event:chunk"))
	assert.Contains(t, body, `"delta":"Day 1: Baga. "`)
	assert.Contains(t, body, "event:done")
	assert.Contains(t, body, `"degraded":false`)

	resp = env.post(t, "/api/itinerary/stream", `{"destination":"Goa","days":0}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body2, _ := decodeEnvelope(t, resp)
	assert.Contains(t, body2.Message, "invalid input")

	resp = env.post(t, "/api/itinerary/stream", `{"destination":"  ","days":3}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body2, _ = decodeEnvelope(t, resp)
	assert.Equal(t, "Destination is required", body2.Message)
}

func TestChatFlow(t *testing.T) {
	env := newTestEnv(t, &stubAI{chunks: []string{"Visit ", "Hampi."}})

	resp := env.post(t, "/api/chat/sessions", ``)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, data := decodeEnvelope(t, resp)
	var session struct {
		ID       string `json:"id"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(data, &session))
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "assistant", session.Messages[0].Role)

	resp = env.post(t, "/api/chat/sessions/"+session.ID+"/messages", `{"message":"Where to go?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readAll(t, resp)
	assert.Contains(t, body, `"text":"Visit "`)
	assert.Contains(t, body, `"text":"Visit Hampi."`)
	assert.Contains(t, body, "event:done")

	resp = env.get(t, "/api/chat/sessions/"+session.ID)
	_, data = decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(data, &session))
	assert.Len(t, session.Messages, 3)

	resp = env.post(t, "/api/chat/sessions/nope/messages", `{"message":"hi"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.post(t, "/api/chat/sessions/"+session.ID+"/messages", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventsRelay(t *testing.T) {
	env := newTestEnv(t, &stubAI{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.server.URL+"/api/events?topics=set-destination", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	sel := env.post(t, "/api/discovery/select", `{"destination":"Munnar"}`)
	require.Equal(t, http.StatusOK, sel.StatusCode)

	scanner := bufio.NewScanner(resp.Body)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if strings.HasPrefix(scanner.Text(), "data:") {
			break
		}
	}
	assert.Contains(t, lines, "event:set-destination")
	assert.Contains(t, lines[len(lines)-1], `"payload":"Munnar"`)

	bad := env.get(t, "/api/events?topics=weather")
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}
