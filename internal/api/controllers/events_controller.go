package controllers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"yatrojana/internal/events"
	"yatrojana/pkg/utils"

	"github.com/gin-gonic/gin"
)

type EventSubscriber interface {
	Subscribe(topics ...events.Topic) (<-chan events.Event, func())
}

type EventsController struct {
	bus       EventSubscriber
	keepalive time.Duration
}

func NewEventsController(bus EventSubscriber) *EventsController {
	return &EventsController{bus: bus, keepalive: 25 * time.Second}
}

// Stream relays bus events as SSE, one event name per topic.
// GET /api/events?topics=set-destination,open-chat
func (e *EventsController) Stream(c *gin.Context) {
	var topics []events.Topic
	for _, raw := range strings.Split(c.Query("topics"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		topic := events.Topic(raw)
		if !topic.Known() {
			utils.RespondError(c, http.StatusBadRequest, "Unknown topic "+raw)
			return
		}
		topics = append(topics, topic)
	}

	ch, cancel := e.bus.Subscribe(topics...)
	defer cancel()

	ctx := c.Request.Context()
	ticker := time.NewTicker(e.keepalive)
	defer ticker.Stop()

	prepareSSE(c)
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Topic), ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", "")
			return true
		case <-ctx.Done():
			return false
		}
	})
}
