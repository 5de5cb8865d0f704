package handlers

import (
	"io"
	"net/http"
	"time"

	"repairdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 25 * time.Second

type streamObserver interface {
	StreamOpened()
	StreamClosed()
}

// EventsHandler streams job change events to dashboards over SSE.
type EventsHandler struct {
	jobs    usecase.IJobUseCase
	streams streamObserver
}

func NewEventsHandler(jobs usecase.IJobUseCase, streams streamObserver) *EventsHandler {
	return &EventsHandler{jobs: jobs, streams: streams}
}

// Stream godoc
// @Summary      Live job change events (text/event-stream)
// @Description  Events are hints. Clients re-read the job they refer to.
// @Tags         jobs
// @Produce      text/event-stream
// @Success      200
// @Security     Bearer
// @Router       /jobs/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	events, cancel, err := h.jobs.Watch(c.Request.Context(), who.ID)
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	defer cancel()
	if h.streams != nil {
		h.streams.StreamOpened()
		defer h.streams.StreamClosed()
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}

// Health godoc
// @Summary  Liveness check
// @Tags     health
// @Success  200
// @Router   /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
