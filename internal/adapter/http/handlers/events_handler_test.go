package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"repairdesk/internal/adapter/http/handlers/mocks"
	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type countingStreams struct{ opened, closed int }

func (s *countingStreams) StreamOpened() { s.opened++ }
func (s *countingStreams) StreamClosed() { s.closed++ }

// gin's Stream needs http.CloseNotifier, which the plain recorder lacks.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

func TestEventsHandler_Stream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("writes events until the source closes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := mocks.NewMockIJobUseCase(ctrl)
		streams := &countingStreams{}
		h := NewEventsHandler(jobs, streams)

		events := make(chan entities.JobEvent, 2)
		events <- entities.JobEvent{Type: entities.JobEventStatusChanged, JobID: "job-1", Status: entities.JobStatusAccepted}
		close(events)
		cancelled := false
		jobs.EXPECT().Watch(gomock.Any(), "tech-1").Return((<-chan entities.JobEvent)(events), func() { cancelled = true }, nil)

		r := gin.New()
		r.Use(middleware.SetIdentity(usecase.Identity{ID: "tech-1"}))
		r.GET("/v1/jobs/events", h.Stream)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		req := httptest.NewRequest(http.MethodGet, "/v1/jobs/events", nil).WithContext(ctx)
		w := newStreamRecorder()
		r.ServeHTTP(w, req)

		body := w.Body.String()
		if !strings.Contains(body, "event:status_changed") || !strings.Contains(body, `"jobId":"job-1"`) {
			t.Fatalf("unexpected stream: %q", body)
		}
		if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream") {
			t.Fatalf("unexpected content type %q", w.Header().Get("Content-Type"))
		}
		if !cancelled || streams.opened != 1 || streams.closed != 1 {
			t.Fatalf("subscription not released: cancelled=%v streams=%+v", cancelled, streams)
		}
	})

	t.Run("unknown identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := mocks.NewMockIJobUseCase(ctrl)
		h := NewEventsHandler(jobs, nil)
		jobs.EXPECT().Watch(gomock.Any(), "ghost").Return(nil, nil, usecase.ErrUnauthenticated)

		r := gin.New()
		r.Use(middleware.SetIdentity(usecase.Identity{ID: "ghost"}))
		r.GET("/v1/jobs/events", h.Stream)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/jobs/events", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}
