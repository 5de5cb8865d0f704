package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	request "repairdesk/internal/adapter/http/dto/request"
	"repairdesk/internal/adapter/http/handlers/mocks"
	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type jobMocks struct {
	jobs        *mocks.MockIJobUseCase
	transitions *mocks.MockITransitionUseCase
	assignments *mocks.MockIAssignmentUseCase
}

func newJobRouter(t *testing.T, actorID string) (*gin.Engine, jobMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := request.RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	ctrl := gomock.NewController(t)
	m := jobMocks{
		jobs:        mocks.NewMockIJobUseCase(ctrl),
		transitions: mocks.NewMockITransitionUseCase(ctrl),
		assignments: mocks.NewMockIAssignmentUseCase(ctrl),
	}
	h := NewJobHandler(m.jobs, m.transitions, m.assignments)

	r := gin.New()
	if actorID != "" {
		r.Use(middleware.SetIdentity(usecase.Identity{ID: actorID}))
	}
	r.POST("/v1/jobs", h.CreateJob)
	r.GET("/v1/jobs", h.ListJobs)
	r.GET("/v1/jobs/export", h.ExportJobs)
	r.GET("/v1/jobs/:id", h.GetJob)
	r.GET("/v1/jobs/:id/history", h.GetHistory)
	r.GET("/v1/jobs/:id/audit", h.GetAudit)
	r.POST("/v1/jobs/transition", h.Transition)
	r.POST("/v1/jobs/assign", h.Assign)
	return r, m
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJobHandler_Transition(t *testing.T) {
	t.Run("no identity", func(t *testing.T) {
		r, _ := newJobRouter(t, "")
		w := doJSON(r, http.MethodPost, "/v1/jobs/transition", `{"jobId":"job-1","status":"accepted"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		r, _ := newJobRouter(t, "tech-1")
		w := doJSON(r, http.MethodPost, "/v1/jobs/transition", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown status fails binding", func(t *testing.T) {
		r, _ := newJobRouter(t, "tech-1")
		w := doJSON(r, http.MethodPost, "/v1/jobs/transition", `{"jobId":"job-1","status":"archived"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		fields, _ := body["fields"].(map[string]any)
		if fields["Status"] != "jobstatus" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	errorCases := []struct {
		name string
		err  error
		code int
	}{
		{"out of sequence", usecase.ErrInvalidTransition, http.StatusBadRequest},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"unknown identity", usecase.ErrUnauthenticated, http.StatusUnauthorized},
		{"missing job", usecase.ErrJobNotFound, http.StatusNotFound},
		{"bad attachment", errors.Join(usecase.ErrInvalidPayload, errors.New("qcData is required")), http.StatusBadRequest},
		{"storage", errors.Join(usecase.ErrStorageFailure, errors.New("db down")), http.StatusInternalServerError},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			r, m := newJobRouter(t, "tech-1")
			m.transitions.EXPECT().ApplyTransition(gomock.Any(), "tech-1", gomock.Any()).Return(entities.Job{}, tc.err)

			w := doJSON(r, http.MethodPost, "/v1/jobs/transition", `{"jobId":"job-1","status":"accepted"}`)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			if tc.code == http.StatusInternalServerError && bytes.Contains(w.Body.Bytes(), []byte("db down")) {
				t.Fatalf("internal error leaked: %s", w.Body.String())
			}
		})
	}

	t.Run("success forwards attachments", func(t *testing.T) {
		r, m := newJobRouter(t, "tech-1")
		m.transitions.EXPECT().ApplyTransition(gomock.Any(), "tech-1", gomock.Any()).DoAndReturn(
			func(_ any, _ string, req usecase.TransitionRequest) (entities.Job, error) {
				if req.JobID != "job-1" || req.Status != entities.JobStatusQCBefore {
					t.Fatalf("unexpected request: %+v", req)
				}
				if req.QCData == nil || req.QCData.Display != entities.CheckOK || req.QCData.Charging != entities.CheckUnset {
					t.Fatalf("unexpected qc: %+v", req.QCData)
				}
				return entities.Job{ID: "job-1", Status: entities.JobStatusQCBefore, QCBefore: req.QCData}, nil
			})

		w := doJSON(r, http.MethodPost, "/v1/jobs/transition",
			`{"jobId":"job-1","status":"qc_before","qcData":{"display":"ok","charging":null,"imei":"35","model":"13"}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "qc_before" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestJobHandler_Assign(t *testing.T) {
	t.Run("missing technician", func(t *testing.T) {
		r, _ := newJobRouter(t, "admin-1")
		w := doJSON(r, http.MethodPost, "/v1/jobs/assign", `{"jobId":"job-1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not a technician", func(t *testing.T) {
		r, m := newJobRouter(t, "admin-1")
		m.assignments.EXPECT().Assign(gomock.Any(), "admin-1", "job-1", "viewer-1").Return(entities.Job{}, usecase.ErrNotATechnician)
		w := doJSON(r, http.MethodPost, "/v1/jobs/assign", `{"jobId":"job-1","technicianId":"viewer-1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("technician not found", func(t *testing.T) {
		r, m := newJobRouter(t, "admin-1")
		m.assignments.EXPECT().Assign(gomock.Any(), "admin-1", "job-1", "ghost").Return(entities.Job{}, usecase.ErrTechnicianNotFound)
		w := doJSON(r, http.MethodPost, "/v1/jobs/assign", `{"jobId":"job-1","technicianId":"ghost"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, m := newJobRouter(t, "admin-1")
		m.assignments.EXPECT().Assign(gomock.Any(), "admin-1", "job-1", "tech-1").
			Return(entities.Job{ID: "job-1", Status: entities.JobStatusAssigned, TechnicianID: "tech-1"}, nil)
		w := doJSON(r, http.MethodPost, "/v1/jobs/assign", `{"jobId":"job-1","technicianId":"tech-1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestJobHandler_CreateAndRead(t *testing.T) {
	t.Run("create validates the form", func(t *testing.T) {
		r, _ := newJobRouter(t, "admin-1")
		w := doJSON(r, http.MethodPost, "/v1/jobs", `{"customer":{"name":"Ravi"},"device":{"type":"iPhone","issue":"Screen"}}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("create", func(t *testing.T) {
		r, m := newJobRouter(t, "admin-1")
		now := time.Now().UTC()
		m.jobs.EXPECT().Create(gomock.Any(), "admin-1", gomock.Any()).DoAndReturn(
			func(_ any, _ string, in usecase.CreateJobInput) (entities.Job, error) {
				if in.Customer.Phone != "98765" || in.ServiceCharge != 1000 {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Job{ID: "job-1", Status: entities.JobStatusUnassigned, Financials: entities.ComputeFinancials(1000, 500), CreatedAt: now}, nil
			})
		w := doJSON(r, http.MethodPost, "/v1/jobs",
			`{"customer":{"name":"Ravi","phone":"98765","address":"MG Road"},"device":{"type":"iPhone","issue":"Screen"},"serviceCharge":1000,"partsCost":500}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["total"] != 1770.0 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("list passes filters", func(t *testing.T) {
		r, m := newJobRouter(t, "viewer-1")
		m.jobs.EXPECT().List(gomock.Any(), "viewer-1", entities.JobFilter{Status: entities.JobStatusAssigned, TechnicianID: "tech-1"}).
			Return([]entities.Job{{ID: "job-1"}, {ID: "job-2"}}, nil)
		w := doJSON(r, http.MethodGet, "/v1/jobs?status=assigned&technician_id=tech-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["count"] != 2.0 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("read forbidden", func(t *testing.T) {
		r, m := newJobRouter(t, "tech-2")
		m.jobs.EXPECT().GetByID(gomock.Any(), "tech-2", "job-1").Return(entities.Job{}, usecase.ErrForbidden)
		w := doJSON(r, http.MethodGet, "/v1/jobs/job-1", "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("history", func(t *testing.T) {
		r, m := newJobRouter(t, "admin-1")
		m.jobs.EXPECT().History(gomock.Any(), "admin-1", "job-1").Return([]entities.StatusHistoryEntry{
			{ID: "h-1", JobID: "job-1", Status: entities.JobStatusUnassigned, ChangedBy: "admin-1"},
		}, nil)
		w := doJSON(r, http.MethodGet, "/v1/jobs/job-1/history", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 || body[0]["status"] != "unassigned" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("audit", func(t *testing.T) {
		r, m := newJobRouter(t, "admin-1")
		m.jobs.EXPECT().Audit(gomock.Any(), "admin-1", "job-1").Return(usecase.AuditReport{JobID: "job-1", OrderedPrefix: true, TimelineConsistent: true, MatchesTimeline: true}, nil)
		w := doJSON(r, http.MethodGet, "/v1/jobs/job-1/audit", "")
		if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"consistent":true`)) {
			t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestJobHandler_ExportJobs(t *testing.T) {
	t.Run("technicians are refused", func(t *testing.T) {
		r, m := newJobRouter(t, "tech-1")
		m.jobs.EXPECT().Export(gomock.Any(), "tech-1", gomock.Any()).Return(nil, usecase.ErrForbidden)
		w := doJSON(r, http.MethodGet, "/v1/jobs/export", "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("xlsx download", func(t *testing.T) {
		r, m := newJobRouter(t, "admin-1")
		m.jobs.EXPECT().Export(gomock.Any(), "admin-1", entities.JobFilter{}).Return([]entities.Job{{ID: "job-1", Status: entities.JobStatusCompleted}}, nil)
		w := doJSON(r, http.MethodGet, "/v1/jobs/export", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			t.Fatalf("unexpected content type %q", ct)
		}
		// xlsx files are zip archives.
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
			t.Fatal("expected a zip payload")
		}
	})
}
