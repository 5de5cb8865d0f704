package handlers

import (
	"log/slog"
	"net/http"

	request "repairdesk/internal/adapter/http/dto/request"
	response "repairdesk/internal/adapter/http/dto/response"
	"repairdesk/internal/infrastructure/export"
	"repairdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

// JobHandler serves job creation, reads, the status workflow and assignment.
type JobHandler struct {
	jobs        usecase.IJobUseCase
	transitions usecase.ITransitionUseCase
	assignments usecase.IAssignmentUseCase
}

func NewJobHandler(jobs usecase.IJobUseCase, transitions usecase.ITransitionUseCase, assignments usecase.IAssignmentUseCase) *JobHandler {
	return &JobHandler{jobs: jobs, transitions: transitions, assignments: assignments}
}

// CreateJob godoc
// @Summary      Create a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateJobRequest  true  "Job"
// @Success      201   {object}  response.JobResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	var payload request.CreateJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), who.ID, payload.ToInput())
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromJob(job))
}

// ListJobs godoc
// @Summary      List jobs newest first
// @Tags         jobs
// @Produce      json
// @Param        status         query     string  false  "Status filter"
// @Param        technician_id  query     string  false  "Technician filter"
// @Success      200  {object}  response.JobListResponse
// @Security     Bearer
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	var q request.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	jobs, err := h.jobs.List(c.Request.Context(), who.ID, q.ToFilter())
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJobs(jobs))
}

// GetJob godoc
// @Summary      Read a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.JobResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	job, err := h.jobs.GetByID(c.Request.Context(), who.ID, c.Param("id"))
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// GetHistory godoc
// @Summary      Status history of a job, oldest first
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {array}   response.HistoryEntryResponse
// @Security     Bearer
// @Router       /jobs/{id}/history [get]
func (h *JobHandler) GetHistory(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	entries, err := h.jobs.History(c.Request.Context(), who.ID, c.Param("id"))
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromHistory(entries))
}

// GetAudit godoc
// @Summary      Check a job's history against its timeline
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.AuditResponse
// @Security     Bearer
// @Router       /jobs/{id}/audit [get]
func (h *JobHandler) GetAudit(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	report, err := h.jobs.Audit(c.Request.Context(), who.ID, c.Param("id"))
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAudit(report))
}

// Transition godoc
// @Summary      Move a job to its next status
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        body  body      request.TransitionRequest  true  "Transition"
// @Success      200   {object}  response.JobResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /jobs/transition [post]
func (h *JobHandler) Transition(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, err)
		return
	}

	job, err := h.transitions.ApplyTransition(c.Request.Context(), who.ID, payload.ToUseCase())
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// Assign godoc
// @Summary      Assign an unassigned job to a technician
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        body  body      request.AssignRequest  true  "Assignment"
// @Success      200   {object}  response.JobResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /jobs/assign [post]
func (h *JobHandler) Assign(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	var payload request.AssignRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, err)
		return
	}

	job, err := h.assignments.Assign(c.Request.Context(), who.ID, payload.JobID, payload.TechnicianID)
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// ExportJobs godoc
// @Summary      Download visible jobs as XLSX
// @Tags         jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status         query  string  false  "Status filter"
// @Param        technician_id  query  string  false  "Technician filter"
// @Success      200
// @Security     Bearer
// @Router       /jobs/export [get]
func (h *JobHandler) ExportJobs(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	var q request.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	jobs, err := h.jobs.Export(c.Request.Context(), who.ID, q.ToFilter())
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="jobs.xlsx"`)
	c.Header("Content-Type", export.ContentType)
	c.Status(http.StatusOK)
	if err := export.WriteJobsXLSX(c.Writer, jobs); err != nil {
		// Headers are already sent; the client sees a truncated file.
		slog.ErrorContext(c.Request.Context(), "[job][handler] export failed", "rows", len(jobs), "err", err)
		_ = c.Error(err)
	}
}
