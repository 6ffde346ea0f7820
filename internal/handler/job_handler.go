package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"castmind/backend/internal/model"
)

// JobController is the part of the scheduler the API drives.
type JobController interface {
	RunNow(id string) (string, error)
	Pause(id string) error
	Resume(id string) error
	Status() []model.JobStatus
	JobStatus(id string) (model.JobStatus, error)
}

type JobHandler struct {
	jobs JobController
}

type jobResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Trigger    string  `json:"trigger"`
	Paused     bool    `json:"paused"`
	Running    bool    `json:"running"`
	NextRun    *string `json:"nextRun,omitempty"`
	LastRun    *string `json:"lastRun,omitempty"`
	LastRunID  string  `json:"lastRunId,omitempty"`
	LastResult string  `json:"lastResult,omitempty"`
	LastError  string  `json:"lastError,omitempty"`
	Runs       int     `json:"runs"`
	Misses     int     `json:"misses"`
}

func NewJobHandler(jobs JobController) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func (h *JobHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/jobs", h.List)
	g.GET("/jobs/:id", h.Get)
	g.POST("/jobs/:id/run", h.Run)
	g.POST("/jobs/:id/pause", h.Pause)
	g.POST("/jobs/:id/resume", h.Resume)
}

func (h *JobHandler) List(c echo.Context) error {
	statuses := h.jobs.Status()
	response := make([]jobResponse, 0, len(statuses))
	for _, st := range statuses {
		response = append(response, toJobResponse(st))
	}
	return c.JSON(http.StatusOK, response)
}

func (h *JobHandler) Get(c echo.Context) error {
	st, err := h.jobs.JobStatus(c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toJobResponse(st))
}

func (h *JobHandler) Run(c echo.Context) error {
	id := c.Param("id")
	runID, err := h.jobs.RunNow(id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusAccepted, runStartedResponse{JobID: id, RunID: runID})
}

func (h *JobHandler) Pause(c echo.Context) error {
	return h.toggle(c, h.jobs.Pause)
}

func (h *JobHandler) Resume(c echo.Context) error {
	return h.toggle(c, h.jobs.Resume)
}

func (h *JobHandler) toggle(c echo.Context, apply func(string) error) error {
	id := c.Param("id")
	if err := apply(id); err != nil {
		return writeServiceError(c, err)
	}
	st, err := h.jobs.JobStatus(id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toJobResponse(st))
}

func toJobResponse(st model.JobStatus) jobResponse {
	return jobResponse{
		ID:         st.ID,
		Name:       st.Name,
		Trigger:    st.Trigger,
		Paused:     st.Paused,
		Running:    st.Running,
		NextRun:    formatTimePtr(st.NextRun),
		LastRun:    formatTimePtr(st.LastRun),
		LastRunID:  st.LastRunID,
		LastResult: string(st.LastResult),
		LastError:  st.LastError,
		Runs:       st.Runs,
		Misses:     st.Misses,
	}
}
