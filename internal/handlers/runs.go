package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

const defaultRunLimit = 20

// GetRuns lists the runs of the project, newest first
// (GET /runs)
func (h *Handler) GetRuns(c *gin.Context) {
	var params v1.GetRunsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	projectID := h.projectID
	if params.ProjectId != nil {
		projectID = *params.ProjectId
	}
	limit := defaultRunLimit
	if params.Limit != nil && *params.Limit > 0 {
		limit = min(*params.Limit, maxPageSize)
	}

	runs, err := h.reportSrv.ListRuns(c.Request.Context(), projectID, uint64(limit))
	if err != nil {
		writeError(c, err, "failed to list runs")
		return
	}

	resp := v1.RunListResponse{Runs: make([]v1.Run, 0, len(runs))}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, v1.NewRunFromModel(r))
	}
	c.JSON(http.StatusOK, resp)
}

// GetRun returns a run with its counters; "latest" resolves to the newest run
// (GET /runs/{id})
func (h *Handler) GetRun(c *gin.Context) {
	id, err := h.resolveRunID(c)
	if err != nil {
		writeError(c, err, "failed to resolve run")
		return
	}

	run, err := h.reportSrv.GetRun(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to get run")
		return
	}
	c.JSON(http.StatusOK, v1.NewRunFromModel(*run))
}

// StartRun starts a run in the background
// (POST /runs)
func (h *Handler) StartRun(c *gin.Context) {
	var req v1.StartRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
			return
		}
	}

	mode, err := req.ToModel()
	if err != nil {
		writeError(c, srvErrors.NewValidationError("mode", err.Error()), "invalid mode")
		return
	}

	id, err := h.runSrv.Start(c.Request.Context(), mode)
	if err != nil {
		writeError(c, err, "failed to start run")
		return
	}
	zap.S().Named("handlers").Infow("run started", "run_id", id, "mode", mode)

	var status v1.RunnerStatus
	status.FromModel(h.runSrv.Status())
	c.JSON(http.StatusAccepted, status)
}

// GetRunnerStatus returns the state of the runner
// (GET /runner)
func (h *Handler) GetRunnerStatus(c *gin.Context) {
	var status v1.RunnerStatus
	status.FromModel(h.runSrv.Status())
	c.JSON(http.StatusOK, status)
}

// StopRun cancels a background run
// (DELETE /runner)
func (h *Handler) StopRun(c *gin.Context) {
	h.runSrv.Stop()

	var status v1.RunnerStatus
	status.FromModel(h.runSrv.Status())
	c.JSON(http.StatusOK, status)
}

// CompareRun returns one summary per instance of a run
// (GET /runs/{id}/compare)
func (h *Handler) CompareRun(c *gin.Context) {
	id, err := h.resolveRunID(c)
	if err != nil {
		writeError(c, err, "failed to resolve run")
		return
	}

	run, err := h.reportSrv.GetRun(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to get run")
		return
	}

	summaries, err := h.reportSrv.Compare(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to compare instances")
		return
	}

	resp := v1.CompareResponse{
		Run:       v1.NewRunFromModel(*run),
		Instances: make([]v1.InstanceSummary, 0, len(summaries)),
	}
	for _, s := range summaries {
		resp.Instances = append(resp.Instances, v1.NewInstanceSummaryFromModel(s))
	}
	c.JSON(http.StatusOK, resp)
}
