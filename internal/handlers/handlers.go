package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
	"github.com/mikesterific/parallel-instances/internal/services"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

type Handler struct {
	runSrv    *services.RunService
	reportSrv *services.ReportService
	projectID string
}

func New(runSrv *services.RunService, reportSrv *services.ReportService, projectID string) *Handler {
	return &Handler{
		runSrv:    runSrv,
		reportSrv: reportSrv,
		projectID: projectID,
	}
}

// RegisterHandlers mounts every endpoint on router, usually the /api/v1 group.
func RegisterHandlers(router gin.IRoutes, h *Handler) {
	router.GET("/runs", h.GetRuns)
	router.POST("/runs", h.StartRun)
	router.GET("/runs/:id", h.GetRun)
	router.GET("/runs/:id/results", h.GetResults)
	router.GET("/runs/:id/compare", h.CompareRun)
	router.GET("/runner", h.GetRunnerStatus)
	router.DELETE("/runner", h.StopRun)
	router.GET("/metrics", h.GetMetrics)
}

// resolveRunID maps the "latest" alias onto the newest run of the project.
func (h *Handler) resolveRunID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "latest" {
		id = ""
	}
	return h.reportSrv.ResolveRunID(c.Request.Context(), h.projectID, id)
}

func writeError(c *gin.Context, err error, msg string) {
	switch {
	case srvErrors.IsValidationError(err):
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: err.Error()})
	case srvErrors.IsRunInProgressError(err):
		c.JSON(http.StatusConflict, v1.ErrorResponse{Error: err.Error()})
	default:
		zap.S().Named("handlers").Errorw(msg, "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: msg})
	}
}
