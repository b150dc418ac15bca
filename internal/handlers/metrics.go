package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
)

// GetMetrics returns the metrics of a run, or the latest metrics of every
// instance when no run is given
// (GET /metrics)
func (h *Handler) GetMetrics(c *gin.Context) {
	var params v1.GetMetricsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	runID := ""
	if params.RunId != nil {
		runID = *params.RunId
	}

	metrics, err := h.reportSrv.Metrics(c.Request.Context(), runID, params.Instance...)
	if err != nil {
		writeError(c, err, "failed to get metrics")
		return
	}

	resp := v1.MetricsListResponse{Metrics: make([]v1.Metrics, 0, len(metrics))}
	for _, m := range metrics {
		resp.Metrics = append(resp.Metrics, v1.NewMetricsFromModel(m))
	}
	c.JSON(http.StatusOK, resp)
}
