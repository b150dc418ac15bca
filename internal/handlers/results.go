package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
	"github.com/mikesterific/parallel-instances/internal/services"
	"github.com/mikesterific/parallel-instances/internal/store"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetResults returns the test results of a run with filtering, sorting and
// pagination
// (GET /runs/{id}/results)
func (h *Handler) GetResults(c *gin.Context) {
	var params v1.GetResultsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.resolveRunID(c)
	if err != nil {
		writeError(c, err, "failed to resolve run")
		return
	}
	// unknown ids are a 404, not an empty page
	if _, err := h.reportSrv.GetRun(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed to get run")
		return
	}

	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = min(*params.PageSize, maxPageSize)
	}

	sorts, err := parseSort(params.Sort)
	if err != nil {
		writeError(c, err, "invalid sort")
		return
	}
	for _, s := range params.Status {
		switch v1.TestResultStatus(s) {
		case v1.TestResultStatusPassed, v1.TestResultStatusFailed, v1.TestResultStatusSkipped:
		default:
			writeError(c, srvErrors.NewValidationError("status", "unknown status: "+s), "invalid status")
			return
		}
	}

	result, err := h.reportSrv.ListResults(c.Request.Context(), services.ResultListParams{
		RunID:     id,
		Instances: params.Instance,
		Suites:    params.Suite,
		Statuses:  params.Status,
		Sort:      sorts,
		Limit:     uint64(pageSize),
		Offset:    uint64((page - 1) * pageSize),
	})
	if err != nil {
		writeError(c, err, "failed to list results")
		return
	}

	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	resp := v1.TestResultListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     result.Total,
		Results:   make([]v1.TestResult, 0, len(result.Results)),
	}
	for _, r := range result.Results {
		resp.Results = append(resp.Results, v1.NewTestResultFromModel(r))
	}
	c.JSON(http.StatusOK, resp)
}

// parseSort reads "field:direction" pairs, direction being asc or desc.
func parseSort(values []string) ([]store.SortParam, error) {
	var sorts []store.SortParam
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			field, dir, ok := strings.Cut(part, ":")
			if !ok {
				return nil, srvErrors.NewValidationError("sort", "must be field:direction: "+part)
			}
			if !store.IsSortField(field) {
				return nil, srvErrors.NewValidationError("sort", "unknown field: "+field)
			}
			switch dir {
			case "asc", "desc":
			default:
				return nil, srvErrors.NewValidationError("sort", "direction must be asc or desc: "+dir)
			}
			sorts = append(sorts, store.SortParam{Field: field, Desc: dir == "desc"})
		}
	}
	return sorts, nil
}
