package staff

import (
	"github.com/cfc-orderdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SyncSummariesRequest 批量重建摘要请求
type SyncSummariesRequest struct {
	IncludeArchived bool `json:"include_archived"`
}

// GmailSyncRequest Gmail 同步请求，缺省回看 2 小时
type GmailSyncRequest struct {
	HoursBack int `json:"hours_back"`
}

// B2BWaveSyncRequest B2BWave 同步请求，缺省回看 14 天
type B2BWaveSyncRequest struct {
	DaysBack int `json:"days_back"`
}

// SyncAllRequest 全量同步请求
type SyncAllRequest struct {
	HoursBack int `json:"hours_back"`
	DaysBack  int `json:"days_back"`
}

// SyncSummaries 批量重建 AI 摘要
func (h *Handler) SyncSummaries(c *gin.Context) {
	var req SyncSummariesRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	result, err := h.SyncService.RegenerateSummaries(c.Request.Context(), req.IncludeArchived, requestID(c))
	if err != nil {
		respondSyncError(c, err)
		return
	}
	response.Success(c, result)
}

// SyncGmail 触发 Gmail 同步
func (h *Handler) SyncGmail(c *gin.Context) {
	var req GmailSyncRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	result, err := h.SyncService.SyncGmail(c.Request.Context(), req.HoursBack, requestID(c))
	if err != nil {
		respondSyncError(c, err)
		return
	}
	response.Success(c, result)
}

// SyncB2BWave 触发 B2BWave 同步
func (h *Handler) SyncB2BWave(c *gin.Context) {
	var req B2BWaveSyncRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	result, err := h.SyncService.SyncB2BWave(c.Request.Context(), req.DaysBack, requestID(c))
	if err != nil {
		respondSyncError(c, err)
		return
	}
	response.Success(c, result)
}

// SyncAll 同时触发 Gmail 与 B2BWave 同步
func (h *Handler) SyncAll(c *gin.Context) {
	var req SyncAllRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	result, err := h.SyncService.SyncAll(c.Request.Context(), req.HoursBack, req.DaysBack, requestID(c))
	if err != nil {
		respondSyncError(c, err)
		return
	}
	response.Success(c, result)
}

func respondSyncError(c *gin.Context, err error) {
	respondWriteError(c, err)
}
