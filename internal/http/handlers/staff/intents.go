package staff

import (
	"strings"
	"time"

	handlershared "github.com/cfc-orderdesk/internal/http/handlers/shared"
	"github.com/cfc-orderdesk/internal/http/response"
	"github.com/cfc-orderdesk/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListIntents 更新意图审计列表
func (h *Handler) ListIntents(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	intents, total, err := h.IntentService.List(repository.UpdateIntentListFilter{
		Page:        page,
		PageSize:    pageSize,
		Action:      strings.TrimSpace(c.Query("action")),
		TargetType:  strings.TrimSpace(c.Query("target_type")),
		TargetID:    strings.TrimSpace(c.Query("target_id")),
		Result:      strings.TrimSpace(c.Query("result")),
		Search:      strings.TrimSpace(c.Query("search")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.intent_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, intents, handlershared.BuildPagination(page, pageSize, total))
}

// GetIntentStats 按结果统计更新意图
func (h *Handler) GetIntentStats(c *gin.Context) {
	counts, err := h.IntentService.CountByResult()
	if err != nil {
		respondError(c, response.CodeInternal, "error.intent_fetch_failed", err)
		return
	}
	response.Success(c, counts)
}

// parseTimeNullable 支持 RFC3339 与 YYYY-MM-DD
func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		day, dayErr := time.Parse("2006-01-02", raw)
		if dayErr != nil {
			return nil, err
		}
		parsed = day
	}
	return &parsed, nil
}
