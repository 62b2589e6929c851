package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zxro/schedule-bot/internal/dto"
	"github.com/zxro/schedule-bot/internal/service"
	apperrors "github.com/zxro/schedule-bot/pkg/errors"
	"github.com/zxro/schedule-bot/pkg/response"
)

// SyncHandler 同步模块 HTTP 处理器
type SyncHandler struct {
	syncSvc service.SyncService
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(syncSvc service.SyncService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc}
}

// SyncAll 触发全校同步
// POST /api/v1/sync/all
func (h *SyncHandler) SyncAll(c *gin.Context) {
	var req dto.SyncRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.syncSvc.SyncAll(c.Request.Context(), req.Limit, req.Type)
	if err != nil {
		h.handleSyncError(c, err)
		return
	}

	response.OK(c, report)
}

// SyncFaculty 触发单院系同步
// POST /api/v1/sync/faculties/:name
func (h *SyncHandler) SyncFaculty(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "院系名不能为空")
		return
	}

	var req dto.SyncRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.syncSvc.SyncFaculty(c.Request.Context(), name, req.Limit, req.Type)
	if err != nil {
		h.handleSyncError(c, err)
		return
	}

	response.OK(c, report)
}

// SyncGroup 触发单组同步
// POST /api/v1/sync/groups/:name
func (h *SyncHandler) SyncGroup(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "组名不能为空")
		return
	}

	var req dto.SyncRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.syncSvc.SyncGroup(c.Request.Context(), name, req.Type)
	if err != nil {
		h.handleSyncError(c, err)
		return
	}

	response.OK(c, report)
}

// handleSyncError 同步模块错误映射
func (h *SyncHandler) handleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrSyncRunning):
		response.Conflict(c, 20101, err.Error())
	case errors.Is(err, apperrors.ErrFacultyNotFound):
		response.NotFound(c, 20003, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/sync_handler.go
