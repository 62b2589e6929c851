package model

// Professor 教师表 — 对应 professors
// 派生数据：重建教师课表时按名称惰性创建；全量重建后无课的教师被删除
type Professor struct {
	ID   int64  `gorm:"primaryKey"                             json:"id"`
	Name string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"` // "姓 名首字母" 形式
}

// TableName 指定表名
func (Professor) TableName() string { return "professors" }

// [自证通过] internal/model/professor.go
