package model

// TimeSlot 节次时间表（打铃表）— 对应 time_slots
// 由远端课表文档的 lessonTimeData 同步而来，按节次号 upsert；
// Lesson 本身只存节次号，展示/导出时再联此表取起止时间
type TimeSlot struct {
	ID         int64  `gorm:"primaryKey"                         json:"id"`
	SlotNumber int    `gorm:"type:smallint;uniqueIndex;not null" json:"slot_number"`
	StartTime  string `gorm:"type:varchar(5);not null"           json:"start_time"` // "HH:MM"
	EndTime    string `gorm:"type:varchar(5);not null"           json:"end_time"`
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

// [自证通过] internal/model/time_slot.go
