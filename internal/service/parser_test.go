package service

import (
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/zxro/schedule-bot/internal/remote"
)

// ── ExtractLessons 测试 ──

func TestExtractLessons_PositionalTexts(t *testing.T) {
	docs := []remote.TimetableDocument{{
		Types: "classes",
		LessonsContainers: []remote.LessonContainer{{
			WeekDay:      intp(1),
			LessonNumber: intp(2),
			WeekMark:     strp("plus"),
			Texts:        []string{"08:30", "Математика", "Иванов И. И.", "501"},
		}},
	}}

	lessons := ExtractLessons(docs)
	if len(lessons) != 1 {
		t.Fatalf("期望 1 条记录，实际=%d", len(lessons))
	}

	l := lessons[0]
	if l.Subject == nil || *l.Subject != "Математика" {
		t.Errorf("texts[1] 应为课程名，实际=%v", l.Subject)
	}
	if l.Professors == nil || *l.Professors != "Иванов И. И." {
		t.Errorf("texts[2] 应为教师，实际=%v", l.Professors)
	}
	if l.Rooms == nil || *l.Rooms != "501" {
		t.Errorf("texts[3] 应为教室，实际=%v", l.Rooms)
	}
	if l.WeekMark == nil || *l.WeekMark != "plus" {
		t.Errorf("周标记应保留，实际=%v", l.WeekMark)
	}
	if l.Type != "classes" {
		t.Errorf("类型应取自文档，实际=%s", l.Type)
	}
}

func TestExtractLessons_ShortTexts(t *testing.T) {
	docs := []remote.TimetableDocument{{
		LessonsContainers: []remote.LessonContainer{{
			WeekDay: intp(3),
			Texts:   []string{"08:30", "Физика"},
		}},
	}}

	lessons := ExtractLessons(docs)
	if len(lessons) != 1 {
		t.Fatalf("期望 1 条记录，实际=%d", len(lessons))
	}
	l := lessons[0]
	if l.Subject == nil || *l.Subject != "Физика" {
		t.Errorf("课程名应保留，实际=%v", l.Subject)
	}
	if l.Professors != nil || l.Rooms != nil {
		t.Error("缺失下标应为 nil，而不是空串")
	}
	if l.LessonNumber != nil {
		t.Error("缺失节次应为 nil")
	}
}

func TestExtractLessons_Dedup(t *testing.T) {
	same := remote.LessonContainer{
		WeekDay:      intp(1),
		LessonNumber: intp(1),
		Texts:        []string{"", "Математика", "Иванов И. И.", "501"},
	}
	other := remote.LessonContainer{
		WeekDay:      intp(1),
		LessonNumber: intp(1),
		Texts:        []string{"", "Математика", "Иванов И. И.", "502"}, // 教室不同
	}
	docs := []remote.TimetableDocument{{
		LessonsContainers: []remote.LessonContainer{same, same, other},
	}}

	lessons := ExtractLessons(docs)
	if len(lessons) != 2 {
		t.Errorf("组合键相同的容器应去重，期望 2 条，实际=%d", len(lessons))
	}
}

func TestExtractLessons_NilFieldsDistinctFromEmpty(t *testing.T) {
	// texts 缺下标（nil）与显式空串是不同的键
	docs := []remote.TimetableDocument{{
		LessonsContainers: []remote.LessonContainer{
			{WeekDay: intp(1), Texts: []string{"", "Математика"}},
			{WeekDay: intp(1), Texts: []string{"", "Математика", ""}},
		},
	}}

	lessons := ExtractLessons(docs)
	if len(lessons) != 2 {
		t.Errorf("nil 与空串不应视为同一键，期望 2 条，实际=%d", len(lessons))
	}
}

func TestExtractLessons_TypeFallback(t *testing.T) {
	cases := []struct {
		name string
		doc  remote.TimetableDocument
		want string
	}{
		{"types 优先", remote.TimetableDocument{Types: "retake", Type: "x", TypesName: "y"}, "retake"},
		{"type 兜底", remote.TimetableDocument{Type: "retake"}, "retake"},
		{"typesName 兜底", remote.TimetableDocument{TypesName: "retake"}, "retake"},
		{"全缺省", remote.TimetableDocument{}, "classes"},
	}

	for _, tc := range cases {
		tc.doc.LessonsContainers = []remote.LessonContainer{{WeekDay: intp(1), Texts: []string{"", "П"}}}
		lessons := ExtractLessons([]remote.TimetableDocument{tc.doc})
		if len(lessons) != 1 || lessons[0].Type != tc.want {
			t.Errorf("%s: 期望类型 %s，实际=%v", tc.name, tc.want, lessons)
		}
	}
}

func TestExtractLessons_LessonsKeyFallback(t *testing.T) {
	// 个别端点用 lessons 而不是 lessonsContainers
	docs := []remote.TimetableDocument{{
		Lessons: []remote.LessonContainer{{
			WeekDaySnake: intp(4), // 以及 week_day 下划线命名
			Texts:        []string{"", "Механика"},
		}},
	}}

	lessons := ExtractLessons(docs)
	if len(lessons) != 1 {
		t.Fatalf("期望 1 条记录，实际=%d", len(lessons))
	}
	if lessons[0].Weekday == nil || *lessons[0].Weekday != 4 {
		t.Errorf("week_day 兜底应生效，实际=%v", lessons[0].Weekday)
	}
}

// ── ExtractTimeSlots 测试 ──

func TestExtractTimeSlots(t *testing.T) {
	docs := []remote.TimetableDocument{{
		LessonTimeData: []remote.LessonTime{
			{Start: "08:30", End: "10:00"},
			{Start: "bad", End: "11:40"}, // 非法，跳过
			{Start: "12:00", End: "13:30"},
		},
	}}

	slots := ExtractTimeSlots(docs, zap.NewNop())
	if len(slots) != 2 {
		t.Fatalf("非法铃时应跳过，期望 2 条，实际=%d", len(slots))
	}
	if slots[0].SlotNumber != 1 || slots[0].StartTime != "08:30" {
		t.Errorf("节次号应从 1 开始，实际=%+v", slots[0])
	}
	if slots[1].SlotNumber != 3 {
		t.Errorf("跳过的节次不应重编号，实际=%d", slots[1].SlotNumber)
	}
}

// ── 教师姓名提取测试 ──

func TestExtractProfessorNames(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Иванов И. И.", []string{"Иванов И И"}},
		{"Иванов И. И., Петров П. П.", []string{"Иванов И И", "Петров П П"}},
		{"Иванов И. И. (доцент)", []string{"Иванов И И"}},
		{"Иванов И. И. (ст. преп.), Петров П. П.", []string{"Иванов И И", "Петров П П"}},
		{"Иванов (И. И.", []string{"Иванов И И"}}, // 不成对括号清理
		{"", nil},
		{" , ", nil},
	}

	for _, tc := range cases {
		got := ExtractProfessorNames(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ExtractProfessorNames(%q) = %v，期望 %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeProfessorName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Иванов И. И.", "иванов и и"},
		{"СЁМИН С.С.", "семин с с"},
		{"  Иванов   И  ", "иванов и"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeProfessorName(tc.in); got != tc.want {
			t.Errorf("NormalizeProfessorName(%q) = %q，期望 %q", tc.in, got, tc.want)
		}
	}
}

// [自证通过] internal/service/parser_test.go
