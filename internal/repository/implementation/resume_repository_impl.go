package implementation

import (
	"context"
	"errors"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/mapper"
	"resume-builder-be/internal/model"
	"resume-builder-be/internal/repository/contract"
	"resume-builder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResumeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResumeMapper
}

func NewResumeRepository(db *gorm.DB) contract.ResumeRepository {
	return &ResumeRepositoryImpl{
		db:     db,
		mapper: mapper.NewResumeMapper(),
	}
}

func (r *ResumeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ResumeRepositoryImpl) Create(ctx context.Context, resume *entity.Resume) error {
	modelResume := r.mapper.ToModel(resume)
	if err := r.db.WithContext(ctx).Create(modelResume).Error; err != nil {
		return err
	}
	*resume = *r.mapper.ToEntity(modelResume)
	return nil
}

func (r *ResumeRepositoryImpl) Update(ctx context.Context, resume *entity.Resume) error {
	modelResume := r.mapper.ToModel(resume)
	if err := r.db.WithContext(ctx).Save(modelResume).Error; err != nil {
		return err
	}
	*resume = *r.mapper.ToEntity(modelResume)
	return nil
}

func (r *ResumeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Resume{}).Error
}

func (r *ResumeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resume, error) {
	var modelResume model.Resume
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelResume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelResume), nil
}

func (r *ResumeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resume, error) {
	var modelResumes []*model.Resume
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelResumes).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelResumes), nil
}

func (r *ResumeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Resume{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ResumeRepositoryImpl) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Resume{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ResumeRepositoryImpl) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Resume{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}
