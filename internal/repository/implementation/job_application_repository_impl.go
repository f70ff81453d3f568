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

type JobApplicationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JobApplicationMapper
}

func NewJobApplicationRepository(db *gorm.DB) contract.JobApplicationRepository {
	return &JobApplicationRepositoryImpl{
		db:     db,
		mapper: mapper.NewJobApplicationMapper(),
	}
}

func (r *JobApplicationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *JobApplicationRepositoryImpl) Create(ctx context.Context, application *entity.JobApplication) error {
	m := r.mapper.ToModel(application)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*application = *r.mapper.ToEntity(m)
	return nil
}

func (r *JobApplicationRepositoryImpl) Update(ctx context.Context, application *entity.JobApplication) error {
	m := r.mapper.ToModel(application)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*application = *r.mapper.ToEntity(m)
	return nil
}

func (r *JobApplicationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.JobApplication{}).Error
}

func (r *JobApplicationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JobApplication, error) {
	var m model.JobApplication
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *JobApplicationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JobApplication, error) {
	var models []*model.JobApplication
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *JobApplicationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.JobApplication{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *JobApplicationRepositoryImpl) CountByStatus(ctx context.Context, userId uuid.UUID) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.JobApplication{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", userId).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}
