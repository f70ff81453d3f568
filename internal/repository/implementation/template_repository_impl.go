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

type TemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResumeMapper
}

func NewTemplateRepository(db *gorm.DB) contract.TemplateRepository {
	return &TemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewResumeMapper(),
	}
}

func (r *TemplateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, template *entity.Template) error {
	modelTemplate := r.mapper.TemplateToModel(template)
	if err := r.db.WithContext(ctx).Create(modelTemplate).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(modelTemplate)
	return nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, template *entity.Template) error {
	modelTemplate := r.mapper.TemplateToModel(template)
	if err := r.db.WithContext(ctx).Save(modelTemplate).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(modelTemplate)
	return nil
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Template{}).Error
}

func (r *TemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Template, error) {
	var modelTemplate model.Template
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelTemplate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TemplateToEntity(&modelTemplate), nil
}

func (r *TemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Template, error) {
	var modelTemplates []*model.Template
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelTemplates).Error; err != nil {
		return nil, err
	}
	return r.mapper.TemplatesToEntities(modelTemplates), nil
}

func (r *TemplateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Template{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
