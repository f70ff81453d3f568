package implementation

import (
	"context"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/mapper"
	"resume-builder-be/internal/model"
	"resume-builder-be/internal/repository/contract"
	"resume-builder-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AiInteractionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AiInteractionMapper
}

func NewAiInteractionRepository(db *gorm.DB) contract.AiInteractionRepository {
	return &AiInteractionRepositoryImpl{
		db:     db,
		mapper: mapper.NewAiInteractionMapper(),
	}
}

func (r *AiInteractionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AiInteractionRepositoryImpl) Create(ctx context.Context, interaction *entity.AiInteraction) error {
	m := r.mapper.ToModel(interaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.ToEntity(m)
	return nil
}

func (r *AiInteractionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiInteraction, error) {
	var models []*model.AiInteraction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AiInteractionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AiInteraction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
