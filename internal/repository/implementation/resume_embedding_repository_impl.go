package implementation

import (
	"context"
	"errors"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/mapper"
	"resume-builder-be/internal/model"
	"resume-builder-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResumeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResumeMapper
}

func NewResumeEmbeddingRepository(db *gorm.DB) contract.ResumeEmbeddingRepository {
	return &ResumeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewResumeMapper(),
	}
}

func (r *ResumeEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.ResumeEmbedding) error {
	m := r.mapper.EmbeddingToModel(embedding)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resume_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding_value", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.EmbeddingToEntity(m)
	return nil
}

func (r *ResumeEmbeddingRepositoryImpl) FindByResumeId(ctx context.Context, resumeId uuid.UUID) (*entity.ResumeEmbedding, error) {
	var m model.ResumeEmbedding
	if err := r.db.WithContext(ctx).Where("resume_id = ?", resumeId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EmbeddingToEntity(&m), nil
}

func (r *ResumeEmbeddingRepositoryImpl) DeleteByResumeId(ctx context.Context, resumeId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("resume_id = ?", resumeId).Delete(&model.ResumeEmbedding{}).Error
}

// CosineSimilarity uses pgvector's <=> cosine distance operator; the
// returned score is 1 - distance so higher means closer.
func (r *ResumeEmbeddingRepositoryImpl) CosineSimilarity(ctx context.Context, resumeId uuid.UUID, probe []float32) (float64, bool, error) {
	var score float64
	err := r.db.WithContext(ctx).Model(&model.ResumeEmbedding{}).
		Select("1 - (embedding_value <=> ?)", pgvector.NewVector(probe)).
		Where("resume_id = ?", resumeId).
		Scan(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	// Scan on an empty result set leaves score untouched without an
	// error; confirm the row exists.
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ResumeEmbedding{}).
		Where("resume_id = ?", resumeId).
		Count(&count).Error; err != nil {
		return 0, false, err
	}
	if count == 0 {
		return 0, false, nil
	}
	return score, true, nil
}
