package contract

import (
	"context"

	"resume-builder-be/internal/entity"

	"github.com/google/uuid"
)

type ResumeEmbeddingRepository interface {
	// Upsert replaces the stored vector for a resume.
	Upsert(ctx context.Context, embedding *entity.ResumeEmbedding) error
	FindByResumeId(ctx context.Context, resumeId uuid.UUID) (*entity.ResumeEmbedding, error)
	DeleteByResumeId(ctx context.Context, resumeId uuid.UUID) error

	// CosineSimilarity computes 1 - cosine distance between the stored
	// vector and the probe. Returns found=false when no embedding exists.
	CosineSimilarity(ctx context.Context, resumeId uuid.UUID, probe []float32) (score float64, found bool, err error)
}
