package contract

import (
	"context"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type JobApplicationRepository interface {
	Create(ctx context.Context, application *entity.JobApplication) error
	Update(ctx context.Context, application *entity.JobApplication) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JobApplication, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JobApplication, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountByStatus groups a user's applications for the pipeline board.
	CountByStatus(ctx context.Context, userId uuid.UUID) (map[string]int64, error)
}
