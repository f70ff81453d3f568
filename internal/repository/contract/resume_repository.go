package contract

import (
	"context"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *entity.Resume) error
	Update(ctx context.Context, resume *entity.Resume) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resume, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resume, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// IncrementViewCount and IncrementDownloadCount bump the per-resume
	// counters in place; the per-user totals live on the usage ledger.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error
}
