package contract

import (
	"context"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"
)

type AiInteractionRepository interface {
	Create(ctx context.Context, interaction *entity.AiInteraction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiInteraction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
