package contract

import (
	"context"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"
)

type AnalyticsRepository interface {
	Create(ctx context.Context, event *entity.AnalyticsEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalyticsEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
