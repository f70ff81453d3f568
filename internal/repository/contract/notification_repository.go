package contract

import (
	"context"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	MarkRead(ctx context.Context, userId uuid.UUID, ids []uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
