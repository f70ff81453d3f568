package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/pkg/logger"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/events"
	pktNats "resume-builder-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery pushes real-time updates, typically the
// websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
}

type INotificationService interface {
	Start()
	List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery, unreadOnly bool) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userId uuid.UUID, req *dto.MarkReadRequest) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		delivery:   delivery,
		logger:     log,
	}
}

// Start attaches the durable consumer to the event stream.
func (s *notificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber configured, notifications disabled", nil)
		return
	}
	if err := s.subscriber.Subscribe("events.>", "notification-worker", s.handleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Listening on events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	userId, ok := payloadUserId(payload)
	if !ok {
		s.logger.Warn("NotificationService", "Event without user_id skipped", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	notification, ok := buildNotification(event.EventType(), userId, payload)
	if !ok {
		// Not every bus event produces a user-facing notification.
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		s.logger.Error("NotificationService", "Failed to persist notification", map[string]interface{}{
			"type":  string(notification.TypeCode),
			"error": err.Error(),
		})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userId, *notification)
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery, unreadOnly bool) (*dto.NotificationListResponse, error) {
	query.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
	if unreadOnly {
		specs = append(specs, specification.UnreadOnly{})
	}

	total, err := uow.NotificationRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}
	unread, err := uow.NotificationRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.UnreadOnly{},
	)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: query.PageSize, Offset: query.Offset()},
	)
	notifications, err := uow.NotificationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			Id:        n.Id,
			TypeCode:  string(n.TypeCode),
			Title:     n.Title,
			Message:   n.Message,
			Metadata:  n.Metadata,
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
		Total:         total,
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userId uuid.UUID, req *dto.MarkReadRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, userId, req.Ids)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx, userId)
}

// buildNotification maps a bus event onto the stored notification.
// The second return value is false for event types with no user-facing
// message.
func buildNotification(eventType string, userId uuid.UUID, payload map[string]interface{}) (*entity.Notification, bool) {
	var typeCode entity.NotificationType
	var title, message string

	switch eventType {
	case events.TypeUserRegistered:
		typeCode = entity.NotificationWelcome
		title = "Welcome aboard"
		message = "Your account is ready. Create your first resume to get started."
	case events.TypePlanChanged:
		typeCode = entity.NotificationPlanChanged
		to, _ := payload["to"].(string)
		title = "Plan updated"
		message = fmt.Sprintf("Your plan is now %s.", to)
	case events.TypePaymentFailed:
		typeCode = entity.NotificationPaymentFailed
		title = "Payment failed"
		message = "We could not process your last payment. Update your payment method to keep your plan."
	case events.TypeCreditsLow:
		typeCode = entity.NotificationCreditsLow
		title = "AI credits running low"
		message = "You are almost out of AI credits for this period."
	case events.TypeResumeViewed:
		typeCode = entity.NotificationResumeViewed
		t, _ := payload["title"].(string)
		title = "Resume viewed"
		message = fmt.Sprintf("Someone viewed your resume %q.", t)
	case events.TypeJobStatusMoved:
		typeCode = entity.NotificationJobStatusMoved
		company, _ := payload["company"].(string)
		to, _ := payload["to"].(string)
		title = "Application moved"
		message = fmt.Sprintf("Your application at %s moved to %s.", company, to)
	default:
		return nil, false
	}

	metadata, _ := json.Marshal(payload)
	return &entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}, true
}

func payloadUserId(payload map[string]interface{}) (uuid.UUID, bool) {
	switch v := payload["user_id"].(type) {
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil
	case uuid.UUID:
		return v, true
	}
	return uuid.Nil, false
}
