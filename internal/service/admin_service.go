package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/pkg/logger"
	"resume-builder-be/internal/repository/contract"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/events"
	pktNats "resume-builder-be/pkg/nats"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type IAdminService interface {
	ListUsers(ctx context.Context, query *dto.ListQuery, plan string) (*dto.AdminUserListResponse, error)
	GetUserDetail(ctx context.Context, id uuid.UUID) (*dto.AdminUserDetailResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.AdminUpdateUserRequest) error
	SetPlan(ctx context.Context, adminId, id uuid.UUID, req *dto.AdminSetPlanRequest) error
	GrantCredits(ctx context.Context, adminId, id uuid.UUID, req *dto.AdminGrantCreditsRequest) error
	Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	GetLogs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *adminService) ListUsers(ctx context.Context, query *dto.ListQuery, plan string) (*dto.AdminUserListResponse, error) {
	query.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if query.Search != "" {
		specs = append(specs, specification.SearchByEmailOrName{Query: query.Search})
	}
	if plan != "" {
		specs = append(specs, specification.ByPlan{Plan: plan})
	}

	total, err := uow.UserRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: query.SortDir == "desc"},
		specification.Pagination{Limit: query.PageSize, Offset: query.Offset()},
	)
	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdminUserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, adminUserItem(u))
	}

	totalPages := int((total + int64(query.PageSize) - 1) / int64(query.PageSize))
	return &dto.AdminUserListResponse{
		Users:      items,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *adminService) GetUserDetail(ctx context.Context, id uuid.UUID) (*dto.AdminUserDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	out := &dto.AdminUserDetailResponse{
		User: adminUserItem(user),
	}

	// Usage and subscription panels are best-effort; a user without a
	// ledger simply shows no usage yet.
	if ledger, err := uow.UsageLedgerRepository().FindByUserId(ctx, id); err == nil && ledger != nil {
		out.Usage = buildUsageStatus(user, ledger)
	}
	if sub, err := uow.SubscriptionRepository().FindByUserId(ctx, id); err == nil && sub != nil {
		subOut := &dto.SubscriptionResponse{
			Plan:              string(user.Plan),
			Status:            sub.Status,
			Provider:          sub.Provider,
			CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		}
		if !sub.CurrentPeriodStart.IsZero() {
			start := sub.CurrentPeriodStart
			subOut.CurrentPeriodStart = &start
		}
		if !sub.CurrentPeriodEnd.IsZero() {
			end := sub.CurrentPeriodEnd
			subOut.CurrentPeriodEnd = &end
		}
		out.Subscription = subOut
	}

	resumeCount, err := uow.ResumeRepository().Count(ctx, specification.OwnedBy{UserID: id})
	if err != nil {
		return nil, err
	}
	out.ResumeCount = resumeCount

	return out, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.AdminUpdateUserRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if req.Status != nil {
		user.Status = entity.UserStatus(*req.Status)
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	// Suspension kills every open session immediately.
	if req.Status != nil && *req.Status == string(entity.UserStatusSuspended) {
		if err := uow.UserRepository().RevokeAllRefreshTokens(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SetPlan overrides the plan outside the payment flow. Limits are
// re-derived from the catalog; used counters are kept, matching the
// downgrade semantics of the billing path.
func (s *adminService) SetPlan(ctx context.Context, adminId, id uuid.UUID, req *dto.AdminSetPlanRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	tier, ok := plancatalog.ParseTier(req.Tier)
	if !ok {
		return errors.New("unknown tier")
	}
	previousPlan := user.Plan

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := ensureLedger(ctx, uow, user); err != nil {
		return err
	}

	if err := uow.UserRepository().UpdatePlan(ctx, id, string(tier)); err != nil {
		return err
	}
	limits := plancatalog.Limits(tier)
	if err := uow.UsageLedgerRepository().ResizeLimits(ctx, id, limits.Resumes, limits.AICredits); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("AdminService", "Plan override applied", map[string]interface{}{
		"admin_id": adminId,
		"user_id":  id,
		"from":     string(previousPlan),
		"to":       string(tier),
		"reason":   req.Reason,
	})

	if s.eventPublisher != nil && tier != previousPlan {
		evt := events.New(events.TypePlanChanged, map[string]interface{}{
			"user_id": id,
			"from":    string(previousPlan),
			"to":      string(tier),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish PLAN_CHANGED event: %v\n", err)
		}
	}
	return nil
}

func (s *adminService) GrantCredits(ctx context.Context, adminId, id uuid.UUID, req *dto.AdminGrantCreditsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	err = uow.UsageLedgerRepository().GrantExtraAICredits(ctx, id, req.Credits)
	if errors.Is(err, contract.ErrLedgerNotFound) {
		if _, seedErr := ensureLedger(ctx, uow, user); seedErr != nil {
			return seedErr
		}
		err = uow.UsageLedgerRepository().GrantExtraAICredits(ctx, id, req.Credits)
	}
	if err != nil {
		return err
	}

	s.logger.Info("AdminService", "Extra AI credits granted", map[string]interface{}{
		"admin_id": adminId,
		"user_id":  id,
		"credits":  req.Credits,
		"reason":   req.Reason,
	})
	return nil
}

func (s *adminService) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := uow.UserRepository().CountByStatus(ctx, string(entity.UserStatusActive))
	if err != nil {
		return nil, err
	}
	totalResumes, err := uow.ResumeRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAiCalls, err := uow.UsageLedgerRepository().SumAiCalls(ctx)
	if err != nil {
		return nil, err
	}
	planDistribution, err := uow.UserRepository().CountByPlan(ctx)
	if err != nil {
		return nil, err
	}
	signups, err := uow.UserRepository().Count(ctx, specification.CreatedAfter{Value: time.Now().AddDate(0, 0, -30)})
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		TotalResumes:      totalResumes,
		TotalAiCalls:      totalAiCalls,
		PlanDistribution:  planDistribution,
		SignupsLast30Days: signups,
	}, nil
}

func (s *adminService) GetLogs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.logger.GetLogs(level, limit, offset)
}

func adminUserItem(u *entity.User) dto.AdminUserListItem {
	return dto.AdminUserListItem{
		Id:            u.Id,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          string(u.Role),
		Status:        string(u.Status),
		Plan:          string(u.Plan),
		EmailVerified: u.EmailVerified,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}
