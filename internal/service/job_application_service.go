package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/events"
	pktNats "resume-builder-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrJobApplicationNotFound = errors.New("job application not found")

type IJobApplicationService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateJobApplicationRequest) (*dto.JobApplicationResponse, error)
	List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery, status string) (*dto.JobApplicationListResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.JobApplicationResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateJobApplicationRequest) (*dto.JobApplicationResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	PipelineStats(ctx context.Context, userId uuid.UUID) (*dto.JobPipelineStats, error)
}

type jobApplicationService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewJobApplicationService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IJobApplicationService {
	return &jobApplicationService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *jobApplicationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateJobApplicationRequest) (*dto.JobApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.ResumeId != nil {
		resume, err := uow.ResumeRepository().FindOne(ctx,
			specification.ByID{ID: *req.ResumeId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if resume == nil {
			return nil, ErrResumeNotFound
		}
	}

	status := entity.JobStatusSaved
	if req.Status != "" {
		status = entity.JobApplicationStatus(req.Status)
	}

	now := time.Now()
	application := &entity.JobApplication{
		Id:          uuid.New(),
		UserId:      userId,
		ResumeId:    req.ResumeId,
		Company:     req.Company,
		Position:    req.Position,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
		JobURL:      req.JobURL,
		Status:      status,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == entity.JobStatusApplied {
		application.AppliedAt = &now
	}

	if err := uow.JobApplicationRepository().Create(ctx, application); err != nil {
		return nil, err
	}

	return jobApplicationToResponse(application), nil
}

func (s *jobApplicationService) List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery, status string) (*dto.JobApplicationListResponse, error) {
	query.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}
	if query.Search != "" {
		specs = append(specs, specification.SearchByCompanyOrPosition{Query: query.Search})
	}

	total, err := uow.JobApplicationRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "updated_at", Desc: query.SortDir == "desc"},
		specification.Pagination{Limit: query.PageSize, Offset: query.Offset()},
	)
	applications, err := uow.JobApplicationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.JobApplicationResponse, 0, len(applications))
	for _, a := range applications {
		items = append(items, *jobApplicationToResponse(a))
	}

	return &dto.JobApplicationListResponse{
		Applications: items,
		Total:        total,
		Page:         query.Page,
		PageSize:     query.PageSize,
	}, nil
}

func (s *jobApplicationService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.JobApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	application, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return jobApplicationToResponse(application), nil
}

func (s *jobApplicationService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateJobApplicationRequest) (*dto.JobApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	application, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	previousStatus := application.Status

	if req.Company != nil {
		application.Company = *req.Company
	}
	if req.Position != nil {
		application.Position = *req.Position
	}
	if req.Location != nil {
		application.Location = *req.Location
	}
	if req.SalaryRange != nil {
		application.SalaryRange = *req.SalaryRange
	}
	if req.JobURL != nil {
		application.JobURL = *req.JobURL
	}
	if req.ResumeId != nil {
		resume, err := uow.ResumeRepository().FindOne(ctx,
			specification.ByID{ID: *req.ResumeId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if resume == nil {
			return nil, ErrResumeNotFound
		}
		application.ResumeId = req.ResumeId
	}
	if req.Notes != nil {
		application.Notes = *req.Notes
	}

	now := time.Now()
	if req.Status != nil && entity.JobApplicationStatus(*req.Status) != previousStatus {
		application.Status = entity.JobApplicationStatus(*req.Status)
		// First move into "applied" stamps the application date.
		if application.Status == entity.JobStatusApplied && application.AppliedAt == nil {
			application.AppliedAt = &now
		}
	}
	application.UpdatedAt = now

	if err := uow.JobApplicationRepository().Update(ctx, application); err != nil {
		return nil, err
	}

	if application.Status != previousStatus && s.eventPublisher != nil {
		evt := events.New(events.TypeJobStatusMoved, map[string]interface{}{
			"user_id":  userId,
			"job_id":   application.Id,
			"company":  application.Company,
			"position": application.Position,
			"from":     string(previousStatus),
			"to":       string(application.Status),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish job status event: %v\n", err)
		}
	}

	return jobApplicationToResponse(application), nil
}

func (s *jobApplicationService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	application, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	return uow.JobApplicationRepository().Delete(ctx, application.Id)
}

func (s *jobApplicationService) PipelineStats(ctx context.Context, userId uuid.UUID) (*dto.JobPipelineStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	counts, err := uow.JobApplicationRepository().CountByStatus(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.JobPipelineStats{
		Saved:     counts[string(entity.JobStatusSaved)],
		Applied:   counts[string(entity.JobStatusApplied)],
		Interview: counts[string(entity.JobStatusInterview)],
		Offer:     counts[string(entity.JobStatusOffer)],
		Rejected:  counts[string(entity.JobStatusRejected)],
	}, nil
}

func (s *jobApplicationService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.JobApplication, error) {
	application, err := uow.JobApplicationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrJobApplicationNotFound
	}
	return application, nil
}

func jobApplicationToResponse(a *entity.JobApplication) *dto.JobApplicationResponse {
	return &dto.JobApplicationResponse{
		Id:          a.Id,
		Company:     a.Company,
		Position:    a.Position,
		Location:    a.Location,
		SalaryRange: a.SalaryRange,
		JobURL:      a.JobURL,
		ResumeId:    a.ResumeId,
		Status:      string(a.Status),
		Notes:       a.Notes,
		AppliedAt:   a.AppliedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
