package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/contract"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/entitlement"
	"resume-builder-be/pkg/events"
	pktNats "resume-builder-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrResumeNotFound = errors.New("resume not found")
var ErrTemplateNotFound = errors.New("template not found")

type IResumeService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateResumeRequest) (*dto.ResumeResponse, error)
	List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery) (*dto.ResumeListResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResumeResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Duplicate(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.DuplicateResumeRequest) (*dto.ResumeResponse, error)
	UpdateShareSettings(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.ShareSettingsRequest) (*dto.ShareSettingsResponse, error)
	GetPublicBySlug(ctx context.Context, slug, referrer, userAgent string) (*dto.PublicResumeResponse, error)
	Download(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResumeResponse, error)
}

type resumeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	analyticsPub     IPublisherService
	eventPublisher   *pktNats.Publisher
	shareBaseURL     string
}

func NewResumeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	analyticsPub IPublisherService,
	eventPublisher *pktNats.Publisher,
	shareBaseURL string,
) IResumeService {
	return &resumeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		analyticsPub:     analyticsPub,
		eventPublisher:   eventPublisher,
		shareBaseURL:     shareBaseURL,
	}
}

func (s *resumeService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateResumeRequest) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	template, err := s.resolveTemplate(ctx, uow, user, req.TemplateId)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The conditional increment is the enforcement point: it refuses
	// the bump when the counter already sits at the plan ceiling, so
	// two concurrent creates can never both pass.
	if err := s.incrementWithSeed(ctx, uow, user); err != nil {
		return nil, err
	}

	if template != nil && template.IsPremium {
		if err := uow.UsageLedgerRepository().IncrementPremiumTemplatesUsed(ctx, userId); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	resume := &entity.Resume{
		Id:         uuid.New(),
		UserId:     userId,
		TemplateId: req.TemplateId,
		Title:      req.Title,
		ShareSlug:  newShareSlug(),
		Data:       req.Data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uow.ResumeRepository().Create(ctx, resume); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEmbed(ctx, resume.Id)

	return resumeToResponse(resume), nil
}

func (s *resumeService) List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery) (*dto.ResumeListResponse, error) {
	query.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
	if query.Search != "" {
		specs = append(specs, specification.SearchByTitle{Query: query.Search})
	}

	total, err := uow.ResumeRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "updated_at", Desc: query.SortDir == "desc"},
		specification.Pagination{Limit: query.PageSize, Offset: query.Offset()},
	)
	resumes, err := uow.ResumeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ResumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, dto.ResumeListItem{
			Id:            r.Id,
			Title:         r.Title,
			TemplateId:    r.TemplateId,
			ShareSlug:     r.ShareSlug,
			IsPublic:      r.IsPublic,
			ViewCount:     r.ViewCount,
			DownloadCount: r.DownloadCount,
			UpdatedAt:     r.UpdatedAt,
		})
	}

	totalPages := int((total + int64(query.PageSize) - 1) / int64(query.PageSize))
	return &dto.ResumeListResponse{
		Resumes:    items,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *resumeService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resume, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return resumeToResponse(resume), nil
}

func (s *resumeService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	dataChanged := false
	if req.Title != nil {
		resume.Title = *req.Title
	}
	if req.TemplateId != nil && (resume.TemplateId == nil || *resume.TemplateId != *req.TemplateId) {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err != nil {
			return nil, err
		}
		template, err := s.resolveTemplate(ctx, uow, user, req.TemplateId)
		if err != nil {
			return nil, err
		}
		resume.TemplateId = req.TemplateId
		if template != nil && template.IsPremium {
			if err := uow.UsageLedgerRepository().IncrementPremiumTemplatesUsed(ctx, userId); err != nil && !errors.Is(err, contract.ErrLedgerNotFound) {
				return nil, err
			}
		}
	}
	if req.Data != nil {
		resume.Data = req.Data
		dataChanged = true
	}
	if req.IsPublic != nil {
		resume.IsPublic = *req.IsPublic
	}
	resume.UpdatedAt = time.Now()

	if err := uow.ResumeRepository().Update(ctx, resume); err != nil {
		return nil, err
	}

	if dataChanged {
		s.publishEmbed(ctx, resume.Id)
	}

	return resumeToResponse(resume), nil
}

// Delete removes the resume and refunds one slot on the ledger. Both
// writes share a transaction so a crash cannot leave the counter out
// of step with the rows.
func (s *resumeService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ResumeRepository().Delete(ctx, resume.Id); err != nil {
		return err
	}
	if err := uow.ResumeEmbeddingRepository().DeleteByResumeId(ctx, resume.Id); err != nil {
		return err
	}
	if err := uow.UsageLedgerRepository().DecrementResumesCreated(ctx, userId); err != nil && !errors.Is(err, contract.ErrLedgerNotFound) {
		return err
	}

	return uow.Commit()
}

func (s *resumeService) Duplicate(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.DuplicateResumeRequest) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	source, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// A copy counts against the same limit as a fresh create.
	if err := s.incrementWithSeed(ctx, uow, user); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = source.Title + " (Copy)"
	}
	now := time.Now()
	copyResume := &entity.Resume{
		Id:         uuid.New(),
		UserId:     userId,
		TemplateId: source.TemplateId,
		Title:      title,
		ShareSlug:  newShareSlug(),
		Data:       source.Data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uow.ResumeRepository().Create(ctx, copyResume); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEmbed(ctx, copyResume.Id)

	return resumeToResponse(copyResume), nil
}

func (s *resumeService) UpdateShareSettings(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.ShareSettingsRequest) (*dto.ShareSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	resume.IsPublic = req.IsPublic
	if resume.ShareSlug == "" {
		resume.ShareSlug = newShareSlug()
	}
	resume.UpdatedAt = time.Now()

	if err := uow.ResumeRepository().Update(ctx, resume); err != nil {
		return nil, err
	}

	return &dto.ShareSettingsResponse{
		ShareSlug: resume.ShareSlug,
		IsPublic:  resume.IsPublic,
		ShareURL:  fmt.Sprintf("%s/r/%s", s.shareBaseURL, resume.ShareSlug),
	}, nil
}

// GetPublicBySlug serves the shared read-only view. Counter bumps and
// analytics are best-effort; a failed bump never hides the document.
func (s *resumeService) GetPublicBySlug(ctx context.Context, slug, referrer, userAgent string) (*dto.PublicResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByShareSlug{Slug: slug},
		specification.PublicOnly{},
	)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}

	if err := uow.ResumeRepository().IncrementViewCount(ctx, resume.Id); err != nil {
		fmt.Printf("[WARN] Failed to bump view count for %s: %v\n", resume.Id, err)
	}
	if err := uow.UsageLedgerRepository().IncrementViews(ctx, resume.UserId); err != nil && !errors.Is(err, contract.ErrLedgerNotFound) {
		fmt.Printf("[WARN] Failed to bump ledger views for %s: %v\n", resume.UserId, err)
	}

	s.publishAnalytics(ctx, resume, entity.AnalyticsEventView, referrer, userAgent)

	if s.eventPublisher != nil {
		evt := events.New(events.TypeResumeViewed, map[string]interface{}{
			"user_id":   resume.UserId,
			"resume_id": resume.Id,
			"title":     resume.Title,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish RESUME_VIEWED event: %v\n", err)
		}
	}

	out := &dto.PublicResumeResponse{
		Title:     resume.Title,
		Data:      resume.Data,
		UpdatedAt: resume.UpdatedAt,
	}
	if resume.TemplateId != nil {
		template, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: *resume.TemplateId})
		if err == nil && template != nil {
			out.Template = &dto.TemplateBrief{
				Id:         template.Id,
				Name:       template.Name,
				Slug:       template.Slug,
				IsPremium:  template.IsPremium,
				PreviewURL: template.PreviewURL,
			}
		}
	}
	return out, nil
}

func (s *resumeService) Download(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if err := uow.ResumeRepository().IncrementDownloadCount(ctx, resume.Id); err != nil {
		fmt.Printf("[WARN] Failed to bump download count for %s: %v\n", resume.Id, err)
	}
	if err := uow.UsageLedgerRepository().IncrementDownloads(ctx, userId); err != nil && !errors.Is(err, contract.ErrLedgerNotFound) {
		fmt.Printf("[WARN] Failed to bump ledger downloads for %s: %v\n", userId, err)
	}

	s.publishAnalytics(ctx, resume, entity.AnalyticsEventDownload, "", "")

	if s.eventPublisher != nil {
		evt := events.New(events.TypeResumeDownloaded, map[string]interface{}{
			"user_id":   resume.UserId,
			"resume_id": resume.Id,
			"title":     resume.Title,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish RESUME_DOWNLOADED event: %v\n", err)
		}
	}

	resume.DownloadCount++
	return resumeToResponse(resume), nil
}

// incrementWithSeed runs the conditional increment, seeding the ledger
// and retrying once when the user has no row yet. A second
// ErrLimitReached is translated into the typed denial the API returns.
func (s *resumeService) incrementWithSeed(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) error {
	err := uow.UsageLedgerRepository().IncrementResumesCreated(ctx, user.Id)
	if errors.Is(err, contract.ErrLedgerNotFound) {
		if _, seedErr := ensureLedger(ctx, uow, user); seedErr != nil {
			return seedErr
		}
		err = uow.UsageLedgerRepository().IncrementResumesCreated(ctx, user.Id)
	}
	if errors.Is(err, contract.ErrLimitReached) {
		ledger, readErr := uow.UsageLedgerRepository().FindByUserId(ctx, user.Id)
		if readErr != nil {
			return readErr
		}
		return limitExceeded(dto.LimitTypeResumes, ledger, user)
	}
	return err
}

func (s *resumeService) resolveTemplate(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, templateId *uuid.UUID) (*entity.Template, error) {
	if templateId == nil {
		return nil, nil
	}
	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: *templateId},
		specification.ActiveTemplates{},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	if template.IsPremium && !entitlement.CanAccessPremiumTemplate(user.Plan) {
		return nil, &dto.LimitExceededError{
			LimitType: dto.LimitTypePremiumTemplate,
			Plan:      string(user.Plan),
		}
	}
	return template, nil
}

func (s *resumeService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Resume, error) {
	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}
	return resume, nil
}

func (s *resumeService) publishEmbed(ctx context.Context, resumeId uuid.UUID) {
	payload, err := json.Marshal(dto.PublishEmbedResumeMessage{ResumeId: resumeId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to queue embedding for resume %s: %v\n", resumeId, err)
	}
}

func (s *resumeService) publishAnalytics(ctx context.Context, resume *entity.Resume, eventType entity.AnalyticsEventType, referrer, userAgent string) {
	if s.analyticsPub == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishAnalyticsMessage{
		UserId:    resume.UserId,
		ResumeId:  resume.Id,
		EventType: string(eventType),
		Referrer:  referrer,
		UserAgent: userAgent,
	})
	if err != nil {
		return
	}
	if err := s.analyticsPub.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to queue analytics event for resume %s: %v\n", resume.Id, err)
	}
}

func resumeToResponse(r *entity.Resume) *dto.ResumeResponse {
	return &dto.ResumeResponse{
		Id:            r.Id,
		Title:         r.Title,
		TemplateId:    r.TemplateId,
		ShareSlug:     r.ShareSlug,
		Data:          r.Data,
		IsPublic:      r.IsPublic,
		ViewCount:     r.ViewCount,
		DownloadCount: r.DownloadCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// limitExceeded builds the typed denial from the freshest ledger read.
func limitExceeded(limitType string, ledger *entity.UsageLedger, user *entity.User) error {
	out := &dto.LimitExceededError{
		LimitType: limitType,
		Plan:      string(user.Plan),
	}
	if ledger != nil {
		switch limitType {
		case dto.LimitTypeAiCredits:
			out.Used = ledger.AiCreditsUsed
			out.Limit = ledger.AiCreditsLimit
		default:
			out.Used = ledger.ResumesCreated
			out.Limit = ledger.ResumesLimit
		}
	}
	return out
}

func newShareSlug() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
