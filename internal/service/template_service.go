package service

import (
	"context"
	"errors"
	"time"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/entitlement"
	"resume-builder-be/pkg/plancatalog"

	"github.com/google/uuid"
)

type ITemplateService interface {
	List(ctx context.Context, userId uuid.UUID, category string) (*dto.TemplateListResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TemplateResponse, error)

	AdminCreate(ctx context.Context, req *dto.AdminTemplateCreateRequest) (*dto.TemplateResponse, error)
	AdminUpdate(ctx context.Context, id uuid.UUID, req *dto.AdminTemplateUpdateRequest) (*dto.TemplateResponse, error)
	AdminDelete(ctx context.Context, id uuid.UUID) error
}

type templateService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTemplateService(uowFactory unitofwork.RepositoryFactory) ITemplateService {
	return &templateService{
		uowFactory: uowFactory,
	}
}

// List returns the active catalog. Premium templates stay visible on
// every plan; Locked tells the client to render the upgrade overlay.
func (s *templateService) List(ctx context.Context, userId uuid.UUID, category string) (*dto.TemplateListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.callerPlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	specs := []specification.Specification{specification.ActiveTemplates{}}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}
	specs = append(specs, specification.OrderBy{Field: "sort_order", Desc: false})

	templates, err := uow.TemplateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	canPremium := entitlement.CanAccessPremiumTemplate(plan)
	items := make([]dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		items = append(items, templateToResponse(t, canPremium))
	}

	return &dto.TemplateListResponse{
		Templates: items,
		Total:     int64(len(items)),
	}, nil
}

func (s *templateService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.callerPlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ActiveTemplates{},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	out := templateToResponse(template, entitlement.CanAccessPremiumTemplate(plan))
	return &out, nil
}

func (s *templateService) AdminCreate(ctx context.Context, req *dto.AdminTemplateCreateRequest) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.TemplateRepository().FindOne(ctx, specification.BySlug{Slug: req.Slug})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("template slug already in use")
	}

	now := time.Now()
	template := &entity.Template{
		Id:          uuid.New(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		IsPremium:   req.IsPremium,
		Structure:   req.Structure,
		PreviewURL:  req.PreviewURL,
		IsActive:    true,
		SortOrder:   req.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.TemplateRepository().Create(ctx, template); err != nil {
		return nil, err
	}

	out := templateToResponse(template, true)
	return &out, nil
}

func (s *templateService) AdminUpdate(ctx context.Context, id uuid.UUID, req *dto.AdminTemplateUpdateRequest) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Category != nil {
		template.Category = *req.Category
	}
	if req.IsPremium != nil {
		template.IsPremium = *req.IsPremium
	}
	if req.Structure != nil {
		template.Structure = req.Structure
	}
	if req.PreviewURL != nil {
		template.PreviewURL = *req.PreviewURL
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		template.SortOrder = *req.SortOrder
	}
	template.UpdatedAt = time.Now()

	if err := uow.TemplateRepository().Update(ctx, template); err != nil {
		return nil, err
	}

	out := templateToResponse(template, true)
	return &out, nil
}

// AdminDelete deactivates rather than removes; existing resumes keep
// their template reference.
func (s *templateService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if template == nil {
		return ErrTemplateNotFound
	}

	template.IsActive = false
	template.UpdatedAt = time.Now()
	return uow.TemplateRepository().Update(ctx, template)
}

func (s *templateService) callerPlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (plancatalog.Tier, error) {
	if userId == uuid.Nil {
		return plancatalog.TierFree, nil
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return plancatalog.TierFree, err
	}
	if user == nil {
		return plancatalog.TierFree, nil
	}
	return user.Plan, nil
}

func templateToResponse(t *entity.Template, canPremium bool) dto.TemplateResponse {
	return dto.TemplateResponse{
		Id:          t.Id,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		Category:    t.Category,
		IsPremium:   t.IsPremium,
		Structure:   t.Structure,
		PreviewURL:  t.PreviewURL,
		Locked:      t.IsPremium && !canPremium,
		CreatedAt:   t.CreatedAt,
	}
}
