package mapper

import (
	"encoding/json"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/model"
)

type ResumeMapper struct{}

func NewResumeMapper() *ResumeMapper {
	return &ResumeMapper{}
}

func (m *ResumeMapper) ToEntity(r *model.Resume) *entity.Resume {
	if r == nil {
		return nil
	}
	return &entity.Resume{
		Id:            r.Id,
		UserId:        r.UserId,
		TemplateId:    r.TemplateId,
		Title:         r.Title,
		ShareSlug:     r.ShareSlug,
		Data:          json.RawMessage(r.Data),
		IsPublic:      r.IsPublic,
		ViewCount:     r.ViewCount,
		DownloadCount: r.DownloadCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (m *ResumeMapper) ToModel(r *entity.Resume) *model.Resume {
	if r == nil {
		return nil
	}
	return &model.Resume{
		Id:            r.Id,
		UserId:        r.UserId,
		TemplateId:    r.TemplateId,
		Title:         r.Title,
		ShareSlug:     r.ShareSlug,
		Data:          datatypes.JSON(r.Data),
		IsPublic:      r.IsPublic,
		ViewCount:     r.ViewCount,
		DownloadCount: r.DownloadCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (m *ResumeMapper) ToEntities(models []*model.Resume) []*entity.Resume {
	entities := make([]*entity.Resume, 0, len(models))
	for _, r := range models {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}

func (m *ResumeMapper) TemplateToEntity(t *model.Template) *entity.Template {
	if t == nil {
		return nil
	}
	return &entity.Template{
		Id:          t.Id,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		Category:    t.Category,
		IsPremium:   t.IsPremium,
		Structure:   json.RawMessage(t.Structure),
		PreviewURL:  t.PreviewURL,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *ResumeMapper) TemplateToModel(t *entity.Template) *model.Template {
	if t == nil {
		return nil
	}
	return &model.Template{
		Id:          t.Id,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		Category:    t.Category,
		IsPremium:   t.IsPremium,
		Structure:   datatypes.JSON(t.Structure),
		PreviewURL:  t.PreviewURL,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *ResumeMapper) TemplatesToEntities(models []*model.Template) []*entity.Template {
	entities := make([]*entity.Template, 0, len(models))
	for _, t := range models {
		entities = append(entities, m.TemplateToEntity(t))
	}
	return entities
}

func (m *ResumeMapper) EmbeddingToEntity(e *model.ResumeEmbedding) *entity.ResumeEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ResumeEmbedding{
		Id:        e.Id,
		ResumeId:  e.ResumeId,
		Embedding: e.EmbeddingValue.Slice(),
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ResumeMapper) EmbeddingToModel(e *entity.ResumeEmbedding) *model.ResumeEmbedding {
	if e == nil {
		return nil
	}
	return &model.ResumeEmbedding{
		Id:             e.Id,
		ResumeId:       e.ResumeId,
		EmbeddingValue: pgvector.NewVector(e.Embedding),
		UpdatedAt:      e.UpdatedAt,
	}
}
