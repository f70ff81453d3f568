package mapper

import (
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/model"
)

type AnalyticsMapper struct{}

func NewAnalyticsMapper() *AnalyticsMapper {
	return &AnalyticsMapper{}
}

func (m *AnalyticsMapper) ToEntity(e *model.AnalyticsEvent) *entity.AnalyticsEvent {
	if e == nil {
		return nil
	}
	return &entity.AnalyticsEvent{
		Id:        e.Id,
		UserId:    e.UserId,
		ResumeId:  e.ResumeId,
		EventType: entity.AnalyticsEventType(e.EventType),
		Referrer:  e.Referrer,
		UserAgent: e.UserAgent,
		CreatedAt: e.CreatedAt,
	}
}

func (m *AnalyticsMapper) ToModel(e *entity.AnalyticsEvent) *model.AnalyticsEvent {
	if e == nil {
		return nil
	}
	return &model.AnalyticsEvent{
		Id:        e.Id,
		UserId:    e.UserId,
		ResumeId:  e.ResumeId,
		EventType: string(e.EventType),
		Referrer:  e.Referrer,
		UserAgent: e.UserAgent,
		CreatedAt: e.CreatedAt,
	}
}

func (m *AnalyticsMapper) ToEntities(models []*model.AnalyticsEvent) []*entity.AnalyticsEvent {
	entities := make([]*entity.AnalyticsEvent, 0, len(models))
	for _, e := range models {
		entities = append(entities, m.ToEntity(e))
	}
	return entities
}
