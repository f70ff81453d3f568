package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/model"
)

type AiInteractionMapper struct{}

func NewAiInteractionMapper() *AiInteractionMapper {
	return &AiInteractionMapper{}
}

func (m *AiInteractionMapper) ToEntity(a *model.AiInteraction) *entity.AiInteraction {
	if a == nil {
		return nil
	}
	return &entity.AiInteraction{
		Id:          a.Id,
		UserId:      a.UserId,
		ResumeId:    a.ResumeId,
		Kind:        entity.AiInteractionKind(a.Kind),
		Prompt:      a.Prompt,
		Response:    a.Response,
		Context:     json.RawMessage(a.Context),
		CreditsUsed: a.CreditsUsed,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *AiInteractionMapper) ToModel(a *entity.AiInteraction) *model.AiInteraction {
	if a == nil {
		return nil
	}
	return &model.AiInteraction{
		Id:          a.Id,
		UserId:      a.UserId,
		ResumeId:    a.ResumeId,
		Kind:        string(a.Kind),
		Prompt:      a.Prompt,
		Response:    a.Response,
		Context:     datatypes.JSON(a.Context),
		CreditsUsed: a.CreditsUsed,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *AiInteractionMapper) ToEntities(models []*model.AiInteraction) []*entity.AiInteraction {
	entities := make([]*entity.AiInteraction, 0, len(models))
	for _, a := range models {
		entities = append(entities, m.ToEntity(a))
	}
	return entities
}
