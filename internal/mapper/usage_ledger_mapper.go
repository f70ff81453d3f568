package mapper

import (
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/model"
)

type UsageLedgerMapper struct{}

func NewUsageLedgerMapper() *UsageLedgerMapper {
	return &UsageLedgerMapper{}
}

func (m *UsageLedgerMapper) ToEntity(l *model.UsageLedger) *entity.UsageLedger {
	if l == nil {
		return nil
	}
	return &entity.UsageLedger{
		Id:                   l.Id,
		UserId:               l.UserId,
		ResumesCreated:       l.ResumesCreated,
		ResumesLimit:         l.ResumesLimit,
		AiCreditsUsed:        l.AiCreditsUsed,
		AiCreditsLimit:       l.AiCreditsLimit,
		TotalViews:           l.TotalViews,
		TotalDownloads:       l.TotalDownloads,
		PremiumTemplatesUsed: l.PremiumTemplatesUsed,
		LastResetAt:          l.LastResetAt,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

func (m *UsageLedgerMapper) ToModel(l *entity.UsageLedger) *model.UsageLedger {
	if l == nil {
		return nil
	}
	return &model.UsageLedger{
		Id:                   l.Id,
		UserId:               l.UserId,
		ResumesCreated:       l.ResumesCreated,
		ResumesLimit:         l.ResumesLimit,
		AiCreditsUsed:        l.AiCreditsUsed,
		AiCreditsLimit:       l.AiCreditsLimit,
		TotalViews:           l.TotalViews,
		TotalDownloads:       l.TotalDownloads,
		PremiumTemplatesUsed: l.PremiumTemplatesUsed,
		LastResetAt:          l.LastResetAt,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}
