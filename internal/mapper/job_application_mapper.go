package mapper

import (
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/model"
)

type JobApplicationMapper struct{}

func NewJobApplicationMapper() *JobApplicationMapper {
	return &JobApplicationMapper{}
}

func (m *JobApplicationMapper) ToEntity(j *model.JobApplication) *entity.JobApplication {
	if j == nil {
		return nil
	}
	return &entity.JobApplication{
		Id:          j.Id,
		UserId:      j.UserId,
		ResumeId:    j.ResumeId,
		Company:     j.Company,
		Position:    j.Position,
		Location:    j.Location,
		SalaryRange: j.SalaryRange,
		JobURL:      j.JobURL,
		Status:      entity.JobApplicationStatus(j.Status),
		Notes:       j.Notes,
		AppliedAt:   j.AppliedAt,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func (m *JobApplicationMapper) ToModel(j *entity.JobApplication) *model.JobApplication {
	if j == nil {
		return nil
	}
	return &model.JobApplication{
		Id:          j.Id,
		UserId:      j.UserId,
		ResumeId:    j.ResumeId,
		Company:     j.Company,
		Position:    j.Position,
		Location:    j.Location,
		SalaryRange: j.SalaryRange,
		JobURL:      j.JobURL,
		Status:      string(j.Status),
		Notes:       j.Notes,
		AppliedAt:   j.AppliedAt,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func (m *JobApplicationMapper) ToEntities(models []*model.JobApplication) []*entity.JobApplication {
	entities := make([]*entity.JobApplication, 0, len(models))
	for _, j := range models {
		entities = append(entities, m.ToEntity(j))
	}
	return entities
}
