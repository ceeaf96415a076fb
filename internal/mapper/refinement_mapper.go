package mapper

import (
	"time"

	"ai-profiling-be/internal/entity"
	"ai-profiling-be/internal/model"
)

type RefinementMapper struct{}

func NewRefinementMapper() *RefinementMapper {
	return &RefinementMapper{}
}

// Follow-up answer mappers

func (m *RefinementMapper) FollowUpAnswerToEntity(a *model.FollowUpAnswer) *entity.FollowUpAnswer {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.FollowUpAnswer{
		Id:           a.Id,
		UserId:       a.UserId,
		QuestionId:   a.QuestionId,
		QuestionText: a.QuestionText,
		AnswerText:   a.AnswerText,
		Category:     a.Category,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *RefinementMapper) FollowUpAnswerToModel(a *entity.FollowUpAnswer) *model.FollowUpAnswer {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.FollowUpAnswer{
		Id:           a.Id,
		UserId:       a.UserId,
		QuestionId:   a.QuestionId,
		QuestionText: a.QuestionText,
		AnswerText:   a.AnswerText,
		Category:     a.Category,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *RefinementMapper) FollowUpAnswersToEntities(models []*model.FollowUpAnswer) []*entity.FollowUpAnswer {
	entities := make([]*entity.FollowUpAnswer, 0, len(models))
	for _, a := range models {
		entities = append(entities, m.FollowUpAnswerToEntity(a))
	}
	return entities
}

// Confidence mappers

func (m *RefinementMapper) ConfidenceToEntity(c *model.ProfileConfidence) *entity.ProfileConfidence {
	if c == nil {
		return nil
	}
	return &entity.ProfileConfidence{
		Id:        c.Id,
		UserId:    c.UserId,
		Score:     c.Score,
		UpdatedAt: c.UpdatedAt,
	}
}

// Report mappers

func (m *RefinementMapper) ReportToEntity(r *model.ProfileReport) *entity.ProfileReport {
	if r == nil {
		return nil
	}
	return &entity.ProfileReport{
		Id:          r.Id,
		UserId:      r.UserId,
		Content:     r.Content,
		Stale:       r.Stale,
		GeneratedAt: r.GeneratedAt,
	}
}

func (m *RefinementMapper) ReportToModel(r *entity.ProfileReport) *model.ProfileReport {
	if r == nil {
		return nil
	}
	return &model.ProfileReport{
		Id:          r.Id,
		UserId:      r.UserId,
		Content:     r.Content,
		Stale:       r.Stale,
		GeneratedAt: r.GeneratedAt,
	}
}
